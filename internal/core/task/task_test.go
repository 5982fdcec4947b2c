package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_Resolve(t *testing.T) {
	tasks := Collection{
		{ID: "abc123", Text: "one"},
		{ID: "abd456", Text: "two"},
		{ID: "7", Text: "three"},
		{ID: "1700000000000", Text: "legacy"},
	}

	tests := []struct {
		ref     string
		wantID  string
		wantErr error
	}{
		{ref: "1", wantID: "abc123"},
		{ref: " 2 ", wantID: "abd456"},
		{ref: "4", wantID: "1700000000000"},
		{ref: "abc", wantID: "abc123"},
		{ref: "abd456", wantID: "abd456"},
		{ref: "7", wantID: "7"},
		{ref: "17000", wantID: "1700000000000"},
		{ref: "ab", wantErr: ErrAmbiguous},
		{ref: "zzz", wantErr: ErrNotFound},
		{ref: "0", wantErr: ErrNotFound},
		{ref: "", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := tasks.Resolve(tt.ref)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCollection_CloneIsIndependent(t *testing.T) {
	orig := Collection{{ID: "a", Text: "one"}}
	clone := orig.Clone()
	clone[0] = clone[0].Toggled().WithText("changed")

	assert.Equal(t, Collection{{ID: "a", Text: "one"}}, orig)
	assert.Equal(t, Task{ID: "a", Text: "changed", Completed: true}, clone[0])

	var empty Collection
	assert.NotNil(t, empty.Clone())
}

func TestCollection_Counts(t *testing.T) {
	open, done := Collection{
		{ID: "a", Completed: true},
		{ID: "b"},
		{ID: "c"},
	}.Counts()

	assert.Equal(t, 2, open)
	assert.Equal(t, 1, done)
}

func TestPendingAction_Mode(t *testing.T) {
	assert.Equal(t, ModeCompose, NoPending.Mode())
	assert.Equal(t, ModeEdit, PendingAction{Kind: PendingEdit, TaskID: "a"}.Mode())
	assert.Equal(t, ModeDelete, PendingAction{Kind: PendingDelete, TaskID: "a"}.Mode())

	assert.Equal(t, "none", NoPending.String())
	assert.Equal(t, "confirm-delete(a)", PendingAction{Kind: PendingDelete, TaskID: "a"}.String())
}

func TestNewIDGenerator(t *testing.T) {
	short := NewIDGenerator(IDStyleShort).NewID()
	assert.Len(t, short, 8)

	long := NewIDGenerator(IDStyleUUID).NewID()
	assert.Len(t, long, 36)

	assert.True(t, IDStyleShort.IsValid())
	assert.False(t, IDStyle("timestamp").IsValid())
}
