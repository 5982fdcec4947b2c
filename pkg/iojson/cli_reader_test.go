package iojson

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Text string `json:"text"`
}

func TestFileReader_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"text":"one"},{"text":"two"}]`), 0o644))

	fr := FileReader[[]record]{fileFlagValue: path}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []record{{Text: "one"}, {Text: "two"}}, got)
}

func TestFileReader_MissingFile(t *testing.T) {
	fr := FileReader[[]record]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
	_, err := fr.Read()
	assert.ErrorContains(t, err, "open file")
}

func TestFileReader_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{`), 0o644))

	fr := FileReader[[]record]{fileFlagValue: path}
	_, err := fr.Read()
	assert.ErrorContains(t, err, "decode JSON")
}

func TestFileReader_Flag(t *testing.T) {
	var fr FileReader[[]record]
	flag := fr.Flag()
	assert.Equal(t, "file", flag.Name)
	assert.Equal(t, []string{"f"}, flag.Aliases)
}

func TestFileReader_ReadStdin(t *testing.T) {
	fr := FileReader[[]record]{Stdin: strings.NewReader(`[{"text":"piped"}]`)}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []record{{Text: "piped"}}, got)
}
