package task

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Encode serializes the collection as a JSON array of task records.
func Encode(c Collection) ([]byte, error) {
	data, err := json.Marshal(c.Clone())
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a persisted task array. The stored value carries no schema
// version, so records are read leniently:
//
//   - id may be a string or a number; a missing id decodes as ""
//   - completed defaults to false when missing or not a boolean
//   - records that are not objects or have blank text are skipped
//
// Only a value that is not a JSON array is an error. Empty and duplicate ids
// are left for the controller to repair.
func Decode(data []byte) (Collection, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	out := make(Collection, 0, len(raw))
	for _, r := range raw {
		if t, ok := decodeRecord(r); ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func decodeRecord(data json.RawMessage) (Task, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Task{}, false
	}

	var text string
	if err := json.Unmarshal(fields["text"], &text); err != nil {
		return Task{}, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}

	var completed bool
	if v, ok := fields["completed"]; ok {
		_ = json.Unmarshal(v, &completed) // a non-boolean leaves it false
	}

	return Task{
		ID:        decodeID(fields["id"]),
		Text:      text,
		Completed: completed,
	}, true
}

func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}
