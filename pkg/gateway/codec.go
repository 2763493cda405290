package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aretw0/notepad/pkg/core"
)

// wireNote is the stored shape of a note. Ids written by older clients may be
// numbers or strings.
type wireNote struct {
	ID          json.RawMessage `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
}

// Encode serializes the collection as a JSON array of {id, title, description}.
func Encode(c core.Collection) ([]byte, error) {
	if c == nil {
		c = core.Collection{}
	}
	return json.Marshal(c)
}

// Decode parses a stored collection.
//
// The value may also be a JSON string wrapping the array, which is how the
// browser extension stored it. Ids that are not positive integers decode as 0.
func Decode(data []byte) (core.Collection, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return core.Collection{}, nil
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("decode wrapped notes: %w", err)
		}
		data = bytes.TrimSpace([]byte(inner))
		if len(data) == 0 {
			return core.Collection{}, nil
		}
	}

	var wire []wireNote
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	out := make(core.Collection, 0, len(wire))
	for _, w := range wire {
		out = append(out, core.Note{
			ID:          decodeID(w.ID),
			Title:       w.Title,
			Description: w.Description,
		})
	}
	return out, nil
}

func decodeID(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if id, err := n.Int64(); err == nil && id > 0 {
			return id
		}
		return 0
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return 0
}
