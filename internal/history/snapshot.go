package history

import (
	"encoding/json"
	"fmt"
)

// Snapshot serializes an entity into the opaque pre/post-image format
// stored on log entries: a JSON object keyed by column name. Entity json
// tags match their table columns, so undo can map fields back directly.
func Snapshot(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// decodeSnapshot parses a stored image back into column/value pairs.
func decodeSnapshot(image string) (map[string]any, error) {
	if image == "" {
		return nil, fmt.Errorf("empty snapshot")
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(image), &fields); err != nil {
		return nil, fmt.Errorf("malformed snapshot: %w", err)
	}
	return fields, nil
}
