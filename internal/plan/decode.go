package plan

import (
	"encoding/json"
	"fmt"
)

// Decode parses data as a JSON-encoded plan.
//
// Duplicate or non-sequential task IDs are accepted as-is; the model is asked
// for unique sequential IDs but we don't reject output that ignores that.
func Decode(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return &p, nil
}
