package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EncodeNames serializes a name list as a JSON array of strings.
// A nil list encodes as [] rather than null.
func EncodeNames(l NameList) (string, error) {
	if l == nil {
		l = NameList{}
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return "", fmt.Errorf("failed to encode saved names: %w", err)
	}
	return string(data), nil
}

// DecodeNames parses a serialized name list.
//
// The value must be a JSON array. Non-string elements and blank names are
// dropped, and repeated names keep only their first occurrence, so the
// result always satisfies the list invariants even if the stored value was
// edited by hand. An empty value decodes to an empty list.
func DecodeNames(raw string) (NameList, error) {
	if strings.TrimSpace(raw) == "" {
		return NameList{}, nil
	}

	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("saved names are not a JSON array: %w", err)
	}
	if items == nil {
		// JSON null
		return nil, fmt.Errorf("saved names are not a JSON array: got null")
	}

	out := NameList{}
	for _, item := range items {
		name, ok := item.(string)
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		out, _ = out.Add(name)
	}
	return out, nil
}
