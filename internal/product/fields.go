package product

import (
	"encoding/json"
	"strings"
)

// The list columns have historically accepted three different on-disk shapes:
// a JSON array, a bare JSON string, and plain unencoded text. listShape makes
// the fallback branches explicit so each can be tested in isolation instead of
// hiding behind a chain of unmarshal attempts.
type listShape int

const (
	shapeEmpty listShape = iota
	shapeArray
	shapeString
	shapeText
)

func classifyList(raw string) (listShape, []string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return shapeEmpty, nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
		if arr == nil {
			return shapeEmpty, nil
		}
		return shapeArray, arr
	}

	var single string
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
		return shapeString, []string{single}
	}

	return shapeText, []string{raw}
}

// DecodeStringList normalizes a stored list column to a native slice:
// JSON array as-is, bare JSON string as a one-element list, any other
// non-empty text as a one-element list, empty/null as an empty list.
// Never fails; the result is never nil.
func DecodeStringList(raw string) []string {
	shape, items := classifyList(raw)
	if shape == shapeEmpty || items == nil {
		return []string{}
	}
	return items
}

// EncodeStringList writes a slice back to the canonical stored shape, a JSON
// array. nil encodes as "[]" so new rows never persist the null shape.
func EncodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		// a []string cannot fail to marshal
		return "[]"
	}
	return string(b)
}
