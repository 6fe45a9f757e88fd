package feed

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Coalesce returns the first candidate key whose value is present and
// non-empty, or fallback if none match. It is total over arbitrary input
// shapes: nested objects degrade to a string projection instead of erroring.
func Coalesce(item Item, keys []string, fallback string) string {
	for _, key := range keys {
		v, ok := item[key]
		if !ok {
			continue
		}
		if s := stringify(v); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return fallback
}

// stringify projects an arbitrary feed value to a string. Structured values
// (some feeds nest title/author under objects) are reduced to a well-known
// inner field, or serialized when none is present.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case map[string]any:
		for _, k := range []string{"title", "name", "text", "value"} {
			if inner, ok := t[k]; ok {
				if s := stringify(inner); strings.TrimSpace(s) != "" {
					return s
				}
			}
		}
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	case []any:
		if len(t) == 0 {
			return ""
		}
		return stringify(t[0])
	default:
		return fmt.Sprint(t)
	}
}
