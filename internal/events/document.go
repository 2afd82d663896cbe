package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Document is a parsed JSON object from the event stream
type Document map[string]any

// FieldError reports a value present under a key but of the wrong shape
type FieldError struct {
	Key  string
	Want string
	Got  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Key, e.Want, e.Got)
}

// DecodeDocument parses a single JSON object. Numbers are kept as json.Number
// so that large values and textual rendering survive.
func DecodeDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("failed to decode document: not a JSON object")
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode document: unexpected data after object")
	}
	return doc, nil
}

// ContainsKey reports whether key is present in doc, even with a null value
func ContainsKey(doc Document, key string) bool {
	_, ok := doc[key]
	return ok
}

// Extract looks up key in doc and converts it with conv.
// A missing key or a JSON null yields def without calling conv. A value conv
// rejects yields a *FieldError describing want.
func Extract[T any](doc Document, key, want string, def T, conv func(v any) (T, bool)) (T, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return def, nil
	}
	out, ok := conv(v)
	if !ok {
		return def, &FieldError{Key: key, Want: want, Got: typeName(v)}
	}
	return out, nil
}

// GetString returns the string under key, or "" when missing.
// Numbers and booleans are rendered textually.
func GetString(doc Document, key string) (string, error) {
	return Extract(doc, key, "string", "", func(v any) (string, bool) {
		switch t := v.(type) {
		case string:
			return t, true
		case json.Number:
			return t.String(), true
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), true
		case bool:
			return strconv.FormatBool(t), true
		}
		return "", false
	})
}

// GetBoolean returns the boolean under key, or false when missing.
// The strings "true" and "false" are accepted in any case.
func GetBoolean(doc Document, key string) (bool, error) {
	return Extract(doc, key, "boolean", false, func(v any) (bool, bool) {
		switch t := v.(type) {
		case bool:
			return t, true
		case string:
			switch strings.ToLower(strings.TrimSpace(t)) {
			case "true":
				return true, true
			case "false":
				return false, true
			}
		}
		return false, false
	})
}

// GetInt64 returns the integer under key, or 0 when missing
func GetInt64(doc Document, key string) (int64, error) {
	return Extract(doc, key, "integer", int64(0), func(v any) (int64, bool) {
		switch t := v.(type) {
		case json.Number:
			i, err := t.Int64()
			return i, err == nil
		case float64:
			return int64(t), t == float64(int64(t))
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
			return i, err == nil
		}
		return 0, false
	})
}

// GetObject returns the nested object under key, or nil when missing
func GetObject(doc Document, key string) (Document, error) {
	return Extract(doc, key, "object", Document(nil), func(v any) (Document, bool) {
		switch t := v.(type) {
		case Document:
			return t, true
		case map[string]any:
			return Document(t), true
		}
		return nil, false
	})
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any, Document:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
