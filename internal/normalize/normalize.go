// Package normalize holds the lenient JSON field types used at the API
// boundary. None of them ever fail to decode: a missing, null or mistyped
// value becomes the zero value, so the records built from them are fully
// defaulted before anything else sees them.
package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field decoded with "parse as number, default to 0"
// semantics. Valid reports whether the source held something numeric.
type Number struct {
	Value float64
	Valid bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	v, ok := parseNumber(bytes.TrimSpace(b))
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		*n = Number{}
		return nil
	}
	*n = Number{Value: v, Valid: true}
	return nil
}

// Count returns the value as a non-negative integer count.
func (n Number) Count() int64 {
	return Count(n.Value)
}

// NumberOf coerces an already-extracted raw JSON value.
func NumberOf(raw json.RawMessage) Number {
	var n Number
	_ = n.UnmarshalJSON(raw)
	return n
}

func parseNumber(b []byte) (float64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	switch b[0] {
	case 'n':
		return 0, false
	case 't':
		return 1, true
	case 'f':
		return 0, true
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, true
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case '{', '[':
		return 0, false
	default:
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
}

// Count truncates f toward zero, clamping negatives and non-finite values to 0.
func Count(f float64) int64 {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0), f <= 0:
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	default:
		return int64(f)
	}
}

// Text is a string field that also accepts numbers and booleans.
// Null, objects and arrays become "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = ""
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*t = Text(s)
		}
	case 'n', '{', '[':
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// List is a collection field. A value that is not an array decodes to an
// empty list; null elements and elements that do not decode as T are dropped.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	*l = List[T]{}
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil
	}
	out := make(List[T], 0, len(raws))
	for _, raw := range raws {
		if IsNull(raw) {
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// Entry is one key/value pair of a JSON object, in document order.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Entries is a JSON object decoded as ordered pairs. Anything other than an
// object decodes to no entries.
type Entries []Entry

func (e *Entries) UnmarshalJSON(b []byte) error {
	*e = Entries{}
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}
	var out Entries
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		key, ok := tok.(string)
		if !ok {
			break
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		out = append(out, Entry{Key: key, Value: raw})
	}
	*e = out
	return nil
}

// IsNull reports whether raw is absent or the JSON literal null.
func IsNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Decode unmarshals body into out, leaving out at its zero value when the
// body is empty or not JSON at all. It reports whether the body was used.
func Decode(body []byte, out any) bool {
	if len(bytes.TrimSpace(body)) == 0 {
		return false
	}
	return json.Unmarshal(body, out) == nil
}
