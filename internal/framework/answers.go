package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Answers is an insertion-ordered set of question answers. Order matters:
// some generators serialise the answers verbatim.
type Answers struct {
	keys   []string
	values map[string]any
}

// NewAnswers returns an empty answer set.
func NewAnswers() *Answers {
	return &Answers{values: make(map[string]any)}
}

// Set records an answer. Re-setting a key keeps its original position.
func (a *Answers) Set(key string, value any) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the answer for key.
func (a *Answers) Get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key was answered.
func (a *Answers) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Bool returns the answer as a bool. Missing or non-bool answers are false.
func (a *Answers) Bool(key string) bool {
	switch v := a.values[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// String returns the answer formatted as a string, or "" when missing.
func (a *Answers) String(key string) string {
	v, ok := a.values[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Strings returns a multi-select answer.
func (a *Answers) Strings(key string) []string {
	switch v := a.values[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// Keys returns the answered keys in the order they were set.
func (a *Answers) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Len returns the number of answers.
func (a *Answers) Len() int { return len(a.keys) }

// MarshalJSON encodes the answers as an object in insertion order.
func (a *Answers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding answer %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
