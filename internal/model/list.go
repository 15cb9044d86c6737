package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// StringList accepts either a JSON string or a JSON array of strings.
// A bare scalar becomes a one-element list; null and "" become empty.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, r := range raw {
			s, err := scalarString(r)
			if err != nil {
				return err
			}
			if s != "" {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}
	s, err := scalarString(b)
	if err != nil {
		return err
	}
	if s == "" {
		*l = nil
		return nil
	}
	*l = StringList{s}
	return nil
}

// Scalar accepts either a JSON string (or number) or a one-element JSON array.
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		switch len(raw) {
		case 0:
			*s = ""
			return nil
		case 1:
			v, err := scalarString(raw[0])
			if err != nil {
				return err
			}
			*s = Scalar(v)
			return nil
		default:
			return fmt.Errorf("expected a single value, got %d", len(raw))
		}
	}
	v, err := scalarString(b)
	if err != nil {
		return err
	}
	*s = Scalar(v)
	return nil
}

// String returns the underlying value.
func (s Scalar) String() string { return string(s) }

// scalarString decodes a JSON string, number or bool into its string form.
func scalarString(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return s, nil
	case 'n':
		return "", nil
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return "", err
		}
		return strconv.FormatBool(v), nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", fmt.Errorf("expected a string value: %w", err)
		}
		return n.String(), nil
	}
}
