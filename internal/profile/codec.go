package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned for records that do not have the shape of a
// Profile. Value-level contradictions are not shape errors.
var ErrMalformed = errors.New("malformed profile record")

var validate = validator.New()

// CheckShape verifies identity metadata and enumerated fields.
func CheckShape(p *Profile) error {
	if p == nil {
		return fmt.Errorf("%w: nil profile", ErrMalformed)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return nil
}

// Decode parses a JSON record over the stock defaults and checks its shape.
// Fields absent from the record, including the id, keep the values New
// would give them.
func Decode(data []byte) (*Profile, error) {
	p := New("", "")
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := CheckShape(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeYAML is Decode for YAML records.
func DecodeYAML(data []byte) (*Profile, error) {
	p := New("", "")
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := CheckShape(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Encode renders p as indented JSON.
func Encode(p *Profile) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding profile %s: %w", p.ID, err)
	}
	return data, nil
}

// EncodeYAML renders p as YAML.
func EncodeYAML(p *Profile) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding profile %s: %w", p.ID, err)
	}
	return data, nil
}

// Entry values are untyped, so both codecs keep integers and floats apart
// and decode them canonically: whole numbers as int, others as float64,
// string lists as []string.

type entryJSON struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	var value []byte
	if f, ok := wholeFloat(e.Value); ok {
		value = []byte(formatFloat(f))
	} else {
		var err error
		if value, err = json.Marshal(e.Value); err != nil {
			return nil, fmt.Errorf("encoding override %s: %w", e.Key, err)
		}
	}
	return json.Marshal(entryJSON{Key: e.Key, Value: value})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var value any
	if len(raw.Value) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw.Value))
		dec.UseNumber()
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding override %s: %w", raw.Key, err)
		}
	}

	e.Key = raw.Key
	e.Value = canonicalValue(value)
	return nil
}

type entryYAML struct {
	Key   string     `yaml:"key"`
	Value *yaml.Node `yaml:"value"`
}

func (e Entry) MarshalYAML() (any, error) {
	node := &yaml.Node{}
	if f, ok := wholeFloat(e.Value); ok {
		node.Kind = yaml.ScalarNode
		node.Tag = "!!float"
		node.Value = formatFloat(f)
	} else if err := node.Encode(e.Value); err != nil {
		return nil, fmt.Errorf("encoding override %s: %w", e.Key, err)
	}
	return entryYAML{Key: e.Key, Value: node}, nil
}

func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Key   string `yaml:"key"`
		Value any    `yaml:"value"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	e.Key = raw.Key
	e.Value = canonicalValue(raw.Value)
	return nil
}

// wholeFloat reports float values with no fractional part, which the
// encoders would otherwise write like integers.
func wholeFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	default:
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}

// formatFloat always renders a decimal point or exponent.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func canonicalValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if !strings.ContainsAny(x.String(), ".eE") {
			if n, err := strconv.Atoi(x.String()); err == nil {
				return n
			}
		}
		f, _ := x.Float64()
		return f
	case []any:
		strs := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				break
			}
			strs = append(strs, s)
		}
		if len(strs) == len(x) {
			return strs
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = canonicalValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = canonicalValue(e)
		}
		return out
	}
	return v
}
