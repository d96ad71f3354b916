package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// Input is one submitted field value.
type Input struct {
	Field string
	Value any
}

// Inputs is an ordered field → value mapping. Setting an existing field
// replaces its value in place, so the order is the order in which fields were
// first submitted.
type Inputs []Input

// InputsFromMap builds Inputs from m with keys sorted, since Go maps carry
// no insertion order.
func InputsFromMap(m map[string]any) Inputs {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	in := make(Inputs, 0, len(keys))
	for _, k := range keys {
		in = append(in, Input{Field: k, Value: m[k]})
	}
	return in
}

// Set assigns value to field.
func (in *Inputs) Set(field string, value any) {
	if i := in.index(field); i >= 0 {
		(*in)[i].Value = value
		return
	}
	*in = append(*in, Input{Field: field, Value: value})
}

// Get returns the value submitted for field.
func (in Inputs) Get(field string) (any, bool) {
	if i := in.index(field); i >= 0 {
		return in[i].Value, true
	}
	return nil, false
}

// Float returns the numeric value of field, NaN when absent or not a number.
func (in Inputs) Float(field string) float64 {
	v, _ := in.Get(field)
	return Number(v)
}

// Fields returns the submitted field names in order.
func (in Inputs) Fields() []string {
	out := make([]string, len(in))
	for i, input := range in {
		out[i] = input.Field
	}
	return out
}

func (in Inputs) index(field string) int {
	return slices.IndexFunc(in, func(i Input) bool { return i.Field == field })
}

// UnmarshalJSON decodes a JSON object keeping the key order. Numbers are
// kept as json.Number so large integers survive unchanged.
func (in *Inputs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*in = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("inputs: expected JSON object, got %v", tok)
	}

	var out Inputs
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("inputs: unexpected key %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("inputs: field %q: %w", key, err)
		}
		out.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*in = out
	return nil
}

// MarshalJSON encodes Inputs as a JSON object in field order.
func (in Inputs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, input := range in {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(input.Field)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(input.Value)
		if err != nil {
			return nil, fmt.Errorf("inputs: field %q: %w", input.Field, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
