// Copyright 2025 The MCWorld Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nbt

// The JSON form is a convenience adapter, not a wire-interchange format:
// it preserves each tag's (name, kind, payload) but may reorder keys and
// re-emit floats in any precision-preserving form.
//
// A tag is encoded as {"kind": ..., "value": ...} for scalars and strings,
// {"kind": ..., "values": [...]} for arrays, {"kind": "List", "elem": ...,
// "values": [...]} for lists and {"kind": "Compound", "tags": {...}} for
// compounds. A document adds the root name: {"name": ..., "tags": {...}}.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

var errInvalidJSONTag = errors.New("nbt: invalid JSON tag")

// WriteJSON writes the JSON form of c to w.
func (c Compound) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// ReadJSON parses the JSON form of a single compound document from r.
func ReadJSON(r io.Reader) (Compound, error) {
	var c Compound
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Compound{}, err
	}
	return c, nil
}

type jsonCompound struct {
	Name string         `json:"name"`
	Tags map[string]Tag `json:"tags"`
}

// MarshalJSON implements json.Marshaler.
func (c Compound) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonCompound{Name: c.Name, Tags: c.Tags})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Compound) UnmarshalJSON(data []byte) error {
	var jc jsonCompound
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}
	if jc.Tags == nil {
		jc.Tags = map[string]Tag{}
	}
	c.Name, c.Tags = jc.Name, jc.Tags
	return nil
}

type jsonTag struct {
	Kind   string          `json:"kind"`
	Elem   string          `json:"elem,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
	Values json.RawMessage `json:"values,omitempty"`
	Tags   map[string]Tag  `json:"tags,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t Tag) MarshalJSON() ([]byte, error) {
	jt := jsonTag{Kind: t.kind.String()}
	var err error
	switch t.kind {
	case KindEnd:
		// Kind alone.
	case KindByte:
		jt.Value, err = json.Marshal(int8(uint8(t.num)))
	case KindShort:
		jt.Value, err = json.Marshal(int16(uint16(t.num)))
	case KindInt:
		jt.Value, err = json.Marshal(int32(uint32(t.num)))
	case KindLong:
		jt.Value, err = json.Marshal(int64(t.num))
	case KindFloat:
		jt.Value, err = marshalFloat(float64(math.Float32frombits(uint32(t.num))))
	case KindDouble:
		jt.Value, err = marshalFloat(math.Float64frombits(t.num))
	case KindString:
		jt.Value, err = json.Marshal(t.str)
	case KindByteArray:
		jt.Values, err = json.Marshal(emptyNotNil(t.i8s))
	case KindIntArray:
		jt.Values, err = json.Marshal(emptyNotNil(t.i32s))
	case KindLongArray:
		jt.Values, err = json.Marshal(emptyNotNil(t.i64s))
	case KindList:
		jt.Elem = t.elem.String()
		jt.Values, err = json.Marshal(emptyNotNil(t.list))
	case KindCompound:
		jt.Tags = t.tags
		if jt.Tags == nil {
			jt.Tags = map[string]Tag{}
		}
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(jt)
}

// emptyNotNil keeps empty arrays as [] rather than null in the JSON form,
// so that kind information survives the round-trip unambiguously.
func emptyNotNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}

// marshalFloat handles the IEEE-754 specials that JSON numbers cannot
// carry; they are written as strings.
func marshalFloat(v float64) (json.RawMessage, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(fmt.Sprint(v))
	}
	return json.Marshal(v)
}

func unmarshalFloat(raw json.RawMessage) (float64, error) {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		switch s {
		case "NaN":
			return math.NaN(), nil
		case "+Inf":
			return math.Inf(+1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("%w: float %q", errInvalidJSONTag, s)
	}
	var v float64
	err := json.Unmarshal(raw, &v)
	return v, err
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var jt jsonTag
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}
	kind, ok := kindFromName(jt.Kind)
	if !ok {
		return fmt.Errorf("%w: kind %q", errInvalidJSONTag, jt.Kind)
	}

	switch kind {
	case KindEnd:
		*t = Tag{}
		return nil
	case KindByte:
		var v int8
		if err := json.Unmarshal(jt.Value, &v); err != nil {
			return err
		}
		*t = Byte(v)
	case KindShort:
		var v int16
		if err := json.Unmarshal(jt.Value, &v); err != nil {
			return err
		}
		*t = Short(v)
	case KindInt:
		var v int32
		if err := json.Unmarshal(jt.Value, &v); err != nil {
			return err
		}
		*t = Int(v)
	case KindLong:
		var v int64
		if err := json.Unmarshal(jt.Value, &v); err != nil {
			return err
		}
		*t = Long(v)
	case KindFloat:
		v, err := unmarshalFloat(jt.Value)
		if err != nil {
			return err
		}
		*t = Float(float32(v))
	case KindDouble:
		v, err := unmarshalFloat(jt.Value)
		if err != nil {
			return err
		}
		*t = Double(v)
	case KindString:
		var v string
		if err := json.Unmarshal(jt.Value, &v); err != nil {
			return err
		}
		*t = String(v)
	case KindByteArray:
		var v []int8
		if err := json.Unmarshal(jt.Values, &v); err != nil {
			return err
		}
		*t = ByteArray(v)
	case KindIntArray:
		var v []int32
		if err := json.Unmarshal(jt.Values, &v); err != nil {
			return err
		}
		*t = IntArray(v)
	case KindLongArray:
		var v []int64
		if err := json.Unmarshal(jt.Values, &v); err != nil {
			return err
		}
		*t = LongArray(v)
	case KindList:
		elem, ok := kindFromName(jt.Elem)
		if !ok {
			return fmt.Errorf("%w: list element kind %q", errInvalidJSONTag, jt.Elem)
		}
		var v []Tag
		if err := json.Unmarshal(jt.Values, &v); err != nil {
			return err
		}
		*t = List(elem, v)
	case KindCompound:
		if jt.Tags == nil {
			jt.Tags = map[string]Tag{}
		}
		*t = CompoundTag(jt.Tags)
	}
	return nil
}

func kindFromName(name string) (Kind, bool) {
	for id, n := range kindNames {
		if n == name {
			return Kind(id), true
		}
	}
	return 0, false
}
