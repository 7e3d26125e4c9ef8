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

// ----------------

// Package nbt decodes and encodes the NBT (Named Binary Tag) format: a
// recursive, self-describing binary tree of tagged values used for all
// persistent Minecraft world data.
//
// The format is described at https://minecraft.wiki/w/NBT_format
//
// A decoded document is always rooted at a Compound. All multi-byte values
// on the wire are big-endian. String payloads are nominally modified UTF-8,
// but this package treats them as opaque byte sequences: invalid sequences
// are preserved verbatim, never rejected, so that byte-for-byte name
// comparisons against game-written data always succeed.
package nbt

import (
	"math"
)

// Kind is the type discriminator of a Tag, matching the 1-byte ids of the
// wire format.
type Kind uint8

const (
	KindEnd       = Kind(0)
	KindByte      = Kind(1)
	KindShort     = Kind(2)
	KindInt       = Kind(3)
	KindLong      = Kind(4)
	KindFloat     = Kind(5)
	KindDouble    = Kind(6)
	KindByteArray = Kind(7)
	KindString    = Kind(8)
	KindList      = Kind(9)
	KindCompound  = Kind(10)
	KindIntArray  = Kind(11)
	KindLongArray = Kind(12)
)

// KindOf returns the Kind for a wire-format id byte. It returns false for
// ids outside 0..12.
func KindOf(id uint8) (Kind, bool) {
	if id > uint8(KindLongArray) {
		return 0, false
	}
	return Kind(id), true
}

var kindNames = [13]string{
	"End", "Byte", "Short", "Int", "Long", "Float", "Double",
	"ByteArray", "String", "List", "Compound", "IntArray", "LongArray",
}

func (k Kind) String() string {
	if k > KindLongArray {
		return "Invalid"
	}
	return kindNames[k]
}

// Tag is a single NBT value: one of the thirteen kinds, holding the payload
// for that kind. The zero Tag has kind End.
//
// A Tag does not carry its own name. Within a Compound, the name is the map
// key; List elements are anonymous.
type Tag struct {
	kind Kind

	// num holds the bit pattern of the Byte, Short, Int, Long, Float and
	// Double payloads.
	num  uint64
	str  string
	elem Kind
	list []Tag
	tags map[string]Tag
	i8s  []int8
	i32s []int32
	i64s []int64
}

// Compound is a named compound document: the root of any decoded NBT tree.
//
// The wire format permits duplicate names within a compound; decoding keeps
// the last occurrence. Key order is not preserved across a round-trip.
type Compound struct {
	Name string
	Tags map[string]Tag
}

// Kind returns the tag's kind.
func (t Tag) Kind() Kind { return t.kind }

// Constructors, one per payload-bearing kind.

func Byte(v int8) Tag      { return Tag{kind: KindByte, num: uint64(uint8(v))} }
func Short(v int16) Tag    { return Tag{kind: KindShort, num: uint64(uint16(v))} }
func Int(v int32) Tag      { return Tag{kind: KindInt, num: uint64(uint32(v))} }
func Long(v int64) Tag     { return Tag{kind: KindLong, num: uint64(v)} }
func Float(v float32) Tag  { return Tag{kind: KindFloat, num: uint64(math.Float32bits(v))} }
func Double(v float64) Tag { return Tag{kind: KindDouble, num: math.Float64bits(v)} }
func String(v string) Tag  { return Tag{kind: KindString, str: v} }

func ByteArray(v []int8) Tag  { return Tag{kind: KindByteArray, i8s: v} }
func IntArray(v []int32) Tag  { return Tag{kind: KindIntArray, i32s: v} }
func LongArray(v []int64) Tag { return Tag{kind: KindLongArray, i64s: v} }

// List returns a List tag whose elements all have the given kind. An empty
// list may use KindEnd.
func List(elem Kind, values []Tag) Tag {
	return Tag{kind: KindList, elem: elem, list: values}
}

// CompoundTag returns a Compound tag holding the given mapping. The map is
// not copied.
func CompoundTag(tags map[string]Tag) Tag {
	return Tag{kind: KindCompound, tags: tags}
}

// Typed accessors. Each returns the payload and true when the tag has the
// matching kind, or a zero value and false otherwise. No accessor coerces
// between kinds.

func (t Tag) Byte() (int8, bool) {
	if t.kind != KindByte {
		return 0, false
	}
	return int8(uint8(t.num)), true
}

func (t Tag) Short() (int16, bool) {
	if t.kind != KindShort {
		return 0, false
	}
	return int16(uint16(t.num)), true
}

func (t Tag) Int() (int32, bool) {
	if t.kind != KindInt {
		return 0, false
	}
	return int32(uint32(t.num)), true
}

func (t Tag) Long() (int64, bool) {
	if t.kind != KindLong {
		return 0, false
	}
	return int64(t.num), true
}

func (t Tag) Float() (float32, bool) {
	if t.kind != KindFloat {
		return 0, false
	}
	return math.Float32frombits(uint32(t.num)), true
}

func (t Tag) Double() (float64, bool) {
	if t.kind != KindDouble {
		return 0, false
	}
	return math.Float64frombits(t.num), true
}

func (t Tag) StringValue() (string, bool) {
	if t.kind != KindString {
		return "", false
	}
	return t.str, true
}

func (t Tag) ByteArray() ([]int8, bool) {
	if t.kind != KindByteArray {
		return nil, false
	}
	return t.i8s, true
}

func (t Tag) IntArray() ([]int32, bool) {
	if t.kind != KindIntArray {
		return nil, false
	}
	return t.i32s, true
}

func (t Tag) LongArray() ([]int64, bool) {
	if t.kind != KindLongArray {
		return nil, false
	}
	return t.i64s, true
}

// List returns the element kind and the elements.
func (t Tag) List() (Kind, []Tag, bool) {
	if t.kind != KindList {
		return 0, nil, false
	}
	return t.elem, t.list, true
}

// Compound returns the name-to-tag mapping.
func (t Tag) Compound() (map[string]Tag, bool) {
	if t.kind != KindCompound {
		return nil, false
	}
	return t.tags, true
}
