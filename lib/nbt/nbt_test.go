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

import (
	"testing"
)

func TestKindOfRoundTrip(t *testing.T) {
	for id := 0; id <= 12; id++ {
		kind, ok := KindOf(uint8(id))
		if !ok {
			t.Fatalf("KindOf(%d): not ok", id)
		}
		if uint8(kind) != uint8(id) {
			t.Fatalf("KindOf(%d): got %v", id, kind)
		}
	}
	for id := 13; id <= 255; id++ {
		if _, ok := KindOf(uint8(id)); ok {
			t.Fatalf("KindOf(%d): got ok, want not ok", id)
		}
	}
}

func TestKindString(t *testing.T) {
	if got, want := KindCompound.String(), "Compound"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := Kind(200).String(), "Invalid"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAccessorsDoNotCoerce(t *testing.T) {
	tag := Int(7)
	if _, ok := tag.Byte(); ok {
		t.Fatalf("Byte() on an Int tag: got ok")
	}
	if _, ok := tag.Long(); ok {
		t.Fatalf("Long() on an Int tag: got ok")
	}
	if _, ok := tag.Compound(); ok {
		t.Fatalf("Compound() on an Int tag: got ok")
	}
	if v, ok := tag.Int(); !ok || v != 7 {
		t.Fatalf("Int(): got (%d, %t), want (7, true)", v, ok)
	}
}

func TestZeroTagIsEnd(t *testing.T) {
	var tag Tag
	if got, want := tag.Kind(), KindEnd; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScalarAccessors(t *testing.T) {
	if v, ok := Byte(-7).Byte(); !ok || v != -7 {
		t.Fatalf("Byte: got (%d, %t)", v, ok)
	}
	if v, ok := Short(-1234).Short(); !ok || v != -1234 {
		t.Fatalf("Short: got (%d, %t)", v, ok)
	}
	if v, ok := Long(-1 << 62).Long(); !ok || v != -1<<62 {
		t.Fatalf("Long: got (%d, %t)", v, ok)
	}
	if v, ok := Float(1.5).Float(); !ok || v != 1.5 {
		t.Fatalf("Float: got (%v, %t)", v, ok)
	}
	if v, ok := Double(-2.25).Double(); !ok || v != -2.25 {
		t.Fatalf("Double: got (%v, %t)", v, ok)
	}
	if v, ok := String("minecraft:stone").StringValue(); !ok || v != "minecraft:stone" {
		t.Fatalf("String: got (%q, %t)", v, ok)
	}
}

func TestListAccessor(t *testing.T) {
	tag := List(KindInt, []Tag{Int(1), Int(2)})
	elem, values, ok := tag.List()
	if !ok || elem != KindInt || len(values) != 2 {
		t.Fatalf("List: got (%v, %d values, %t)", elem, len(values), ok)
	}
}
