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

package chunk

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mcformats/mcworld/internal/nbttest"
	"github.com/mcformats/mcworld/lib/nbt"
)

// sectionWithBlockAt builds a two-entry section (air plus one target
// block) whose target occupies the given local position.
func sectionWithBlockAt(y int8, name string, lx, ly, lz int) nbt.Tag {
	indices := make([]uint32, SectionVolume)
	indices[ly*256+lz*16+lx] = 1
	return nbttest.Section(y,
		nbttest.Palette("minecraft:air", name),
		nbttest.PackIndices(4, indices))
}

func TestSearchBlocksAcrossSubChunks(t *testing.T) {
	const name = "minecraft:diamond_ore"
	c := nbttest.Chunk(-1, 2,
		sectionWithBlockAt(-2, name, 3, 7, 5),
		sectionWithBlockAt(0, name, 3, 7, 5),
		sectionWithBlockAt(3, name, 3, 7, 5),
	)

	found, err := SearchBlocks([]nbt.Compound{c}, []string{name})
	if err != nil {
		t.Fatalf("SearchBlocks: %v", err)
	}
	want := []Position{
		{X: -13, Y: -25, Z: 37},
		{X: -13, Y: 7, Z: 37},
		{X: -13, Y: 55, Z: 37},
	}
	if !reflect.DeepEqual(found[name], want) {
		t.Fatalf("positions:\ngot  %v\nwant %v", found[name], want)
	}
}

func TestSearchBlocksYZXEmissionOrder(t *testing.T) {
	// All 4096 positions are the target; emission order is x fastest,
	// then z, then y.
	indices := make([]uint32, SectionVolume)
	section := nbttest.Section(0, nbttest.Palette("minecraft:stone"), nbttest.PackIndices(4, indices))
	c := nbttest.Chunk(0, 0, section)

	found, err := SearchBlocks([]nbt.Compound{c}, []string{"minecraft:stone"})
	if err != nil {
		t.Fatalf("SearchBlocks: %v", err)
	}
	positions := found["minecraft:stone"]
	if len(positions) != SectionVolume {
		t.Fatalf("count: got %d, want %d", len(positions), SectionVolume)
	}
	if want := (Position{X: 1, Y: 0, Z: 0}); positions[1] != want {
		t.Fatalf("positions[1]: got %v, want %v", positions[1], want)
	}
	if want := (Position{X: 0, Y: 0, Z: 1}); positions[16] != want {
		t.Fatalf("positions[16]: got %v, want %v", positions[16], want)
	}
	if want := (Position{X: 0, Y: 1, Z: 0}); positions[256] != want {
		t.Fatalf("positions[256]: got %v, want %v", positions[256], want)
	}
	if want := (Position{X: 15, Y: 15, Z: 15}); positions[4095] != want {
		t.Fatalf("positions[4095]: got %v, want %v", positions[4095], want)
	}
}

func TestSearchBlocksStateVariantsUnion(t *testing.T) {
	// The same name at two palette indices (distinct state variants)
	// counts as one logical block.
	indices := make([]uint32, SectionVolume)
	indices[0] = 1
	indices[1] = 2
	section := nbttest.Section(0,
		nbttest.Palette("minecraft:air", "minecraft:repeater", "minecraft:repeater"),
		nbttest.PackIndices(4, indices))
	c := nbttest.Chunk(0, 0, section)

	found, err := SearchBlocks([]nbt.Compound{c}, []string{"minecraft:repeater"})
	if err != nil {
		t.Fatalf("SearchBlocks: %v", err)
	}
	want := []Position{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
	}
	if !reflect.DeepEqual(found["minecraft:repeater"], want) {
		t.Fatalf("positions:\ngot  %v\nwant %v", found["minecraft:repeater"], want)
	}
}

func TestSearchBlocksSkipsUnmatchedSections(t *testing.T) {
	// A section whose palette has no queried name is never unpacked:
	// its data being truncated must not fail the search.
	truncated := nbttest.Section(1, nbttest.Palette("minecraft:air", "minecraft:dirt"), make([]int64, 10))
	c := nbttest.Chunk(0, 0,
		sectionWithBlockAt(0, "minecraft:gold_block", 0, 0, 0),
		truncated,
	)
	found, err := SearchBlocks([]nbt.Compound{c}, []string{"minecraft:gold_block"})
	if err != nil {
		t.Fatalf("SearchBlocks: %v", err)
	}
	if len(found["minecraft:gold_block"]) != 1 {
		t.Fatalf("positions: got %v", found["minecraft:gold_block"])
	}
}

func TestSearchBlocksTruncatedDataFails(t *testing.T) {
	truncated := nbttest.Section(0, nbttest.Palette("minecraft:air", "minecraft:dirt"), make([]int64, 10))
	c := nbttest.Chunk(0, 0, truncated)
	if _, err := SearchBlocks([]nbt.Compound{c}, []string{"minecraft:dirt"}); !errors.Is(err, ErrTruncatedData) {
		t.Fatalf("got %v, want ErrTruncatedData", err)
	}
}

func TestSearchBlocksMissingCoordinatesSkipsChunk(t *testing.T) {
	c := nbt.Compound{Tags: map[string]nbt.Tag{
		"sections": nbt.List(nbt.KindCompound, []nbt.Tag{
			sectionWithBlockAt(0, "minecraft:dirt", 0, 0, 0),
		}),
	}}
	found, err := SearchBlocks([]nbt.Compound{c}, []string{"minecraft:dirt"})
	if err != nil {
		t.Fatalf("SearchBlocks: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("found: got %v, want none", found)
	}
}

func TestSearchBlocksAbsentNameAbsentFromResult(t *testing.T) {
	c := nbttest.Chunk(0, 0, sectionWithBlockAt(0, "minecraft:dirt", 0, 0, 0))
	found, err := SearchBlocks([]nbt.Compound{c}, []string{"minecraft:dirt", "minecraft:emerald_ore"})
	if err != nil {
		t.Fatalf("SearchBlocks: %v", err)
	}
	if _, ok := found["minecraft:emerald_ore"]; ok {
		t.Fatalf("emerald_ore: unexpectedly present")
	}
	if len(found["minecraft:dirt"]) != 1 {
		t.Fatalf("dirt: got %v", found["minecraft:dirt"])
	}
}
