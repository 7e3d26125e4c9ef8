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

// Package chunk decodes the packed per-section block storage of a chunk's
// root compound and searches it for blocks by fully qualified name.
//
// The chunk format is described at https://minecraft.wiki/w/Chunk_format
//
// A chunk is a vertical stack of 16x16x16 sections. Each section holds a
// palette (a deduplication table from small integers to block names) and,
// unless the whole section is palette entry 0, a packed array of palette
// indices, several to a 64-bit word. Positions are enumerated in YZX
// order: x varies fastest, then z, then y.
package chunk

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/mcformats/mcworld/lib/nbt"
)

// SectionVolume is the number of blocks in a 16x16x16 section.
const SectionVolume = 16 * 16 * 16

var (
	ErrTruncatedData = errors.New("chunk: packed index data ends before the section is full")
	ErrMissingField  = errors.New("chunk: missing or mistyped field")
)

// PaletteEntry is one block state in a section's palette.
type PaletteEntry struct {
	// Name is the fully qualified block name, "namespace:identifier".
	Name string

	// Properties holds the block state variant tags, if any.
	Properties map[string]nbt.Tag
}

// Section is one 16x16x16 sub-chunk with block storage.
type Section struct {
	// Y is the signed sub-chunk vertical index. The section covers world
	// heights [16*Y, 16*Y+15].
	Y int8

	// Palette maps packed indices to block states.
	Palette []PaletteEntry

	// data is the packed index array, nil when every block in the section
	// is palette entry 0.
	data []int64
}

// Sections extracts the block-bearing sections of a chunk root compound,
// in the order they appear in the `sections` list. Entries without a
// `block_states` child, or that are otherwise malformed, are skipped.
func Sections(c nbt.Compound) []Section {
	_, entries, ok := c.Tags["sections"].List()
	if !ok {
		return nil
	}
	var sections []Section
	for _, entry := range entries {
		tags, ok := entry.Compound()
		if !ok {
			continue
		}
		blockStates, ok := tags["block_states"].Compound()
		if !ok {
			continue
		}
		y, ok := tags["Y"].Byte()
		if !ok {
			continue
		}
		_, palette, ok := blockStates["palette"].List()
		if !ok {
			continue
		}
		s := Section{Y: y, Palette: make([]PaletteEntry, 0, len(palette))}
		for _, p := range palette {
			var pe PaletteEntry
			if tags, ok := p.Compound(); ok {
				pe.Name, _ = tags["Name"].StringValue()
				pe.Properties, _ = tags["Properties"].Compound()
			}
			s.Palette = append(s.Palette, pe)
		}
		// data is optional: absent means the whole section is entry 0.
		s.data, _ = blockStates["data"].LongArray()
		sections = append(sections, s)
	}
	return sections
}

// IndexWidth returns the bit width of a packed palette index for a
// palette of the given size: the number of bits needed to address every
// entry, but never fewer than 4.
func IndexWidth(paletteSize int) uint {
	if paletteSize <= 1 {
		return 4
	}
	w := uint(bits.Len(uint(paletteSize - 1)))
	if w < 4 {
		w = 4
	}
	return w
}

// Indices unpacks the section's palette indices into a SectionVolume-long
// slice in YZX order: position i is local (x, z, y) = (i&15, i>>4&15, i>>8).
//
// Indices never straddle 64-bit words: each word holds floor(64/width)
// of them, packed from the least-significant bit upward, with any
// remaining high bits unused. The words are read as unsigned despite the
// signed wire type. If the packed stream holds fewer than SectionVolume
// indices, Indices fails with ErrTruncatedData.
func (s *Section) Indices() ([]uint32, error) {
	out := make([]uint32, SectionVolume)
	if s.data == nil {
		// Entry 0 everywhere, regardless of palette size.
		return out, nil
	}

	width := IndexWidth(len(s.Palette))
	perWord := 64 / int(width)
	mask := uint64(1)<<width - 1

	if len(s.data)*perWord < SectionVolume {
		return nil, fmt.Errorf("%w: %d words of %d-bit indices", ErrTruncatedData, len(s.data), width)
	}

	i := 0
	for _, word := range s.data {
		w := uint64(word)
		for k := 0; k < perWord; k++ {
			out[i] = uint32(w & mask)
			w >>= width
			i++
			if i == SectionVolume {
				return out, nil
			}
		}
	}
	return out, nil
}
