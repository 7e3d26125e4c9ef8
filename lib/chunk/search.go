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
	"github.com/mcformats/mcworld/lib/nbt"
)

// Position is an absolute world-space block position.
type Position struct {
	X, Y, Z int
}

// SearchBlocks scans every chunk root compound for the queried fully
// qualified block names and returns, per name, the world positions where
// that block appears. Names absent from every palette produce no map entry.
//
// Results per name are emitted deterministically: chunks in the order
// given, sections in `sections` list order, and YZX order (x fastest)
// within a section. A name that maps to several palette entries (state
// variants) matches all of them.
//
// Chunks or sections missing coordinate or storage fields are skipped
// silently; only malformed packed data (ErrTruncatedData) fails the
// search.
func SearchBlocks(chunks []nbt.Compound, names []string) (map[string][]Position, error) {
	found := map[string][]Position{}
	for _, c := range chunks {
		cx, ok := c.Tags["xPos"].Int()
		if !ok {
			continue
		}
		cz, ok := c.Tags["zPos"].Int()
		if !ok {
			continue
		}
		// A chunk-level yPos exists but holds the chunk's vertical base;
		// the per-section Y is the section index.
		for _, s := range Sections(c) {
			if err := searchSection(&s, int(cx), int(cz), names, found); err != nil {
				return nil, err
			}
		}
	}
	return found, nil
}

// searchSection appends the matches of one section to found.
func searchSection(s *Section, cx, cz int, names []string, found map[string][]Position) error {
	// One palette scan: map each queried name to the set of palette
	// indices carrying it.
	indexName := map[uint32]string{}
	for i, pe := range s.Palette {
		for _, name := range names {
			if pe.Name == name {
				indexName[uint32(i)] = name
			}
		}
	}
	if len(indexName) == 0 {
		return nil
	}

	indices, err := s.Indices()
	if err != nil {
		return err
	}

	baseX, baseY, baseZ := 16*cx, 16*int(s.Y), 16*cz
	for i, index := range indices {
		name, ok := indexName[index]
		if !ok {
			continue
		}
		found[name] = append(found[name], Position{
			X: baseX + (i & 15),
			Y: baseY + (i >> 8),
			Z: baseZ + (i >> 4 & 15),
		})
	}
	return nil
}
