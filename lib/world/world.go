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

// Package world loads Minecraft world storage from the filesystem and
// exposes block and compound search over the result.
//
// Load dispatches on the file-name suffix: region files (.mca, .mcr) go
// through the region container, standalone blobs (.nbt, .litematic)
// through compression sniffing, and .json through the JSON adapter. A
// directory is treated as a world root: its region/ sub-directory is
// enumerated and the per-file results concatenated.
package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mcformats/mcworld/lib/chunk"
	"github.com/mcformats/mcworld/lib/compression"
	"github.com/mcformats/mcworld/lib/nbt"
	"github.com/mcformats/mcworld/lib/region"
)

var ErrUnsupportedExtension = errors.New("world: unsupported file extension")

// World is a loaded view of world storage: a flat list of root compounds,
// one per chunk for region input or exactly one for a standalone file.
type World struct {
	// Path is the file or directory the world was loaded from.
	Path string

	// Compounds are the decoded root compounds, in chunk index order per
	// region file.
	Compounds []nbt.Compound

	// ChunkErrs are the per-chunk failures tolerated while loading region
	// input. They do not fail the load; callers that want strictness can
	// check the slice.
	ChunkErrs []region.ChunkError
}

// Load reads world storage from path, dispatching on its suffix (or, for
// a directory, enumerating its region/ sub-directory).
func Load(path string) (*World, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return loadDir(path)
	}
	return loadFile(path)
}

func loadFile(path string) (*World, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mca", ".mcr":
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		f, err := region.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		chunks, chunkErrs := f.Compounds()
		return &World{Path: path, Compounds: chunks, ChunkErrs: chunkErrs}, nil

	case ".nbt", ".litematic":
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		// Standalone files do not advertise their compression.
		raw, err := compression.Sniff(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		c, err := nbt.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &World{Path: path, Compounds: []nbt.Compound{c}}, nil

	case ".json":
		return FromJSON(path)
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedExtension, filepath.Ext(path))
}

func loadDir(dir string) (*World, error) {
	entries, err := os.ReadDir(filepath.Join(dir, "region"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".mca", ".mcr":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	w := &World{Path: dir}
	for _, name := range names {
		part, err := loadFile(filepath.Join(dir, "region", name))
		if err != nil {
			return nil, err
		}
		w.Compounds = append(w.Compounds, part.Compounds...)
		w.ChunkErrs = append(w.ChunkErrs, part.ChunkErrs...)
	}
	return w, nil
}

// SearchBlocks returns, per queried fully qualified block name, the
// absolute world positions where that block appears. See
// chunk.SearchBlocks for ordering guarantees.
func (w *World) SearchBlocks(names []string) (map[string][]chunk.Position, error) {
	return chunk.SearchBlocks(w.Compounds, names)
}

// SearchCompound returns every compound stored under a name equal to key,
// walking all root compounds depth-first. With firstOnly set, it stops at
// the first match.
func (w *World) SearchCompound(key string, firstOnly bool) []nbt.Tag {
	return nbt.SearchCompound(w.Compounds, key, firstOnly)
}

// ToJSON writes the world's first root compound to path in the JSON
// round-trip form.
func (w *World) ToJSON(path string) error {
	if len(w.Compounds) == 0 {
		return fmt.Errorf("world: %s holds no compounds", w.Path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := w.Compounds[0].WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FromJSON loads a world from the JSON round-trip form of a single
// compound.
func FromJSON(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := nbt.ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &World{Path: path, Compounds: []nbt.Compound{c}}, nil
}
