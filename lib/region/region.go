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

// Package region reads Minecraft region files (.mca and .mcr): containers
// of up to 1024 chunks addressed by (chunk-x mod 32, chunk-z mod 32).
//
// The region format is described at https://minecraft.wiki/w/Region_file_format
//
// A region file starts with a 4096-byte offset table of 1024 entries (3
// bytes of 4-KiB-sector offset, 1 byte of sector count; all-zero means the
// chunk is absent), then a 4096-byte timestamp table, then sector-aligned
// chunk payloads. Each payload is a 4-byte big-endian length, a 1-byte
// compression method id, and the compressed NBT document.
//
// A File borrows its backing byte slice for the duration of parsing; the
// decoded compounds own their data. Decoding distinct chunks touches only
// disjoint input, so per-chunk decoding is safe to run in parallel.
package region

import (
	"errors"
	"fmt"
	"time"

	"github.com/mcformats/mcworld/lib/compression"
	"github.com/mcformats/mcworld/lib/nbt"
)

const (
	// MaxChunks is the number of offset-table entries in a region file.
	MaxChunks = 1024

	sectorLen      = 4096
	chunkHeaderLen = 5
)

var (
	ErrShortHeader    = errors.New("region: input is shorter than the offset table")
	ErrBadOffset      = errors.New("region: chunk sector range is out of bounds")
	ErrBadChunkHeader = errors.New("region: bad chunk payload header")
	ErrAbsentChunk    = errors.New("region: chunk is absent")
)

// ChunkError is a per-chunk failure, annotated with the 0..1023 chunk
// index it occurred at.
type ChunkError struct {
	Index int
	Err   error
}

func (e ChunkError) Error() string {
	return fmt.Sprintf("region: chunk %d: %v", e.Index, e.Err)
}

func (e ChunkError) Unwrap() error { return e.Err }

// File is a parsed region file header over a borrowed byte slice.
//
// Do not modify src between Parse and the last chunk access.
type File struct {
	src     []byte
	entries [MaxChunks]entry
}

type entry struct {
	sectorOffset uint32
	sectorCount  uint32
}

// Parse validates the offset table of a region file. Chunk payloads are
// decoded lazily, by Chunk or Compounds.
func Parse(src []byte) (*File, error) {
	if len(src) < sectorLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortHeader, len(src))
	}
	f := &File{src: src}
	for i := range f.entries {
		b := src[4*i:]
		f.entries[i] = entry{
			sectorOffset: uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]),
			sectorCount:  uint32(b[3]),
		}
	}
	return f, nil
}

// Present reports whether the chunk at index i has a payload.
func (f *File) Present(i int) bool {
	if i < 0 || i >= MaxChunks {
		return false
	}
	e := f.entries[i]
	return e.sectorOffset != 0 || e.sectorCount != 0
}

// Len returns the number of present chunks.
func (f *File) Len() int {
	n := 0
	for i := range f.entries {
		if f.Present(i) {
			n++
		}
	}
	return n
}

// ModTime returns the chunk's last-modification time from the timestamp
// table, or the zero time if the table is missing or the entry is zero.
// The chunk decoding pipeline does not consult it.
func (f *File) ModTime(i int) time.Time {
	if i < 0 || i >= MaxChunks || len(f.src) < 2*sectorLen {
		return time.Time{}
	}
	b := f.src[sectorLen+4*i:]
	epoch := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	if epoch == 0 {
		return time.Time{}
	}
	return time.Unix(int64(epoch), 0)
}

// Chunk decodes the chunk at index i to its root compound. It fails with
// ErrAbsentChunk (wrapped) if the offset-table entry is all-zero.
func (f *File) Chunk(i int) (nbt.Compound, error) {
	if i < 0 || i >= MaxChunks {
		return nbt.Compound{}, ChunkError{i, ErrAbsentChunk}
	}
	if !f.Present(i) {
		return nbt.Compound{}, ChunkError{i, ErrAbsentChunk}
	}

	e := f.entries[i]
	lo := int64(e.sectorOffset) * sectorLen
	hi := lo + int64(e.sectorCount)*sectorLen
	if hi > int64(len(f.src)) {
		return nbt.Compound{}, ChunkError{i, fmt.Errorf(
			"%w: sectors [%d, %d) in a %d byte file", ErrBadOffset, lo, hi, len(f.src))}
	}
	data := f.src[lo:hi]

	if len(data) < chunkHeaderLen {
		return nbt.Compound{}, ChunkError{i, fmt.Errorf(
			"%w: %d bytes", ErrBadChunkHeader, len(data))}
	}
	// The 4-byte length counts the method byte but not itself.
	length := int64(data[0])<<24 | int64(data[1])<<16 | int64(data[2])<<8 | int64(data[3])
	if length < 1 || 4+length > int64(len(data)) {
		return nbt.Compound{}, ChunkError{i, fmt.Errorf(
			"%w: payload length %d in a %d byte range", ErrBadChunkHeader, length, len(data))}
	}
	method := data[4]
	payload := data[chunkHeaderLen : 4+length]

	raw, err := compression.Decode(payload, method)
	if err != nil {
		return nbt.Compound{}, ChunkError{i, err}
	}
	c, err := nbt.Decode(raw)
	if err != nil {
		return nbt.Compound{}, ChunkError{i, err}
	}
	return c, nil
}

// Compounds decodes every present chunk, in index order 0..1023. A chunk
// that fails to decode does not abort the rest: failures are collected and
// returned alongside the successfully decoded compounds.
func (f *File) Compounds() ([]nbt.Compound, []ChunkError) {
	var chunks []nbt.Compound
	var errs []ChunkError
	for i := 0; i < MaxChunks; i++ {
		if !f.Present(i) {
			continue
		}
		c, err := f.Chunk(i)
		if err != nil {
			var ce ChunkError
			if !errors.As(err, &ce) {
				ce = ChunkError{i, err}
			}
			errs = append(errs, ce)
			continue
		}
		chunks = append(chunks, c)
	}
	return chunks, errs
}
