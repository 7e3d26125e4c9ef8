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

// Package nbttest provides support for building wire-format fixtures in
// the region, chunk and world tests.
package nbttest

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"

	"github.com/mcformats/mcworld/lib/nbt"
)

// GzipBlob gzip-compresses b.
func GzipBlob(b []byte) []byte {
	buf := &bytes.Buffer{}
	w := gzip.NewWriter(buf)
	if _, err := w.Write(b); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// ZlibBlob zlib-compresses b.
func ZlibBlob(b []byte) []byte {
	buf := &bytes.Buffer{}
	w := zlib.NewWriter(buf)
	if _, err := w.Write(b); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// BuildRegion lays out a region file image: an offset table, a timestamp
// table and one sector-aligned payload per chunk. chunks maps a chunk
// index (0..1023) to its compressed-and-framed tag bytes; method is the
// compression id written to each chunk's 5-byte header.
func BuildRegion(chunks map[int][]byte, method uint8) []byte {
	const sectorLen = 4096

	indexes := make([]int, 0, len(chunks))
	for i := range chunks {
		indexes = append(indexes, i)
	}
	// Deterministic layout: ascending chunk index.
	for i := 1; i < len(indexes); i++ {
		for j := i; j > 0 && indexes[j-1] > indexes[j]; j-- {
			indexes[j-1], indexes[j] = indexes[j], indexes[j-1]
		}
	}

	image := make([]byte, 2*sectorLen)
	sector := 2
	for _, i := range indexes {
		payload := chunks[i]
		// 5-byte chunk header: length (method byte included) and method.
		length := len(payload) + 1
		body := make([]byte, 5+len(payload))
		body[0] = uint8(length >> 24)
		body[1] = uint8(length >> 16)
		body[2] = uint8(length >> 8)
		body[3] = uint8(length)
		body[4] = method
		copy(body[5:], payload)

		sectors := (len(body) + sectorLen - 1) / sectorLen
		entry := image[4*i:]
		entry[0] = uint8(sector >> 16)
		entry[1] = uint8(sector >> 8)
		entry[2] = uint8(sector)
		entry[3] = uint8(sectors)

		padded := make([]byte, sectors*sectorLen)
		copy(padded, body)
		image = append(image, padded...)
		sector += sectors
	}
	return image
}

// PackIndices packs palette indices into 64-bit words, LSB-first, width
// bits each, never straddling a word boundary.
func PackIndices(width uint, indices []uint32) []int64 {
	perWord := 64 / int(width)
	var words []int64
	for i := 0; i < len(indices); i += perWord {
		w := uint64(0)
		for k := 0; k < perWord && i+k < len(indices); k++ {
			w |= uint64(indices[i+k]) << (uint(k) * width)
		}
		words = append(words, int64(w))
	}
	return words
}

// Palette builds a `palette` list tag from block names.
func Palette(names ...string) nbt.Tag {
	entries := make([]nbt.Tag, len(names))
	for i, name := range names {
		entries[i] = nbt.CompoundTag(map[string]nbt.Tag{
			"Name": nbt.String(name),
		})
	}
	return nbt.List(nbt.KindCompound, entries)
}

// Section builds one `sections` list entry. data may be nil for a
// single-entry section.
func Section(y int8, palette nbt.Tag, data []int64) nbt.Tag {
	blockStates := map[string]nbt.Tag{
		"palette": palette,
	}
	if data != nil {
		blockStates["data"] = nbt.LongArray(data)
	}
	return nbt.CompoundTag(map[string]nbt.Tag{
		"Y":            nbt.Byte(y),
		"block_states": nbt.CompoundTag(blockStates),
	})
}

// Chunk builds a chunk root compound at chunk position (cx, cz) with the
// given sections.
func Chunk(cx, cz int32, sections ...nbt.Tag) nbt.Compound {
	return nbt.Compound{
		Tags: map[string]nbt.Tag{
			"xPos":     nbt.Int(cx),
			"yPos":     nbt.Int(-4),
			"zPos":     nbt.Int(cz),
			"sections": nbt.List(nbt.KindCompound, sections),
		},
	}
}
