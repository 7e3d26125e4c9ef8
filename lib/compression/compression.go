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

// Package compression undoes the per-chunk compression framings of the
// Minecraft world-storage formats.
//
// Region files tag each chunk payload with a 1-byte method id. Standalone
// files carry no such byte; for those, Sniff tries each known framing in
// turn and keeps the first result that starts like an NBT document.
package compression

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// Method ids as stored in a region chunk header. Some writers use 3 for
// uncompressed payloads instead of 0.
const (
	MethodNone    = 0
	MethodGzip    = 1
	MethodZlib    = 2
	MethodNoneAlt = 3
)

var (
	ErrUnknownMethod       = errors.New("compression: unknown compression method")
	ErrDecompressionFailed = errors.New("compression: no known method decompresses the payload")
)

// Decode undoes the compression framing identified by method.
func Decode(payload []byte, method uint8) ([]byte, error) {
	switch method {
	case MethodGzip:
		r, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("compression: gzip: %w", err)
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("compression: gzip: %w", err)
		}
		return b, nil
	case MethodZlib:
		r, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("compression: zlib: %w", err)
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("compression: zlib: %w", err)
		}
		return b, nil
	case MethodNone, MethodNoneAlt:
		return payload, nil
	}
	return nil, fmt.Errorf("%w %d", ErrUnknownMethod, method)
}

// Sniff decompresses a payload whose framing is not advertised, trying
// gzip, then zlib, then raw. The first result whose leading byte is a
// valid NBT tag kind id (0..12) wins. If none qualifies, Sniff returns
// ErrDecompressionFailed.
func Sniff(payload []byte) ([]byte, error) {
	for _, method := range []uint8{MethodGzip, MethodZlib, MethodNone} {
		b, err := Decode(payload, method)
		if err != nil || len(b) == 0 || b[0] > 12 {
			continue
		}
		return b, nil
	}
	return nil, ErrDecompressionFailed
}
