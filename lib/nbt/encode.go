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

// Encode serializes c to the wire format. The result re-parses to an equal
// Compound, modulo internal key ordering.
func Encode(c Compound) []byte {
	return Append(nil, c)
}

// Append serializes c to the wire format, appending to dst.
func Append(dst []byte, c Compound) []byte {
	dst = append(dst, uint8(KindCompound))
	dst = appendName(dst, c.Name)
	return appendCompoundBody(dst, c.Tags)
}

func appendName(dst []byte, name string) []byte {
	dst = append(dst, uint8(len(name)>>8), uint8(len(name)))
	return append(dst, name...)
}

func appendU32(dst []byte, v uint32) []byte {
	return append(dst, uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
}

func appendU64(dst []byte, v uint64) []byte {
	return append(dst,
		uint8(v>>56), uint8(v>>48), uint8(v>>40), uint8(v>>32),
		uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v))
}

func appendCompoundBody(dst []byte, tags map[string]Tag) []byte {
	for name, t := range tags {
		dst = append(dst, uint8(t.kind))
		dst = appendName(dst, name)
		dst = appendPayload(dst, t)
	}
	return append(dst, uint8(KindEnd))
}

func appendPayload(dst []byte, t Tag) []byte {
	switch t.kind {
	case KindByte:
		dst = append(dst, uint8(t.num))
	case KindShort:
		dst = append(dst, uint8(t.num>>8), uint8(t.num))
	case KindInt, KindFloat:
		dst = appendU32(dst, uint32(t.num))
	case KindLong, KindDouble:
		dst = appendU64(dst, t.num)
	case KindByteArray:
		dst = appendU32(dst, uint32(len(t.i8s)))
		for _, x := range t.i8s {
			dst = append(dst, uint8(x))
		}
	case KindString:
		dst = appendName(dst, t.str)
	case KindList:
		dst = append(dst, uint8(t.elem))
		dst = appendU32(dst, uint32(len(t.list)))
		for _, x := range t.list {
			dst = appendPayload(dst, x)
		}
	case KindCompound:
		dst = appendCompoundBody(dst, t.tags)
	case KindIntArray:
		dst = appendU32(dst, uint32(len(t.i32s)))
		for _, x := range t.i32s {
			dst = appendU32(dst, uint32(x))
		}
	case KindLongArray:
		dst = appendU32(dst, uint32(len(t.i64s)))
		for _, x := range t.i64s {
			dst = appendU64(dst, uint64(x))
		}
	}
	return dst
}
