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

// SearchCompound walks every root in depth-first pre-order and returns the
// compound tags stored under a name equal to key. A compound's name is the
// key under which its parent holds it, or the document name for a root;
// List elements are anonymous and can never match, but their compound
// children are still descended into.
//
// With firstOnly set, the walk stops at the first match.
func SearchCompound(roots []Compound, key string, firstOnly bool) []Tag {
	var found []Tag
	for _, root := range roots {
		t := CompoundTag(root.Tags)
		if searchTag(root.Name, true, t, key, firstOnly, &found) && firstOnly {
			return found
		}
	}
	return found
}

// searchTag reports whether the walk should stop. named is false for List
// elements, which have no name to compare.
func searchTag(name string, named bool, t Tag, key string, firstOnly bool, found *[]Tag) bool {
	switch t.kind {
	case KindCompound:
		if named && name == key {
			*found = append(*found, t)
			if firstOnly {
				return true
			}
		}
		for childName, child := range t.tags {
			if searchTag(childName, true, child, key, firstOnly, found) {
				return true
			}
		}
	case KindList:
		for _, child := range t.list {
			if child.kind != KindCompound {
				break
			}
			if searchTag("", false, child, key, firstOnly, found) {
				return true
			}
		}
	}
	return false
}
