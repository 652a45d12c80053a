// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package llrb

import (
	"errors"
	"fmt"
)

// ErrCorrupt is wrapped by every error returned from Check.
var ErrCorrupt = errors.New("llrb: invariant violated")

// Check walks the whole tree and verifies the ordering and balance
// invariants as well as the cached length.  It is O(n) and intended for tests
// and debug builds; a non-nil result means the tree is corrupt and must not
// be used any further.
func (t *Tree[K, V]) Check() error {
	if isRed(t.root) {
		return fmt.Errorf("%w: red root", ErrCorrupt)
	}
	count := 0
	if _, err := t.check(t.root, empty[K](), empty[K](), &count); err != nil {
		return err
	}
	if count != t.length {
		return fmt.Errorf("%w: counted %d entries, length is %d", ErrCorrupt, count, t.length)
	}
	return nil
}

// check verifies the subtree rooted at h, whose keys must all lie strictly
// between lo and hi, and returns its black height.
func (t *Tree[K, V]) check(h *node[K, V], lo, hi optionalKey[K], count *int) (int, error) {
	if h == nil {
		return 0, nil
	}
	*count++
	if lo.valid && t.compare(h.key, lo.key) <= 0 {
		return 0, fmt.Errorf("%w: key %v is not greater than %v", ErrCorrupt, h.key, lo.key)
	}
	if hi.valid && 0 <= t.compare(h.key, hi.key) {
		return 0, fmt.Errorf("%w: key %v is not less than %v", ErrCorrupt, h.key, hi.key)
	}
	if isRed(h.right) {
		return 0, fmt.Errorf("%w: right-leaning red link below %v", ErrCorrupt, h.key)
	}
	if h.red && isRed(h.left) {
		return 0, fmt.Errorf("%w: two red links in a row at %v", ErrCorrupt, h.key)
	}
	left, err := t.check(h.left, lo, optional(h.key), count)
	if err != nil {
		return 0, err
	}
	right, err := t.check(h.right, optional(h.key), hi, count)
	if err != nil {
		return 0, err
	}
	if left != right {
		return 0, fmt.Errorf("%w: black height %d on the left and %d on the right of %v", ErrCorrupt, left, right, h.key)
	}
	if !h.red {
		left++
	}
	return left, nil
}
