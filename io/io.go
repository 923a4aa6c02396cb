// Package io defines the CHIP-8 hex keypad as seen by the interpreter
// plus a concrete implementation frontends can drive from their own
// event loops. The interpreter only ever reads key state and never changes it.
//
// The original COSMAC VIP keypad is laid out as:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
package io

import (
	"sync/atomic"
	"unicode"
)

// NUM_KEYS is the number of logical keys on the keypad (0-F).
const NUM_KEYS = 16

// Keypad defines the input capability consumed by the interpreter.
type Keypad interface {
	// IsDown returns true if the logical key (0-F) is currently pressed.
	// Values above 0xF are never down.
	IsDown(key uint8) bool
}

// Keys holds the state of all 16 keys as a bit mask so it can be updated from
// an input goroutine while the interpreter reads it.
// The zero value has every key up.
type Keys struct {
	mask atomic.Uint32
}

var _ = Keypad(&Keys{})

// IsDown implements the Keypad interface.
func (k *Keys) IsDown(key uint8) bool {
	if key >= NUM_KEYS {
		return false
	}
	return k.mask.Load()&(1<<key) != 0
}

// Press marks the key as down. Out of range keys are ignored.
func (k *Keys) Press(key uint8) {
	if key >= NUM_KEYS {
		return
	}
	for {
		old := k.mask.Load()
		if k.mask.CompareAndSwap(old, old|1<<key) {
			return
		}
	}
}

// Release marks the key as up. Out of range keys are ignored.
func (k *Keys) Release(key uint8) {
	if key >= NUM_KEYS {
		return
	}
	for {
		old := k.mask.Load()
		if k.mask.CompareAndSwap(old, old&^(1<<key)) {
			return
		}
	}
}

// Reset releases every key.
func (k *Keys) Reset() {
	k.mask.Store(0)
}

// Mask returns the current state with bit N set for each key N that's down.
func (k *Keys) Mask() uint16 {
	return uint16(k.mask.Load())
}

// Layout is the default host keyboard mapping. The rune at index N maps to
// logical key N which puts the keypad on the left side of a QWERTY keyboard:
//
//	1 2 3 4
//	q w e r
//	a s d f
//	z x c v
const Layout = "x123qweasdzc4rfv"

// KeyFor maps a host rune to a logical key using Layout. Letters are
// case insensitive. The second return is false if the rune isn't mapped.
func KeyFor(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for i, l := range Layout {
		if l == r {
			return uint8(i), true
		}
	}
	return 0, false
}
