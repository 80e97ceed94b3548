package bridge

import (
	"fmt"
	"math"
	"strconv"
)

// Handle is an opaque token naming one live import session. The high 32 bits
// carry the slot generation and the low 32 bits the slot index, so a handle
// to a freed session never matches the slot's next occupant.
type Handle uint64

// InvalidHandle is the sentinel returned when no session could be created.
const InvalidHandle Handle = math.MaxUint64

// maxGeneration is never issued so that no live handle equals InvalidHandle.
const maxGeneration = math.MaxUint32

func makeHandle(gen, slot uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(slot))
}

func (h Handle) slot() uint32 { return uint32(h) }

func (h Handle) generation() uint32 { return uint32(h >> 32) }

// String formats the handle as a decimal number.
func (h Handle) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// ParseHandle parses the decimal form produced by String.
func ParseHandle(s string) (Handle, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return InvalidHandle, fmt.Errorf("%w: %q", ErrInvalidHandle, s)
	}
	return Handle(v), nil
}

// nextGeneration advances a slot generation, skipping zero and the value
// that would let a handle collide with InvalidHandle.
func nextGeneration(g uint32) uint32 {
	g++
	if g == 0 || g == maxGeneration {
		g = 1
	}
	return g
}
