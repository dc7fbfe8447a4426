package memory

import (
	"fmt"
	"math"
	"unsafe"

	apperrors "github.com/agbru/triadbench/internal/errors"
)

// CacheLineBytes is the alignment of every vector carved from an Arena.
const CacheLineBytes = 64

// MaxArenaBytes caps one arena block, below the largest allocation the
// runtime accepts on 64-bit platforms.
const MaxArenaBytes uint64 = 1 << 46

const wordsPerLine = CacheLineBytes / 8

// Arena pre-allocates one contiguous block of float64 words and hands out
// cache-line aligned, fixed-capacity slices from it with a bump pointer.
// When the block is exhausted it falls back to heap allocation.
type Arena struct {
	buf    []float64
	offset int
}

// NewArena creates an arena able to hold count vectors of size elements,
// each starting on a cache-line boundary. A size above MaxVectorLen(count)
// is rejected with a ValidationError instead of reaching make.
func NewArena(count, size int) (*Arena, error) {
	if count <= 0 || size <= 0 {
		return &Arena{}, nil
	}
	if limit := MaxVectorLen(count); size > limit {
		return nil, apperrors.ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("%d elements per vector exceeds the maximum of %d", size, limit),
		}
	}
	// One extra line absorbs the misalignment of the block itself.
	total := count*padded(size) + wordsPerLine
	buf := make([]float64, total)
	return &Arena{buf: buf, offset: misalignment(buf)}, nil
}

// MaxVectorLen returns the largest vector length for which an arena of
// count vectors stays within MaxArenaBytes and the int range.
func MaxVectorLen(count int) int {
	if count <= 0 {
		return 0
	}
	limit := MaxArenaBytes
	if m := uint64(math.MaxInt); m < limit {
		limit = m
	}
	words := limit/8 - wordsPerLine
	return int(words / uint64(count) / wordsPerLine * wordsPerLine)
}

// Alloc returns a zeroed slice of n elements. Its capacity is exactly n so
// appends never spill into the neighbouring vector.
func (a *Arena) Alloc(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if a.buf == nil || a.offset+n > len(a.buf) {
		return make([]float64, n)
	}
	s := a.buf[a.offset : a.offset+n : a.offset+n]
	a.offset += padded(n)
	if a.offset > len(a.buf) {
		a.offset = len(a.buf)
	}
	return s
}

// UsedWords returns the number of words consumed, alignment padding included.
func (a *Arena) UsedWords() int { return a.offset }

// CapacityWords returns the total capacity of the arena in words.
func (a *Arena) CapacityWords() int { return len(a.buf) }

// Aligned reports whether s starts on a cache-line boundary.
func Aligned(s []float64) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%CacheLineBytes == 0
}

// padded rounds n up to a whole number of cache lines.
func padded(n int) int {
	return (n + wordsPerLine - 1) / wordsPerLine * wordsPerLine
}

// misalignment returns the number of leading words to skip so that the
// next slice starts on a cache-line boundary.
func misalignment(buf []float64) int {
	if len(buf) == 0 {
		return 0
	}
	rem := int(uintptr(unsafe.Pointer(&buf[0])) % CacheLineBytes)
	if rem == 0 {
		return 0
	}
	return (CacheLineBytes - rem) / 8
}
