package triad

import (
	apperrors "github.com/agbru/triadbench/internal/errors"
	"github.com/agbru/triadbench/internal/memory"
)

// Initial vector contents. A is overwritten by the first kernel pass, so
// after any number of passes every A[i] equals InitB + InitC*InitD.
const (
	InitA = 2.0
	InitB = 1.0
	InitC = 0.5
	InitD = 1.01
)

const (
	// VectorCount is the number of vectors the kernel touches.
	VectorCount = 4
	// BytesPerWord is the size of one vector element.
	BytesPerWord = 8
)

// Vectors holds the four equal-length operands of the triad kernel.
// The lengths are equal by construction and are not re-validated later.
type Vectors struct {
	A, B, C, D []float64
}

// NewVectors allocates four cache-line aligned vectors of the given size
// from a single arena block and fills them with the initial constants.
// The fill is partitioned over threads units so that
// each unit first touches the pages it will later work on.
func NewVectors(size, threads int) (*Vectors, error) {
	if size <= 0 {
		return nil, apperrors.ValidationError{Field: "size", Message: "must be greater than zero"}
	}
	arena, err := memory.NewArena(VectorCount, size)
	if err != nil {
		return nil, err
	}
	v := &Vectors{
		A: arena.Alloc(size),
		B: arena.Alloc(size),
		C: arena.Alloc(size),
		D: arena.Alloc(size),
	}
	ranges := Partition(size, units(threads))
	err = fanOut("init", len(ranges), func(u int) {
		r := ranges[u]
		fill(v.A[r.Lo:r.Hi], InitA)
		fill(v.B[r.Lo:r.Hi], InitB)
		fill(v.C[r.Lo:r.Hi], InitC)
		fill(v.D[r.Lo:r.Hi], InitD)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Size returns the common vector length.
func (v *Vectors) Size() int { return len(v.A) }

// FootprintBytes returns the memory held by the four vectors.
func (v *Vectors) FootprintBytes() uint64 {
	return VectorCount * uint64(v.Size()) * BytesPerWord
}

func fill(s []float64, x float64) {
	for i := range s {
		s[i] = x
	}
}
