package triad

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Partition splits [0, size) into parts contiguous, non-overlapping ranges
// of size/parts elements each. The last range is extended to size so that
// it absorbs the remainder. When parts exceeds size the leading ranges are
// empty.
func Partition(size, parts int) []Range {
	if parts < 1 {
		parts = 1
	}
	cs := size / parts
	ranges := make([]Range, parts)
	for i := range ranges {
		lo := cs * i
		hi := min(cs*(i+1), size)
		if i == parts-1 {
			hi = size
		}
		ranges[i] = Range{Lo: lo, Hi: hi}
	}
	return ranges
}
