package triad

import (
	"fmt"
	"testing"
)

func TestPartition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		size, parts int
		want        []Range
	}{
		{10, 1, []Range{{0, 10}}},
		{10, 2, []Range{{0, 5}, {5, 10}}},
		{10, 3, []Range{{0, 3}, {3, 6}, {6, 10}}},
		{10, 4, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 10}}},
		{3, 5, []Range{{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 3}}},
		{7, 0, []Range{{0, 7}}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("size=%d_parts=%d", tt.size, tt.parts), func(t *testing.T) {
			t.Parallel()
			got := Partition(tt.size, tt.parts)
			if len(got) != len(tt.want) {
				t.Fatalf("Partition(%d, %d) = %v, want %v", tt.size, tt.parts, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("range %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNonEmpty(t *testing.T) {
	t.Parallel()
	got := nonEmpty(Partition(3, 5))
	if len(got) != 1 || got[0] != (Range{0, 3}) {
		t.Errorf("nonEmpty = %v, want [{0 3}]", got)
	}
}
