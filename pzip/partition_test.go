package pzip

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		workers int
		policy  RemainderPolicy
		want    []Range
	}{
		{
			name:    "even split",
			length:  9,
			workers: 3,
			want:    []Range{{0, 3}, {3, 3}, {6, 3}},
		},
		{
			name:    "remainder truncated",
			length:  10,
			workers: 3,
			want:    []Range{{0, 3}, {3, 3}, {6, 3}},
		},
		{
			name:    "remainder extends last",
			length:  10,
			workers: 3,
			policy:  ExtendLast,
			want:    []Range{{0, 3}, {3, 3}, {6, 4}},
		},
		{
			name:    "empty input",
			length:  0,
			workers: 2,
			want:    []Range{{0, 0}, {0, 0}},
		},
		{
			name:    "more workers than characters",
			length:  2,
			workers: 4,
			want:    []Range{{0, 0}, {0, 0}, {0, 0}, {0, 0}},
		},
		{
			name:    "more workers than characters extended",
			length:  2,
			workers: 4,
			policy:  ExtendLast,
			want:    []Range{{0, 0}, {0, 0}, {0, 0}, {0, 2}},
		},
		{
			name:    "no workers",
			length:  5,
			workers: 0,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(tt.length, tt.workers, tt.policy)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartition_DisjointAndOrdered(t *testing.T) {
	for length := 0; length < 40; length++ {
		for workers := 1; workers < 10; workers++ {
			for _, policy := range []RemainderPolicy{Truncate, ExtendLast} {
				name := fmt.Sprintf("%d/%d/%s", length, workers, policy)
				ranges := Partition(length, workers, policy)
				next, covered := 0, 0
				for _, r := range ranges {
					if r.Len > 0 {
						assert.Equal(t, next, r.Start, name)
					}
					next = r.End()
					covered += r.Len
				}
				assert.Equal(t, Scanned(length, workers, policy), covered, name)
				assert.LessOrEqual(t, next, length, name)
			}
		}
	}
}
