package planar

import "math"

// BodyPair is an unordered candidate pair from the broadphase, stored with
// A < B.
type BodyPair struct {
	A, B BodyID
}

type cellKey struct {
	X, Y int32
}

// SpatialHash is a uniform grid broadphase. A body's AABB is inserted into
// every cell it overlaps, duplicating entries rather than maintaining a tree.
// The hash holds no cross-frame state: Clear runs before each step's
// reinsertion.
//
// Buckets are visited in creation order so that Pairs is deterministic for a
// given insertion sequence, which replay depends on.
type SpatialHash struct {
	cellSize float64
	cells    map[cellKey][]BodyID
	order    []cellKey
}

// NewSpatialHash creates a hash with square cells of the given size. A zero
// or negative size falls back to the default.
func NewSpatialHash(cellSize float64) *SpatialHash {
	if cellSize <= 0.0 {
		cellSize = defaultCellSize
	}
	return &SpatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]BodyID),
	}
}

func (h *SpatialHash) CellSize() float64 { return h.cellSize }

// Clear empties every bucket.
func (h *SpatialHash) Clear() {
	h.cells = make(map[cellKey][]BodyID)
	h.order = h.order[:0]
}

// Insert adds the body to every cell its AABB overlaps, inclusive on both
// corners.
func (h *SpatialHash) Insert(id BodyID, minX, minY, maxX, maxY float64) {
	x0 := int32(math.Floor(minX / h.cellSize))
	y0 := int32(math.Floor(minY / h.cellSize))
	x1 := int32(math.Floor(maxX / h.cellSize))
	y1 := int32(math.Floor(maxY / h.cellSize))

	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			key := cellKey{x, y}
			bucket, ok := h.cells[key]
			if !ok {
				h.order = append(h.order, key)
			}
			h.cells[key] = append(bucket, id)
		}
	}
}

// Pairs scans every bucket and emits each unordered pair sharing a bucket
// exactly once, even when the pair shares several cells.
func (h *SpatialHash) Pairs() []BodyPair {
	var pairs []BodyPair
	seen := make(map[uint64]struct{})

	for _, key := range h.order {
		bucket := h.cells[key]
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				a, b := bucket[i], bucket[j]
				if a == b {
					continue
				}
				if a > b {
					a, b = b, a
				}
				pairKey := uint64(a)<<32 | uint64(b)
				if _, dup := seen[pairKey]; dup {
					continue
				}
				seen[pairKey] = struct{}{}
				pairs = append(pairs, BodyPair{A: a, B: b})
			}
		}
	}
	return pairs
}
