package capacity

import (
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
)

// Allocate finds a location for qty incoming units of sourceCode.
//
// A start row qualifies when its own free space, or the free space summed
// from it to the end of its group, covers qty. The returned location always
// names the start row, even when the span check leaned on later rows; the
// overflow is not recorded anywhere else.
func Allocate(occ *Occupancy, class constant.StockClass, sourceCode string, qty int64) (Location, error) {
	for _, g := range Groups(class) {
		bins := g.Bins()
		for i, start := range bins {
			if !spanFits(occ, bins[i:], qty) {
				continue
			}
			batch, ok := occ.batchFor(start, sourceCode)
			if !ok {
				continue
			}
			return Location{Bin: start, Batch: batch}, nil
		}
	}
	return Location{}, ErrCapacityExhausted
}

// AllocateSingleRow is the backfill variant: the whole qty must fit in one
// row. Callers decide which class to search with.
func AllocateSingleRow(occ *Occupancy, class constant.StockClass, sourceCode string, qty int64) (Location, error) {
	for _, g := range Groups(class) {
		for _, b := range g.Bins() {
			if occ.Free(b) < qty {
				continue
			}
			batch, ok := occ.batchFor(b, sourceCode)
			if !ok {
				continue
			}
			return Location{Bin: b, Batch: batch}, nil
		}
	}
	return Location{}, ErrCapacityExhausted
}

func spanFits(occ *Occupancy, bins []Bin, qty int64) bool {
	if occ.Free(bins[0]) >= qty {
		return true
	}
	var sum int64
	for _, b := range bins {
		sum += occ.Free(b)
		if sum >= qty {
			return true
		}
	}
	return false
}
