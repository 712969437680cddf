package capacity

import (
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
)

type binState struct {
	usage         int64
	maxBatch      int
	batches       map[int]struct{}
	batchBySource map[string]int
}

// Occupancy is a point-in-time view of every located lot, indexed by bin.
// Allocators read it and Place writes to it, so one snapshot can serve a
// whole batch without re-reading the lots table per item.
type Occupancy struct {
	bins    map[Bin]*binState
	skipped int
}

func NewOccupancy() *Occupancy {
	return &Occupancy{bins: make(map[Bin]*binState)}
}

// BuildOccupancy indexes lots that carry a location. Lots whose location does
// not parse are left out and counted in Skipped.
func BuildOccupancy(lots []model.Lot) *Occupancy {
	occ := NewOccupancy()
	for _, lot := range lots {
		if lot.Location == nil {
			continue
		}
		loc, err := ParseLocation(*lot.Location)
		if err != nil {
			occ.skipped++
			continue
		}
		occ.add(loc, lot.SourceCode, lot.QtyRemaining)
	}
	return occ
}

func (o *Occupancy) state(b Bin) *binState {
	st, ok := o.bins[b]
	if !ok {
		st = &binState{batches: make(map[int]struct{}), batchBySource: make(map[string]int)}
		o.bins[b] = st
	}
	return st
}

func (o *Occupancy) add(loc Location, sourceCode string, qty int64) {
	st := o.state(loc.Bin)
	st.usage += qty
	st.batches[loc.Batch] = struct{}{}
	if loc.Batch > st.maxBatch {
		st.maxBatch = loc.Batch
	}
	if cur, ok := st.batchBySource[sourceCode]; !ok || loc.Batch < cur {
		st.batchBySource[sourceCode] = loc.Batch
	}
}

// Place records qty of sourceCode at loc.
func (o *Occupancy) Place(loc Location, sourceCode string, qty int64) {
	o.add(loc, sourceCode, qty)
}

// Release takes qty out of a bin's usage. Batch numbers stay reserved.
func (o *Occupancy) Release(b Bin, qty int64) {
	st := o.state(b)
	st.usage -= qty
	if st.usage < 0 {
		st.usage = 0
	}
}

func (o *Occupancy) Usage(b Bin) int64 {
	if st, ok := o.bins[b]; ok {
		return st.usage
	}
	return 0
}

// Free is the remaining capacity of a bin, never below zero.
func (o *Occupancy) Free(b Bin) int64 {
	free := BinCapacity - o.Usage(b)
	if free < 0 {
		return 0
	}
	return free
}

func (o *Occupancy) MaxBatch(b Bin) int {
	if st, ok := o.bins[b]; ok {
		return st.maxBatch
	}
	return 0
}

// Skipped counts located lots whose location could not be parsed.
func (o *Occupancy) Skipped() int { return o.skipped }

// batchFor picks the batch a lot of sourceCode gets in bin b: the batch the
// shipment already uses there, else max+1, else the lowest free number.
func (o *Occupancy) batchFor(b Bin, sourceCode string) (int, bool) {
	st, ok := o.bins[b]
	if !ok {
		return 1, true
	}
	if batch, ok := st.batchBySource[sourceCode]; ok {
		return batch, true
	}
	if st.maxBatch < MaxBatch {
		return st.maxBatch + 1, true
	}
	for n := 1; n <= MaxBatch; n++ {
		if _, used := st.batches[n]; !used {
			return n, true
		}
	}
	return 0, false
}
