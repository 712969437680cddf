package sales

import (
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
)

// PlanConsumption walks lots in the order given, which must already be
// FIFO, taking min(left, qtyRemaining) from each until qty is covered.
// Whatever the lots cannot cover is returned as shortfall.
func PlanConsumption(lots []model.Lot, qty int64) ([]model.LotTake, int64) {
	takes := make([]model.LotTake, 0)
	left := qty
	for _, lot := range lots {
		if left <= 0 {
			break
		}
		if lot.QtyRemaining <= 0 {
			continue
		}
		take := lot.QtyRemaining
		if take > left {
			take = left
		}
		takes = append(takes, model.LotTake{LotID: lot.ID, Location: lot.Location, Qty: take})
		left -= take
	}
	if left < 0 {
		left = 0
	}
	return takes, left
}

// simulation remembers what earlier simulated sales in the same run took, so
// two sales of one SKU are not both planned against the same units.
type simulation struct {
	taken map[uint64]int64
}

func newSimulation() *simulation {
	return &simulation{taken: make(map[uint64]int64)}
}

func (s *simulation) plan(lots []model.Lot, qty int64) ([]model.LotTake, int64) {
	adjusted := make([]model.Lot, len(lots))
	for i, lot := range lots {
		lot.QtyRemaining -= s.taken[lot.ID]
		adjusted[i] = lot
	}
	takes, shortfall := PlanConsumption(adjusted, qty)
	for _, t := range takes {
		s.taken[t.LotID] += t.Qty
	}
	return takes, shortfall
}
