package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	balancerepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/balance"
	ledgerrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/ledger"
	lotrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/lot"
	salesrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/sales"
	stockclassrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/stockclass"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type lots struct{ s *Store }

type balances struct{ s *Store }

type sales struct{ s *Store }

type ledger struct{ s *Store }

type stockClasses struct{ s *Store }

func (s *Store) LotRepository() lotrepo.LotRepository { return lots{s} }

func (s *Store) BalanceRepository() balancerepo.BalanceRepository { return balances{s} }

func (s *Store) SalesRepository() salesrepo.SalesRepository { return sales{s} }

func (s *Store) LedgerRepository() ledgerrepo.LedgerRepository { return ledger{s} }

func (s *Store) StockClassRepository() stockclassrepo.StockClassRepository {
	return stockClasses{s}
}

func (r lots) located(forUpdate bool) ([]model.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	op := "lot.ListLocated"
	if forUpdate {
		op = "lot.ListLocatedTx"
	}
	if err := r.s.fail(op); err != nil {
		return nil, err
	}
	out := make([]model.Lot, 0)
	for _, l := range r.s.st.lots {
		if l.Location != nil {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r lots) ListLocated(ctx context.Context) ([]model.Lot, error) {
	return r.located(false)
}

func (r lots) ListLocatedTx(ctx context.Context, tx *sqlx.Tx) ([]model.Lot, error) {
	return r.located(true)
}

func (r lots) ListUnlocated(ctx context.Context, limit int) ([]model.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("lot.ListUnlocated"); err != nil {
		return nil, err
	}
	out := make([]model.Lot, 0)
	for _, l := range r.s.st.lots {
		if l.Location == nil && l.QtyRemaining > 0 {
			out = append(out, l)
		}
	}
	sortByCreated(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r lots) InsertTx(ctx context.Context, tx *sqlx.Tx, lot *model.Lot) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("lot.InsertTx"); err != nil {
		return 0, err
	}
	return r.s.insertLot(*lot), nil
}

func (r lots) SetLocationIfNullTx(ctx context.Context, tx *sqlx.Tx, id uint64, location string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("lot.SetLocationIfNullTx"); err != nil {
		return false, err
	}
	i := r.s.lotIndex(id)
	if i < 0 || r.s.st.lots[i].Location != nil {
		return false, nil
	}
	loc := location
	r.s.st.lots[i].Location = &loc
	return true, nil
}

func (r lots) open(sku model.SkuKey, op string) ([]model.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return nil, err
	}
	out := make([]model.Lot, 0)
	for _, l := range r.s.st.lots {
		if l.SkuKey == sku && l.QtyRemaining > 0 {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return fifoLess(out[i], out[j]) })
	return out, nil
}

func (r lots) ListOpenBySku(ctx context.Context, sku model.SkuKey) ([]model.Lot, error) {
	return r.open(sku, "lot.ListOpenBySku")
}

func (r lots) ListOpenBySkuTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey) ([]model.Lot, error) {
	return r.open(sku, "lot.ListOpenBySkuTx")
}

func (r lots) DecrementTx(ctx context.Context, tx *sqlx.Tx, id uint64, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("lot.DecrementTx"); err != nil {
		return err
	}
	i := r.s.lotIndex(id)
	if i < 0 || r.s.st.lots[i].QtyRemaining < qty {
		return fmt.Errorf("lot %d: cannot take %d units", id, qty)
	}
	r.s.st.lots[i].QtyRemaining -= qty
	return nil
}

func (r lots) SetLocation(ctx context.Context, ids []uint64, location string) (int64, error) {
	if err := r.s.acquire(ctx); err != nil {
		return 0, err
	}
	defer r.s.release()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("lot.SetLocation"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if i := r.s.lotIndex(id); i >= 0 {
			loc := location
			r.s.st.lots[i].Location = &loc
			n++
		}
	}
	return n, nil
}

func (r lots) SumBySku(ctx context.Context) ([]model.LotSum, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("lot.SumBySku"); err != nil {
		return nil, err
	}
	idx := make(map[model.SkuKey]int)
	out := make([]model.LotSum, 0)
	for _, l := range r.s.st.lots {
		i, ok := idx[l.SkuKey]
		if !ok {
			i = len(out)
			idx[l.SkuKey] = i
			out = append(out, model.LotSum{SkuKey: l.SkuKey})
		}
		out[i].QtyIn += l.QtyIn
		out[i].QtyRemaining += l.QtyRemaining
	}
	return out, nil
}

func (r balances) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey) (*model.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("balance.GetForUpdateTx"); err != nil {
		return nil, err
	}
	b, ok := r.s.st.balances[sku]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r balances) InsertTx(ctx context.Context, tx *sqlx.Tx, b *model.Balance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("balance.InsertTx"); err != nil {
		return err
	}
	if _, ok := r.s.st.balances[b.SkuKey]; ok {
		return fmt.Errorf("duplicate balance %s", b.SkuKey)
	}
	r.s.st.balances[b.SkuKey] = *b
	return nil
}

func (r balances) UpdateStockInTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey, qty int64, avgUnitCostEur decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("balance.UpdateStockInTx"); err != nil {
		return err
	}
	b, ok := r.s.st.balances[sku]
	if !ok {
		return sql.ErrNoRows
	}
	b.QtyOnHand += qty
	b.AvgUnitCostEur = avgUnitCostEur
	r.s.st.balances[sku] = b
	return nil
}

func (r balances) ApplySaleTx(ctx context.Context, tx *sqlx.Tx, sku model.SkuKey, qty int64, saleAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("balance.ApplySaleTx"); err != nil {
		return err
	}
	b, ok := r.s.st.balances[sku]
	if !ok {
		b = model.Balance{SkuKey: sku, AvgUnitCostEur: decimal.Zero}
	}
	b.QtyOnHand -= qty
	if b.LastSaleAt == nil || saleAt.After(*b.LastSaleAt) {
		at := saleAt
		b.LastSaleAt = &at
	}
	r.s.st.balances[sku] = b
	return nil
}

func (r balances) List(ctx context.Context) ([]model.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("balance.List"); err != nil {
		return nil, err
	}
	out := make([]model.Balance, 0, len(r.s.st.balances))
	for _, b := range r.s.st.balances {
		out = append(out, b)
	}
	return out, nil
}

func (r sales) ListUnapplied(ctx context.Context, since time.Time, limit int) ([]model.SalesLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("sales.ListUnapplied"); err != nil {
		return nil, err
	}
	out := make([]model.SalesLog, 0)
	for _, row := range r.s.st.sales {
		if row.InventoryAppliedAt == nil && row.InventoryRejectedAt == nil && !row.CreatedAt.Before(since) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r sales) get(id uint64, op string) (*model.SalesLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(op); err != nil {
		return nil, err
	}
	if id == 0 || int(id) > len(r.s.st.sales) {
		return nil, nil
	}
	row := r.s.st.sales[id-1]
	return &row, nil
}

func (r sales) GetByID(ctx context.Context, id uint64) (*model.SalesLog, error) {
	return r.get(id, "sales.GetByID")
}

func (r sales) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.SalesLog, error) {
	return r.get(id, "sales.GetForUpdateTx")
}

func (r sales) MarkAppliedTx(ctx context.Context, tx *sqlx.Tx, id uint64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("sales.MarkAppliedTx"); err != nil {
		return err
	}
	if id == 0 || int(id) > len(r.s.st.sales) || r.s.st.sales[id-1].InventoryAppliedAt != nil {
		return sql.ErrNoRows
	}
	applied := at
	r.s.st.sales[id-1].InventoryAppliedAt = &applied
	return nil
}

func (r sales) MarkRejected(ctx context.Context, id uint64, reason string, at time.Time) error {
	if err := r.s.acquire(ctx); err != nil {
		return err
	}
	defer r.s.release()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("sales.MarkRejected"); err != nil {
		return err
	}
	if id == 0 || int(id) > len(r.s.st.sales) {
		return nil
	}
	row := &r.s.st.sales[id-1]
	if row.InventoryAppliedAt != nil || row.InventoryRejectedAt != nil {
		return nil
	}
	rejected, msg := at, reason
	row.InventoryRejectedAt = &rejected
	row.InventoryError = &msg
	return nil
}

func (r sales) SumAppliedBySku(ctx context.Context) ([]model.SaleSum, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("sales.SumAppliedBySku"); err != nil {
		return nil, err
	}
	idx := make(map[model.SkuKey]int)
	out := make([]model.SaleSum, 0)
	for _, row := range r.s.st.sales {
		if row.InventoryAppliedAt == nil {
			continue
		}
		i, ok := idx[row.SkuKey]
		if !ok {
			i = len(out)
			idx[row.SkuKey] = i
			out = append(out, model.SaleSum{SkuKey: row.SkuKey})
		}
		out[i].Qty += row.Qty
	}
	return out, nil
}

func (r ledger) InsertTx(ctx context.Context, tx *sqlx.Tx, txn *model.InventoryTxn) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("ledger.InsertTx"); err != nil {
		return err
	}
	txn.ID = r.s.st.nextTxnID
	r.s.st.nextTxnID++
	r.s.st.txns = append(r.s.st.txns, *txn)
	return nil
}

func (r ledger) ListBySale(ctx context.Context, saleID uint64) ([]model.InventoryTxn, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("ledger.ListBySale"); err != nil {
		return nil, err
	}
	out := make([]model.InventoryTxn, 0)
	for _, t := range r.s.st.txns {
		if t.SalesLogID == saleID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r stockClasses) GetByCardmarketID(ctx context.Context, cardmarketID uint64) (string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("stockclass.GetByCardmarketID"); err != nil {
		return "", false, err
	}
	class, ok := r.s.st.classes[cardmarketID]
	return class, ok, nil
}
