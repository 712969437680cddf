// Package memory keeps every inventory table in process. It backs
// STORAGE_DRIVER=memory and the behaviour tests. Transactions snapshot the
// whole state on begin and restore it on rollback, so writers are serialized:
// BeginTx waits until the open transaction ends, and writes made outside a
// transaction wait the same way.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	"github.com/jmoiron/sqlx"
)

type state struct {
	lots      []model.Lot
	balances  map[model.SkuKey]model.Balance
	sales     []model.SalesLog
	txns      []model.InventoryTxn
	classes   map[uint64]string
	nextLotID uint64
	nextTxnID uint64
}

func newState() *state {
	return &state{
		balances:  make(map[model.SkuKey]model.Balance),
		classes:   make(map[uint64]string),
		nextLotID: 1,
		nextTxnID: 1,
	}
}

func (s *state) clone() *state {
	c := &state{
		lots:      append([]model.Lot(nil), s.lots...),
		balances:  make(map[model.SkuKey]model.Balance, len(s.balances)),
		sales:     append([]model.SalesLog(nil), s.sales...),
		txns:      append([]model.InventoryTxn(nil), s.txns...),
		classes:   make(map[uint64]string, len(s.classes)),
		nextLotID: s.nextLotID,
		nextTxnID: s.nextTxnID,
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.classes {
		c.classes[k] = v
	}
	return c
}

type txState struct {
	begin      *state
	savepoints map[string]*state
}

type Store struct {
	mu sync.Mutex
	// writer is held from BeginTx until commit or rollback
	writer   chan struct{}
	st       *state
	open     map[*sqlx.Tx]*txState
	failures map[string]error
	clock    func() time.Time
}

func NewStore() *Store {
	return &Store{
		writer:   make(chan struct{}, 1),
		st:       newState(),
		open:     make(map[*sqlx.Tx]*txState),
		failures: make(map[string]error),
		clock:    time.Now,
	}
}

// SetClock replaces the time source used for created_at defaults.
func (s *Store) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// FailNext makes the next call of op (e.g. "lot.InsertTx") return err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.writer <- struct{}{}:
		return nil
	default:
	}
	select {
	case s.writer <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.writer
}

// BeginTx, CommitTx, RollbackTx, SavepointTx and RollbackToSavepointTx make
// Store a tx.TxRepository.
func (s *Store) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("tx.BeginTx"); err != nil {
		s.release()
		return nil, err
	}
	tx := &sqlx.Tx{}
	s.open[tx] = &txState{begin: s.st.clone(), savepoints: make(map[string]*state)}
	return tx, nil
}

func (s *Store) CommitTx(tx *sqlx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.open[tx]
	if !ok {
		return fmt.Errorf("memory: commit of unknown tx")
	}
	delete(s.open, tx)
	defer s.release()
	if err := s.fail("tx.CommitTx"); err != nil {
		s.st = ts.begin
		return err
	}
	return nil
}

func (s *Store) RollbackTx(tx *sqlx.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.open[tx]
	if !ok {
		return fmt.Errorf("memory: rollback of unknown tx")
	}
	s.st = ts.begin
	delete(s.open, tx)
	s.release()
	return nil
}

func (s *Store) SavepointTx(ctx context.Context, tx *sqlx.Tx, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.open[tx]
	if !ok {
		return fmt.Errorf("memory: savepoint outside tx")
	}
	ts.savepoints[name] = s.st.clone()
	return nil
}

func (s *Store) RollbackToSavepointTx(ctx context.Context, tx *sqlx.Tx, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.open[tx]
	if !ok {
		return fmt.Errorf("memory: savepoint outside tx")
	}
	sp, ok := ts.savepoints[name]
	if !ok {
		return fmt.Errorf("memory: unknown savepoint %q", name)
	}
	s.st = sp.clone()
	return nil
}

// AddLot seeds a lot and returns its id.
func (s *Store) AddLot(l model.Lot) uint64 {
	s.writer <- struct{}{}
	defer s.release()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLot(l)
}

func (s *Store) insertLot(l model.Lot) uint64 {
	l.ID = s.st.nextLotID
	s.st.nextLotID++
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.clock()
	}
	s.st.lots = append(s.st.lots, l)
	return l.ID
}

// AddSale seeds a sales_log row and returns its id.
func (s *Store) AddSale(row model.SalesLog) uint64 {
	s.writer <- struct{}{}
	defer s.release()
	s.mu.Lock()
	defer s.mu.Unlock()
	row.ID = uint64(len(s.st.sales) + 1)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = s.clock()
	}
	if row.Ts.IsZero() {
		row.Ts = row.CreatedAt
	}
	s.st.sales = append(s.st.sales, row)
	return row.ID
}

func (s *Store) SetBalance(b model.Balance) {
	s.writer <- struct{}{}
	defer s.release()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.balances[b.SkuKey] = b
}

func (s *Store) SetStockClass(cardmarketID uint64, class string) {
	s.writer <- struct{}{}
	defer s.release()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.classes[cardmarketID] = class
}

func (s *Store) Lot(id uint64) (model.Lot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.lotIndex(id)
	if i < 0 {
		return model.Lot{}, false
	}
	return s.st.lots[i], true
}

func (s *Store) Lots() []model.Lot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Lot(nil), s.st.lots...)
}

func (s *Store) Balance(sku model.SkuKey) (model.Balance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.st.balances[sku]
	return b, ok
}

func (s *Store) Sale(id uint64) (model.SalesLog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == 0 || int(id) > len(s.st.sales) {
		return model.SalesLog{}, false
	}
	return s.st.sales[id-1], true
}

func (s *Store) Txns() []model.InventoryTxn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.InventoryTxn(nil), s.st.txns...)
}

func (s *Store) lotIndex(id uint64) int {
	for i := range s.st.lots {
		if s.st.lots[i].ID == id {
			return i
		}
	}
	return -1
}

// fifoLess orders lots by source date (missing dates first), then creation.
func fifoLess(a, b model.Lot) bool {
	switch {
	case a.SourceDate == nil && b.SourceDate != nil:
		return true
	case a.SourceDate != nil && b.SourceDate == nil:
		return false
	case a.SourceDate != nil && b.SourceDate != nil && !a.SourceDate.Equal(*b.SourceDate):
		return a.SourceDate.Before(*b.SourceDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func sortByCreated(lots []model.Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		if !lots[i].CreatedAt.Equal(lots[j].CreatedAt) {
			return lots[i].CreatedAt.Before(lots[j].CreatedAt)
		}
		return lots[i].ID < lots[j].ID
	})
}
