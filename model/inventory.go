package model

import (
	"fmt"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/shopspring/decimal"
)

// SkuKey is the granularity at which stock is tracked and sold.
type SkuKey struct {
	CardmarketID uint64 `db:"cardmarket_id" json:"cardmarket_id" validate:"required,gt=0"`
	IsFoil       bool   `db:"is_foil" json:"is_foil"`
	Condition    string `db:"card_condition" json:"condition" validate:"required"`
	Language     string `db:"language" json:"language" validate:"required"`
}

func (k SkuKey) String() string {
	return fmt.Sprintf("%d/%t/%s/%s", k.CardmarketID, k.IsFoil, k.Condition, k.Language)
}

// Less orders keys for stable report output.
func (k SkuKey) Less(o SkuKey) bool {
	if k.CardmarketID != o.CardmarketID {
		return k.CardmarketID < o.CardmarketID
	}
	if k.IsFoil != o.IsFoil {
		return !k.IsFoil
	}
	if k.Condition != o.Condition {
		return k.Condition < o.Condition
	}
	return k.Language < o.Language
}

// Lot is one received batch of identical stock. Lots are never deleted.
type Lot struct {
	ID uint64 `db:"id" json:"id"`
	SkuKey
	QtyIn          int64           `db:"qty_in" json:"qty_in"`
	QtyRemaining   int64           `db:"qty_remaining" json:"qty_remaining"`
	AvgUnitCostEur decimal.Decimal `db:"avg_unit_cost_eur" json:"avg_unit_cost_eur"`
	SourceCode     string          `db:"source_code" json:"source_code"`
	SourceDate     *time.Time      `db:"source_date" json:"source_date,omitempty"`
	Location       *string         `db:"location" json:"location,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Balance may go negative: that is how an oversell shows up.
type Balance struct {
	SkuKey
	QtyOnHand      int64           `db:"qty_on_hand" json:"qty_on_hand"`
	AvgUnitCostEur decimal.Decimal `db:"avg_unit_cost_eur" json:"avg_unit_cost_eur"`
	LastSaleAt     *time.Time      `db:"last_sale_at" json:"last_sale_at,omitempty"`
}

type SalesLog struct {
	ID         uint64 `db:"id" json:"id"`
	Source     string `db:"source" json:"source"`
	ExternalID string `db:"external_id" json:"external_id"`
	SkuKey
	Qty                int64      `db:"qty" json:"qty" validate:"gt=0"`
	Ts                 time.Time  `db:"ts" json:"ts"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	InventoryAppliedAt *time.Time `db:"inventory_applied_at" json:"inventory_applied_at,omitempty"`

	// set instead of InventoryAppliedAt when the row can never be applied
	InventoryRejectedAt *time.Time `db:"inventory_rejected_at" json:"inventory_rejected_at,omitempty"`
	InventoryError      *string    `db:"inventory_error" json:"inventory_error,omitempty"`
}

// InventoryTxn is an append-only ledger row, one per lot decrement.
type InventoryTxn struct {
	ID         uint64           `db:"id" json:"id"`
	LotID      uint64           `db:"lot_id" json:"lot_id"`
	Kind       constant.TxnKind `db:"kind" json:"kind"`
	Qty        int64            `db:"qty" json:"qty"`
	SalesLogID uint64           `db:"sales_log_id" json:"sales_log_id"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

// StockInRow is one already-parsed row of a stock-in import.
type StockInRow struct {
	SkuKey
	Qty         int64           `json:"qty" validate:"gt=0"`
	UnitCostEur decimal.Decimal `json:"unit_cost_eur" validate:"gte=0"`
	SourceCode  string          `json:"source_code" validate:"required,max=64"`
	SourceDate  *time.Time      `json:"source_date,omitempty"`
}

// LotSum aggregates lots per SKU for diagnostics.
type LotSum struct {
	SkuKey
	QtyIn        int64 `db:"qty_in"`
	QtyRemaining int64 `db:"qty_remaining"`
}

// SaleSum aggregates applied sales per SKU for diagnostics.
type SaleSum struct {
	SkuKey
	Qty int64 `db:"qty"`
}
