package model

import (
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
)

// ItemError is one failed (or warned) item inside a run result.
type ItemError struct {
	Index   int    `json:"index"`
	ID      uint64 `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type StockInRequest struct {
	Rows []StockInRow `json:"rows" validate:"required,min=1"`
}

type StockInLot struct {
	Index      int                 `json:"index"`
	LotID      uint64              `json:"lot_id"`
	Location   string              `json:"location"`
	StockClass constant.StockClass `json:"stock_class"`
}

type StockInResult struct {
	Received int          `json:"received"`
	Created  int          `json:"created"`
	Lots     []StockInLot `json:"lots"`
	Warnings []ItemError  `json:"warnings"`
	Errors   []ItemError  `json:"errors"`
}

type BackfillRequest struct {
	Limit  int  `json:"limit" validate:"gte=0"`
	DryRun bool `json:"dry_run"`
}

type BackfillAssignment struct {
	LotID    uint64 `json:"lot_id"`
	Location string `json:"location"`
	Qty      int64  `json:"qty"`
}

type BackfillResult struct {
	DryRun  bool                 `json:"dry_run"`
	Scanned int                  `json:"scanned"`
	Updated int                  `json:"updated"`
	Plan    []BackfillAssignment `json:"plan"`
	Errors  []ItemError          `json:"errors"`
}

type ApplySalesRequest struct {
	Since    time.Time `json:"since"`
	Limit    int       `json:"limit" validate:"gte=0"`
	Simulate bool      `json:"simulate"`
}

// LotTake is the quantity a sale took (or would take) from one lot.
type LotTake struct {
	LotID    uint64  `json:"lot_id"`
	Location *string `json:"location,omitempty"`
	Qty      int64   `json:"qty"`
}

type SaleConsumption struct {
	SaleID    uint64    `json:"sale_id"`
	Sku       SkuKey    `json:"sku"`
	Qty       int64     `json:"qty"`
	Takes     []LotTake `json:"takes"`
	Shortfall int64     `json:"shortfall"`
}

type ApplySalesResult struct {
	Simulate     bool              `json:"simulate"`
	Found        int               `json:"found"`
	Processed    int               `json:"processed"`
	Skipped      int               `json:"skipped"`
	Oversold     int               `json:"oversold"`
	Consumptions []SaleConsumption `json:"consumptions"`
	Errors       []ItemError       `json:"errors"`
	// Ledger is only filled for a single-sale run on an applied sale.
	Ledger       []InventoryTxn    `json:"ledger,omitempty"`
}

type ConsistencyRow struct {
	Sku             SkuKey   `json:"sku"`
	LotQtyIn        int64    `json:"lot_qty_in"`
	AppliedSaleQty  int64    `json:"applied_sale_qty"`
	Theoretical     int64    `json:"theoretical_on_hand"`
	LotQtyRemaining int64    `json:"lot_qty_remaining"`
	BalanceOnHand   int64    `json:"balance_on_hand"`
	HasBalance      bool     `json:"has_balance"`
	Issues          []string `json:"issues,omitempty"`
}

type ConsistencyReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	SkuCount    int              `json:"sku_count"`
	IssueCount  int              `json:"issue_count"`
	Rows        []ConsistencyRow `json:"rows"`
}

type MoveSuggestion struct {
	LotID             uint64              `json:"lot_id"`
	Sku               SkuKey              `json:"sku"`
	StockClass        constant.StockClass `json:"stock_class"`
	Qty               int64               `json:"qty"`
	CurrentLocation   string              `json:"current_location"`
	SuggestedLocation string              `json:"suggested_location,omitempty"`
}

type WorklistResult struct {
	Suggestions []MoveSuggestion `json:"suggestions"`
	Unplaceable []MoveSuggestion `json:"unplaceable"`
}

type MoveRequest struct {
	LotIDs   []uint64 `json:"lot_ids" validate:"required,min=1,dive,gt=0"`
	Location string   `json:"location" validate:"required"`
}

type MoveResult struct {
	Location string `json:"location"`
	Updated  int64  `json:"updated"`
}
