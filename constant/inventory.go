package constant

type StockClass string

const (
	StockClassCore      StockClass = "CORE"
	StockClassCommander StockClass = "COMMANDER"
	StockClassRegular   StockClass = "REGULAR"
	StockClassCTBulk    StockClass = "CTBULK"
)

// ParseStockClass returns REGULAR and false for anything it does not know.
func ParseStockClass(s string) (StockClass, bool) {
	switch StockClass(s) {
	case StockClassCore, StockClassCommander, StockClassRegular, StockClassCTBulk:
		return StockClass(s), true
	}
	return StockClassRegular, false
}

type TxnKind string

const (
	TxnKindSaleOut TxnKind = "SALE_OUT"
)

// Diagnostics issue codes.
const (
	IssueBalanceMismatch     = "BALANCE_MISMATCH"
	IssueRemainingMismatch   = "LOT_REMAINING_MISMATCH"
	IssueNegativeBalance     = "NEGATIVE_BALANCE"
	IssueNegativeTheoretical = "NEGATIVE_THEORETICAL"
	IssueMissingBalance      = "MISSING_BALANCE"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

const WriterLockKey = "lock:inventory:writer"
