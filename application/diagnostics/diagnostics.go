package diagnostics

import (
	"context"
	"sort"
	"time"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/model"
	balancerepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/balance"
	lotrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/lot"
	salesrepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/sales"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/errors"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	"go.uber.org/zap"
)

type DiagnosticsApp interface {
	// ConsistencyReport compares lot totals, applied sales and balances per
	// SKU. It never writes.
	ConsistencyReport(ctx context.Context, onlyIssues bool) (*model.ConsistencyReport, error)
}

type diagnosticsAppImpl struct {
	lotRepo     lotrepo.LotRepository
	salesRepo   salesrepo.SalesRepository
	balanceRepo balancerepo.BalanceRepository
}

func NewDiagnosticsApp(lotRepo lotrepo.LotRepository, salesRepo salesrepo.SalesRepository, balanceRepo balancerepo.BalanceRepository) DiagnosticsApp {
	return &diagnosticsAppImpl{lotRepo: lotRepo, salesRepo: salesRepo, balanceRepo: balanceRepo}
}

func (s *diagnosticsAppImpl) ConsistencyReport(ctx context.Context, onlyIssues bool) (*model.ConsistencyReport, error) {
	lots, err := s.lotRepo.SumBySku(ctx)
	if err != nil {
		logger.Error("[ConsistencyReport] sum lots", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	sales, err := s.salesRepo.SumAppliedBySku(ctx)
	if err != nil {
		logger.Error("[ConsistencyReport] sum applied sales", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	balances, err := s.balanceRepo.List(ctx)
	if err != nil {
		logger.Error("[ConsistencyReport] list balances", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	rows := Reconcile(lots, sales, balances)
	report := &model.ConsistencyReport{
		GeneratedAt: time.Now().UTC(),
		SkuCount:    len(rows),
		Rows:        make([]model.ConsistencyRow, 0, len(rows)),
	}
	for _, row := range rows {
		if len(row.Issues) > 0 {
			report.IssueCount++
		} else if onlyIssues {
			continue
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// Reconcile joins the three aggregates on SKU and flags every disagreement.
// Rows come back sorted by SKU.
func Reconcile(lots []model.LotSum, sales []model.SaleSum, balances []model.Balance) []model.ConsistencyRow {
	bySku := make(map[model.SkuKey]*model.ConsistencyRow)
	get := func(k model.SkuKey) *model.ConsistencyRow {
		row, ok := bySku[k]
		if !ok {
			row = &model.ConsistencyRow{Sku: k}
			bySku[k] = row
		}
		return row
	}
	for _, l := range lots {
		row := get(l.SkuKey)
		row.LotQtyIn += l.QtyIn
		row.LotQtyRemaining += l.QtyRemaining
	}
	for _, sale := range sales {
		get(sale.SkuKey).AppliedSaleQty += sale.Qty
	}
	for _, b := range balances {
		row := get(b.SkuKey)
		row.BalanceOnHand = b.QtyOnHand
		row.HasBalance = true
	}

	out := make([]model.ConsistencyRow, 0, len(bySku))
	for _, row := range bySku {
		row.Theoretical = row.LotQtyIn - row.AppliedSaleQty
		row.Issues = issues(row)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sku.Less(out[j].Sku) })
	return out
}

func issues(row *model.ConsistencyRow) []string {
	var found []string
	if !row.HasBalance {
		found = append(found, constant.IssueMissingBalance)
	} else if row.BalanceOnHand != row.Theoretical {
		found = append(found, constant.IssueBalanceMismatch)
	}
	if row.LotQtyRemaining != row.Theoretical {
		found = append(found, constant.IssueRemainingMismatch)
	}
	if row.HasBalance && row.BalanceOnHand < 0 {
		found = append(found, constant.IssueNegativeBalance)
	}
	if row.Theoretical < 0 {
		found = append(found, constant.IssueNegativeTheoretical)
	}
	return found
}
