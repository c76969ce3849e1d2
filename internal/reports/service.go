package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pharmaware/pharmacare/pkg/db"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Service exposes read-only sales reporting.
type Service struct {
	repo Repository
}

func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &Service{repo: repo}, nil
}

// DailySummary aggregates the calendar day containing the given instant.
func (s *Service) DailySummary(ctx context.Context, day time.Time) (*SalesSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.RangeSummary(ctx, start, start.AddDate(0, 0, 1))
}

// RangeSummary aggregates sales in [from, to).
func (s *Service) RangeSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report window must end after it starts")
	}
	summary, err := s.repo.SummarizeSales(ctx, from, to)
	if err != nil {
		return nil, db.Translate(err, "summarize sales")
	}
	return summary, nil
}

// TopMedicines returns the best sellers by units in [from, to).
func (s *Service) TopMedicines(ctx context.Context, from, to time.Time, limit int) ([]TopMedicineRow, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report window must end after it starts")
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.repo.TopMedicines(ctx, from, to, limit)
	if err != nil {
		return nil, db.Translate(err, "top medicines")
	}
	return rows, nil
}

const exportSheet = "Sales"

var exportHeaders = []string{
	"Invoice", "Date", "Customer", "Sold By", "Medicine", "Batch",
	"Qty", "Unit Price", "Discount", "CGST", "SGST", "Line Total",
}

// ExportSalesXLSX writes one spreadsheet row per invoice line in [from, to).
// Monetary columns are rendered in rupees.
func (s *Service) ExportSalesXLSX(ctx context.Context, from, to time.Time, w io.Writer) error {
	if !to.After(from) {
		return pkgerrors.New(pkgerrors.CodeValidation, "report window must end after it starts")
	}
	rows, err := s.repo.SaleExportRows(ctx, from, to)
	if err != nil {
		return db.Translate(err, "collect export rows")
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rename export sheet")
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build header cell")
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write header cell")
		}
	}

	for i, row := range rows {
		customer := ""
		if row.CustomerName != nil {
			customer = *row.CustomerName
		}
		values := []any{
			row.InvoiceNumber,
			row.SaleDate.Format("2006-01-02 15:04"),
			customer,
			row.SoldBy,
			row.MedicineName,
			row.BatchNumber,
			row.Quantity,
			rupees(row.UnitPricePaise),
			rupees(row.DiscountPaise),
			rupees(row.CGSTAmountPaise),
			rupees(row.SGSTAmountPaise),
			rupees(row.TotalPaise),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build data cell")
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write data cell")
			}
		}
	}

	if err := f.Write(w); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write workbook")
	}
	return nil
}

// rupees converts integer paise to a decimal rupee value for display.
func rupees(paise int64) float64 {
	value, _ := decimal.NewFromInt(paise).Div(decimal.NewFromInt(100)).Float64()
	return value
}
