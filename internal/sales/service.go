package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pharmaware/pharmacare/internal/inventory"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/db/models"
	"github.com/pharmaware/pharmacare/pkg/enums"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"github.com/pharmaware/pharmacare/pkg/gst"
	"github.com/pharmaware/pharmacare/pkg/logger"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SaleLineInput is one requested line: a batch and how many units of it.
type SaleLineInput struct {
	BatchID       int64 `validate:"required,gt=0"`
	Quantity      int64 `validate:"required,gt=0"`
	DiscountPaise int64 `validate:"gte=0"`
}

// RecordSaleInput captures one checkout.
type RecordSaleInput struct {
	UserID        int64  `validate:"required,gt=0"`
	CustomerID    *int64 `validate:"omitempty,gt=0"`
	PaymentMode   string
	DiscountPaise int64 `validate:"gte=0"`
	Notes         string
	Lines         []SaleLineInput `validate:"required,min=1,dive"`
}

// Service exposes sale recording and invoice lookups.
type Service struct {
	repo      Repository
	tx        txRunner
	inventory inventory.Repository
	logg      *logger.Logger
	validate  *validator.Validate
}

func NewService(repo Repository, tx txRunner, inventoryRepo inventory.Repository, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &Service{
		repo:      repo,
		tx:        tx,
		inventory: inventoryRepo,
		logg:      logg,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// RecordSale runs one checkout as a single transaction: it prices every
// line from its batch, verifies stock, allocates the next invoice number,
// writes the sale with its items and decrements each batch. Nothing is
// visible to readers until all of it lands; any failure rolls the whole
// sale back, invoice number included.
func (s *Service) RecordSale(ctx context.Context, input RecordSaleInput) (*models.Sale, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale input")
	}
	mode := enums.PaymentModeCash
	if strings.TrimSpace(input.PaymentMode) != "" {
		var err error
		mode, err = enums.ParsePaymentMode(input.PaymentMode)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment mode")
		}
	}

	var sale *models.Sale
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		stock := s.inventory.WithTx(tx)

		items, totals, err := s.buildLines(ctx, stock, input.Lines)
		if err != nil {
			return err
		}

		// stock checks before any mutation
		requested := map[int64]int64{}
		for _, line := range input.Lines {
			requested[line.BatchID] += line.Quantity
		}
		for batchID, quantity := range requested {
			batch, err := stock.FindByID(ctx, batchID)
			if err != nil {
				return db.Translate(err, "load batch")
			}
			if batch.Quantity < quantity {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock,
					fmt.Sprintf("batch %d holds %d units, %d requested", batchID, batch.Quantity, quantity))
			}
		}
		for batchID, quantity := range requested {
			applied, err := stock.AdjustQuantity(ctx, batchID, -quantity)
			if err != nil {
				return db.Translate(err, "decrement batch stock")
			}
			if !applied {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock,
					fmt.Sprintf("batch %d no longer holds %d units", batchID, quantity))
			}
		}

		invoiceNumber, err := repo.AllocateInvoiceNumber(ctx)
		if err != nil {
			return db.Translate(err, "allocate invoice number")
		}

		discount := totals.discount + input.DiscountPaise
		grandTotal := totals.subtotal - discount + totals.cgst + totals.sgst
		if grandTotal < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount exceeds sale total")
		}

		sale = &models.Sale{
			InvoiceNumber:   invoiceNumber,
			CustomerID:      input.CustomerID,
			UserID:          input.UserID,
			SaleDate:        time.Now().UTC(),
			SubtotalPaise:   totals.subtotal,
			DiscountPaise:   discount,
			TotalCGSTPaise:  totals.cgst,
			TotalSGSTPaise:  totals.sgst,
			TotalGSTPaise:   totals.cgst + totals.sgst,
			GrandTotalPaise: grandTotal,
			PaymentMode:     mode,
			Notes:           optional(input.Notes),
			Items:           items,
		}
		if err := repo.Create(ctx, sale); err != nil {
			return db.Translate(err, "create sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithInvoice(ctx, sale.InvoiceNumber)
		s.logg.Info(ctx, "sale recorded")
	}
	return s.GetSale(ctx, sale.ID)
}

type saleTotals struct {
	subtotal int64
	discount int64
	cgst     int64
	sgst     int64
}

// buildLines prices each requested line from its batch and computes the
// CGST/SGST split against the medicine's slab.
func (s *Service) buildLines(ctx context.Context, stock inventory.Repository, lines []SaleLineInput) ([]models.SaleItem, saleTotals, error) {
	items := make([]models.SaleItem, 0, len(lines))
	var totals saleTotals

	for i, line := range lines {
		batch, err := stock.FindByID(ctx, line.BatchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, totals, pkgerrors.New(pkgerrors.CodeReferential,
					fmt.Sprintf("line %d: batch %d does not exist", i+1, line.BatchID))
			}
			return nil, totals, db.Translate(err, "load batch")
		}
		if batch.Medicine == nil || batch.Medicine.GstSlab == nil {
			return nil, totals, pkgerrors.New(pkgerrors.CodeInternal,
				fmt.Sprintf("batch %d is missing its medicine or gst slab", line.BatchID))
		}

		lineAmount := batch.SellingPricePaise * line.Quantity
		if line.DiscountPaise > lineAmount {
			return nil, totals, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line %d: discount exceeds line amount", i+1))
		}

		tax := gst.ComputeLine(batch.SellingPricePaise, line.Quantity, line.DiscountPaise, batch.Medicine.GstSlab.Rate)
		items = append(items, models.SaleItem{
			BatchID:            batch.ID,
			MedicineID:         batch.MedicineID,
			Quantity:           line.Quantity,
			UnitPricePaise:     batch.SellingPricePaise,
			DiscountPaise:      line.DiscountPaise,
			TaxableAmountPaise: tax.TaxableAmountPaise,
			CGSTRate:           tax.CGSTRate,
			CGSTAmountPaise:    tax.CGSTAmountPaise,
			SGSTRate:           tax.SGSTRate,
			SGSTAmountPaise:    tax.SGSTAmountPaise,
			TotalPaise:         tax.TotalPaise,
		})

		totals.subtotal += lineAmount
		totals.discount += line.DiscountPaise
		totals.cgst += tax.CGSTAmountPaise
		totals.sgst += tax.SGSTAmountPaise
	}
	return items, totals, nil
}

// GetSale loads one sale with its items, customer and owner.
func (s *Service) GetSale(ctx context.Context, id int64) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Translate(err, "load sale")
	}
	return sale, nil
}

// GetSaleByInvoice loads one sale by its invoice number.
func (s *Service) GetSaleByInvoice(ctx context.Context, invoiceNumber string) (*models.Sale, error) {
	sale, err := s.repo.FindByInvoice(ctx, strings.TrimSpace(invoiceNumber))
	if err != nil {
		return nil, db.Translate(err, "load sale by invoice")
	}
	return sale, nil
}

// ListSales returns sales in [from, to), most recent first. Zero bounds
// are open-ended.
func (s *Service) ListSales(ctx context.Context, from, to time.Time) ([]models.Sale, error) {
	sales, err := s.repo.List(ctx, from, to)
	if err != nil {
		return nil, db.Translate(err, "list sales")
	}
	return sales, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
