package reports

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// SalesSummary aggregates the sales in one window.
type SalesSummary struct {
	SaleCount       int64 `gorm:"column:sale_count"`
	SubtotalPaise   int64 `gorm:"column:subtotal_paise"`
	DiscountPaise   int64 `gorm:"column:discount_paise"`
	TotalCGSTPaise  int64 `gorm:"column:total_cgst_paise"`
	TotalSGSTPaise  int64 `gorm:"column:total_sgst_paise"`
	TotalGSTPaise   int64 `gorm:"column:total_gst_paise"`
	GrandTotalPaise int64 `gorm:"column:grand_total_paise"`
}

// TopMedicineRow is one entry of the best-sellers report.
type TopMedicineRow struct {
	MedicineID   int64  `gorm:"column:medicine_id"`
	MedicineName string `gorm:"column:medicine_name"`
	UnitsSold    int64  `gorm:"column:units_sold"`
	RevenuePaise int64  `gorm:"column:revenue_paise"`
}

// SaleExportRow is one flattened invoice line for spreadsheet export.
type SaleExportRow struct {
	InvoiceNumber   string    `gorm:"column:invoice_number"`
	SaleDate        time.Time `gorm:"column:sale_date"`
	CustomerName    *string   `gorm:"column:customer_name"`
	SoldBy          string    `gorm:"column:sold_by"`
	MedicineName    string    `gorm:"column:medicine_name"`
	BatchNumber     string    `gorm:"column:batch_number"`
	Quantity        int64     `gorm:"column:quantity"`
	UnitPricePaise  int64     `gorm:"column:unit_price_paise"`
	DiscountPaise   int64     `gorm:"column:discount_paise"`
	CGSTAmountPaise int64     `gorm:"column:cgst_amount_paise"`
	SGSTAmountPaise int64     `gorm:"column:sgst_amount_paise"`
	TotalPaise      int64     `gorm:"column:total_paise"`
}

// Repository runs the read-only aggregation queries.
type Repository interface {
	SummarizeSales(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	TopMedicines(ctx context.Context, from, to time.Time, limit int) ([]TopMedicineRow, error)
	SaleExportRows(ctx context.Context, from, to time.Time) ([]SaleExportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SummarizeSales(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	var summary SalesSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(id) AS sale_count,
		       COALESCE(SUM(subtotal_paise), 0) AS subtotal_paise,
		       COALESCE(SUM(discount_paise), 0) AS discount_paise,
		       COALESCE(SUM(total_cgst_paise), 0) AS total_cgst_paise,
		       COALESCE(SUM(total_sgst_paise), 0) AS total_sgst_paise,
		       COALESCE(SUM(total_gst_paise), 0) AS total_gst_paise,
		       COALESCE(SUM(grand_total_paise), 0) AS grand_total_paise
		FROM sales
		WHERE sale_date >= ? AND sale_date < ?`, from, to).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *repository) TopMedicines(ctx context.Context, from, to time.Time, limit int) ([]TopMedicineRow, error) {
	var rows []TopMedicineRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.id AS medicine_id,
		       m.name AS medicine_name,
		       SUM(si.quantity) AS units_sold,
		       SUM(si.total_paise) AS revenue_paise
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN medicines m ON m.id = si.medicine_id
		WHERE s.sale_date >= ? AND s.sale_date < ?
		GROUP BY m.id, m.name
		ORDER BY units_sold DESC, m.name ASC
		LIMIT ?`, from, to, limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) SaleExportRows(ctx context.Context, from, to time.Time) ([]SaleExportRow, error) {
	var rows []SaleExportRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT s.invoice_number,
		       s.sale_date,
		       c.name AS customer_name,
		       u.full_name AS sold_by,
		       m.name AS medicine_name,
		       b.batch_number,
		       si.quantity,
		       si.unit_price_paise,
		       si.discount_paise,
		       si.cgst_amount_paise,
		       si.sgst_amount_paise,
		       si.total_paise
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN users u ON u.id = s.user_id
		JOIN medicines m ON m.id = si.medicine_id
		JOIN batches b ON b.id = si.batch_id
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.sale_date >= ? AND s.sale_date < ?
		ORDER BY s.sale_date ASC, s.id ASC, si.id ASC`, from, to).
		Scan(&rows).Error
	return rows, err
}
