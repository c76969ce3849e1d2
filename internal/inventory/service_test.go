package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/pharmaware/pharmacare/internal/catalog"
	"github.com/pharmaware/pharmacare/internal/settings"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"github.com/pharmaware/pharmacare/pkg/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:inventory_%d?mode=memory&cache=shared&_foreign_keys=on", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrate.Up(context.Background(), sqlDB))

	t.Cleanup(func() {
		var db *sql.DB
		if db, err = gdb.DB(); err == nil {
			_ = db.Close()
		}
	})
	return gdb
}

type fixture struct {
	inventory *Service
	catalog   *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := newTestDB(t)
	catalogSvc, err := catalog.NewService(catalog.NewRepository(gdb), nil)
	require.NoError(t, err)
	settingsSvc, err := settings.NewService(settings.NewRepository(gdb))
	require.NoError(t, err)
	inventorySvc, err := NewService(NewRepository(gdb), catalog.NewRepository(gdb), settingsSvc)
	require.NoError(t, err)
	return &fixture{inventory: inventorySvc, catalog: catalogSvc}
}

func (f *fixture) newMedicine(t *testing.T, name string, reorderLevel int64) int64 {
	t.Helper()

	slabs, err := f.catalog.ListGstSlabs(context.Background())
	require.NoError(t, err)
	medicine, err := f.catalog.CreateMedicine(context.Background(), catalog.CreateMedicineInput{
		Name:         name,
		GstSlabID:    slabs[1].ID,
		ReorderLevel: reorderLevel,
	})
	require.NoError(t, err)
	return medicine.ID
}

func validInput(medicineID int64) ReceiveBatchInput {
	return ReceiveBatchInput{
		MedicineID:        medicineID,
		BatchNumber:       "B-001",
		ExpiryDate:        time.Now().UTC().AddDate(1, 0, 0),
		CostPricePaise:    600,
		MRPPaise:          1000,
		SellingPricePaise: 900,
		Quantity:          50,
	}
}

func TestReceiveBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.newMedicine(t, "Paracetamol 500mg", 20)

	batch, err := f.inventory.ReceiveBatch(ctx, validInput(medicineID))
	require.NoError(t, err)
	assert.NotZero(t, batch.ID)
	assert.Equal(t, int64(50), batch.Quantity)
	require.NotNil(t, batch.Medicine)
	assert.Equal(t, "Paracetamol 500mg", batch.Medicine.Name)
}

func TestReceiveBatchPriceChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.newMedicine(t, "Ibuprofen 400mg", 20)

	cases := []struct {
		name   string
		mutate func(*ReceiveBatchInput)
	}{
		{"selling above mrp", func(in *ReceiveBatchInput) { in.SellingPricePaise = in.MRPPaise + 1 }},
		{"zero mrp", func(in *ReceiveBatchInput) { in.MRPPaise = 0 }},
		{"zero selling price", func(in *ReceiveBatchInput) { in.SellingPricePaise = 0 }},
		{"negative cost", func(in *ReceiveBatchInput) { in.CostPricePaise = -1 }},
		{"negative quantity", func(in *ReceiveBatchInput) { in.Quantity = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput(medicineID)
			tc.mutate(&input)
			_, err := f.inventory.ReceiveBatch(ctx, input)
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
		})
	}
}

func TestReceiveBatchUnknownOrInactiveMedicine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inventory.ReceiveBatch(ctx, validInput(9999))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeReferential))

	medicineID := f.newMedicine(t, "Retired Medicine", 20)
	require.NoError(t, f.catalog.DeactivateMedicine(ctx, medicineID))
	_, err = f.inventory.ReceiveBatch(ctx, validInput(medicineID))
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestAdjustQuantityGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.newMedicine(t, "Cetirizine 10mg", 20)

	batch, err := f.inventory.ReceiveBatch(ctx, validInput(medicineID))
	require.NoError(t, err)

	adjusted, err := f.inventory.AdjustQuantity(ctx, batch.ID, -20)
	require.NoError(t, err)
	assert.Equal(t, int64(30), adjusted.Quantity)

	_, err = f.inventory.AdjustQuantity(ctx, batch.ID, -31)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInsufficientStock))

	same, err := f.inventory.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), same.Quantity)

	_, err = f.inventory.AdjustQuantity(ctx, 9999, -1)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestListBatchesEarliestExpiryFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.newMedicine(t, "Amoxicillin 500mg", 20)

	late := validInput(medicineID)
	late.BatchNumber = "LATE"
	late.ExpiryDate = time.Now().UTC().AddDate(2, 0, 0)
	_, err := f.inventory.ReceiveBatch(ctx, late)
	require.NoError(t, err)

	early := validInput(medicineID)
	early.BatchNumber = "EARLY"
	early.ExpiryDate = time.Now().UTC().AddDate(0, 3, 0)
	_, err = f.inventory.ReceiveBatch(ctx, early)
	require.NoError(t, err)

	empty := validInput(medicineID)
	empty.BatchNumber = "EMPTY"
	empty.Quantity = 0
	_, err = f.inventory.ReceiveBatch(ctx, empty)
	require.NoError(t, err)

	inStock, err := f.inventory.ListBatches(ctx, medicineID, true)
	require.NoError(t, err)
	require.Len(t, inStock, 2)
	assert.Equal(t, "EARLY", inStock[0].BatchNumber)
	assert.Equal(t, "LATE", inStock[1].BatchNumber)

	all, err := f.inventory.ListBatches(ctx, medicineID, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLowStockReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lowID := f.newMedicine(t, "Scarce Tablet", 25)
	okID := f.newMedicine(t, "Plentiful Tablet", 10)

	lowBatch := validInput(lowID)
	lowBatch.Quantity = 5
	_, err := f.inventory.ReceiveBatch(ctx, lowBatch)
	require.NoError(t, err)

	okBatch := validInput(okID)
	okBatch.Quantity = 100
	_, err = f.inventory.ReceiveBatch(ctx, okBatch)
	require.NoError(t, err)

	emptyID := f.newMedicine(t, "Never Stocked", 20)

	rows, err := f.inventory.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, emptyID, rows[0].MedicineID)
	assert.Equal(t, int64(0), rows[0].TotalOnHand)
	assert.Equal(t, lowID, rows[1].MedicineID)
	assert.Equal(t, int64(5), rows[1].TotalOnHand)
}

func TestNearExpiryReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	medicineID := f.newMedicine(t, "Insulin Vial", 20)

	soon := validInput(medicineID)
	soon.BatchNumber = "SOON"
	soon.ExpiryDate = time.Now().UTC().AddDate(0, 0, 30)
	_, err := f.inventory.ReceiveBatch(ctx, soon)
	require.NoError(t, err)

	far := validInput(medicineID)
	far.BatchNumber = "FAR"
	far.ExpiryDate = time.Now().UTC().AddDate(1, 0, 0)
	_, err = f.inventory.ReceiveBatch(ctx, far)
	require.NoError(t, err)

	// default warning window is 90 days
	batches, err := f.inventory.NearExpiry(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "SOON", batches[0].BatchNumber)
}
