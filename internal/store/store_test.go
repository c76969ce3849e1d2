package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pharmaware/pharmacare/internal/catalog"
	"github.com/pharmaware/pharmacare/internal/inventory"
	"github.com/pharmaware/pharmacare/internal/sales"
	"github.com/pharmaware/pharmacare/internal/settings"
	"github.com/pharmaware/pharmacare/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		DB: config.DBConfig{
			Path:         fmt.Sprintf("file:store_%d?mode=memory&cache=shared", time.Now().UnixNano()),
			BusyTimeout:  5 * time.Second,
			MaxOpenConns: 1,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8 * 1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		FeatureFlags: config.FeatureFlagsConfig{AutoMigrate: true},
	}
}

func TestOpenMigratesAndWires(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Ping(ctx))

	// seeded reference data proves migrations ran
	slabs, err := s.Catalog.ListGstSlabs(ctx)
	require.NoError(t, err)
	assert.Len(t, slabs, 4)

	row, err := s.Settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV", row.InvoicePrefix)

	admin, err := s.Users.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
}

func TestEndToEndSaleThroughFacade(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	slabs, err := s.Catalog.ListGstSlabs(ctx)
	require.NoError(t, err)
	medicine, err := s.Catalog.CreateMedicine(ctx, catalog.CreateMedicineInput{
		Name:      "Paracetamol 500mg",
		GstSlabID: slabs[1].ID,
	})
	require.NoError(t, err)

	batch, err := s.Inventory.ReceiveBatch(ctx, inventory.ReceiveBatchInput{
		MedicineID:        medicine.ID,
		BatchNumber:       "PCM-01",
		ExpiryDate:        time.Now().UTC().AddDate(1, 0, 0),
		CostPricePaise:    600,
		MRPPaise:          1000,
		SellingPricePaise: 900,
		Quantity:          50,
	})
	require.NoError(t, err)

	admin, err := s.Users.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)

	sale, err := s.Sales.RecordSale(ctx, sales.RecordSaleInput{
		UserID: admin.ID,
		Lines:  []sales.SaleLineInput{{BatchID: batch.ID, Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9450), sale.GrandTotalPaise)

	summary, err := s.Reports.DailySummary(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.SaleCount)

	prefix := "PH"
	updated, err := s.Settings.Update(ctx, settings.Patch{InvoicePrefix: &prefix})
	require.NoError(t, err)
	assert.Equal(t, "PH", updated.InvoicePrefix)

	next, err := s.Sales.RecordSale(ctx, sales.RecordSaleInput{
		UserID: admin.ID,
		Lines:  []sales.SaleLineInput{{BatchID: batch.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PH-000002", next.InvoiceNumber)
}
