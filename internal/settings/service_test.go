package settings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pharmaware/pharmacare/pkg/migrate"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:settings_%d?mode=memory&cache=shared&_foreign_keys=on", time.Now().UnixNano())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migrate.Up(context.Background(), sqlDB))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func strPtr(v string) *string { return &v }
func i64Ptr(v int64) *int64   { return &v }

func TestLoadReturnsSeededRow(t *testing.T) {
	svc, _ := newTestService(t)

	row, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, row.ID)
	require.Equal(t, "My Pharmacy", row.Name)
	require.Equal(t, "INV", row.InvoicePrefix)
	require.EqualValues(t, 1, row.NextInvoiceNumber)
}

func TestUpdateAppliesPatchAndRefreshesTimestamp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	before, err := svc.Load(ctx)
	require.NoError(t, err)

	row, err := svc.Update(ctx, Patch{
		Name:              strPtr("Iyer Medicals"),
		GSTIN:             strPtr("29ABCDE1234F1Z5"),
		InvoicePrefix:     strPtr("IYM"),
		LowStockThreshold: i64Ptr(10),
	})
	require.NoError(t, err)
	require.Equal(t, "Iyer Medicals", row.Name)
	require.Equal(t, "29ABCDE1234F1Z5", row.GSTIN)
	require.Equal(t, "IYM", row.InvoicePrefix)
	require.EqualValues(t, 10, row.LowStockThreshold)
	require.False(t, row.UpdatedAt.Before(before.UpdatedAt))
	// Untouched fields survive the patch.
	require.Equal(t, before.Phone, row.Phone)
	require.EqualValues(t, before.NextInvoiceNumber, row.NextInvoiceNumber)
}

func TestUpdateRejectsBlankPrefixAndName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, Patch{InvoicePrefix: strPtr("  ")})
	require.Error(t, err)

	_, err = svc.Update(ctx, Patch{Name: strPtr("")})
	require.Error(t, err)

	_, err = svc.Update(ctx, Patch{NearExpiryDays: i64Ptr(-1)})
	require.Error(t, err)
}

func TestSingletonCannotGainSecondRow(t *testing.T) {
	_, conn := newTestService(t)

	err := conn.Exec(`INSERT INTO pharmacy_settings (id, name) VALUES (2, 'Rogue')`).Error
	require.Error(t, err, "CHECK(id = 1) must reject a second row")

	var count int64
	require.NoError(t, conn.Raw(`SELECT COUNT(*) FROM pharmacy_settings`).Scan(&count).Error)
	require.EqualValues(t, 1, count)
}
