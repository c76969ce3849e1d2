package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/pharmaware/pharmacare/pkg/migrate/migrations"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:migrate_%d?mode=memory&cache=shared&_foreign_keys=on", time.Now().UnixNano())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestUpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, Up(ctx, db))
	require.NoError(t, Up(ctx, db), "second run must be a no-op")

	version, err := Version(ctx, db)
	require.NoError(t, err)
	require.EqualValues(t, 2, version)

	var slabs int64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gst_slabs`).Scan(&slabs))
	require.EqualValues(t, 4, slabs, "seed must not duplicate slabs on re-run")

	var admins int64
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = 'admin' AND role = 'admin' AND is_active = 1`).Scan(&admins))
	require.EqualValues(t, 1, admins)

	var settingsID int64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT id FROM pharmacy_settings`).Scan(&settingsID))
	require.EqualValues(t, 1, settingsID)
}

func TestSeededSlabRates(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, Up(ctx, db))

	rows, err := db.QueryContext(ctx, `SELECT rate FROM gst_slabs ORDER BY rate`)
	require.NoError(t, err)
	defer rows.Close()

	var rates []float64
	for rows.Next() {
		var rate float64
		require.NoError(t, rows.Scan(&rate))
		rates = append(rates, rate)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, []float64{0, 5, 12, 18}, rates)
}

func TestDownToZeroDropsSchema(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, Up(ctx, db))
	require.NoError(t, DownTo(ctx, db, 0))

	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	require.Error(t, err, "users table should be gone after rollback")
}

func TestValidateEmbeddedMigrations(t *testing.T) {
	require.NoError(t, Validate())
}

func TestSchemaMigrationContainsConstraints(t *testing.T) {
	data, err := fs.ReadFile(migrations.Files, "00001_create_initial_schema.sql")
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS batches",
		"CHECK (selling_price_paise <= mrp_paise)",
		"CHECK (cost_price_paise >= 0)",
		"CHECK (mrp_paise > 0)",
		"CHECK (selling_price_paise > 0)",
		"CHECK (quantity >= 0)",
		"invoice_number TEXT NOT NULL UNIQUE",
		"id INTEGER PRIMARY KEY CHECK(id = 1)",
		"CREATE INDEX IF NOT EXISTS idx_batches_expiry_date ON batches(expiry_date)",
		"CREATE INDEX IF NOT EXISTS idx_prescriptions_customer_id ON prescriptions(customer_id)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
