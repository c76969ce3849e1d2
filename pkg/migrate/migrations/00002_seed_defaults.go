package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pharmaware/pharmacare/pkg/config"
	"github.com/pharmaware/pharmacare/pkg/security"
	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upSeedDefaults, downSeedDefaults)
}

// Default administrator credentials, expected to be changed after first
// login. The hash is produced at seed time so it always matches the
// configured argon2id format.
const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
)

var seedPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    65536,
	ArgonTime:        3,
	ArgonParallelism: 2,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

var seedGstSlabs = []struct {
	Rate        float64
	Description string
}{
	{0, "GST Exempt (0%)"},
	{5, "GST 5% (Most medicines post Sep 2025)"},
	{12, "GST 12%"},
	{18, "GST 18%"},
}

func upSeedDefaults(ctx context.Context, tx *sql.Tx) error {
	for _, slab := range seedGstSlabs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO gst_slabs (rate, description) VALUES (?, ?)`,
			slab.Rate, slab.Description,
		); err != nil {
			return fmt.Errorf("seed gst slab %v%%: %w", slab.Rate, err)
		}
	}

	hash, err := security.HashPassword(seedAdminPassword, seedPasswordConfig)
	if err != nil {
		return fmt.Errorf("hash seed admin password: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (username, password_hash, full_name, role, is_active)
		 VALUES (?, ?, 'Administrator', 'admin', 1)`,
		seedAdminUsername, hash,
	); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO pharmacy_settings (id, name, address, phone, gstin, drug_license_no, state_code)
		 VALUES (1, 'My Pharmacy', '123 Main Street', '0000000000', '', '', '')`,
	); err != nil {
		return fmt.Errorf("seed pharmacy settings: %w", err)
	}
	return nil
}

func downSeedDefaults(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM pharmacy_settings WHERE id = 1`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, seedAdminUsername); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM gst_slabs`)
	return err
}
