// Package store assembles the full data layer behind one handle: it opens
// the database, applies pending migrations when configured to, and wires
// every domain service against the shared connection.
package store

import (
	"context"

	"github.com/pharmaware/pharmacare/internal/catalog"
	"github.com/pharmaware/pharmacare/internal/customers"
	"github.com/pharmaware/pharmacare/internal/inventory"
	"github.com/pharmaware/pharmacare/internal/prescriptions"
	"github.com/pharmaware/pharmacare/internal/reports"
	"github.com/pharmaware/pharmacare/internal/sales"
	"github.com/pharmaware/pharmacare/internal/settings"
	"github.com/pharmaware/pharmacare/internal/suppliers"
	"github.com/pharmaware/pharmacare/internal/users"
	"github.com/pharmaware/pharmacare/pkg/config"
	"github.com/pharmaware/pharmacare/pkg/db"
	"github.com/pharmaware/pharmacare/pkg/logger"
	"github.com/pharmaware/pharmacare/pkg/migrate"
)

// Store is the assembled data layer handed to the application shell.
type Store struct {
	client *db.Client

	Users         *users.Service
	Catalog       *catalog.Service
	Inventory     *inventory.Service
	Customers     *customers.Service
	Suppliers     *suppliers.Service
	Prescriptions *prescriptions.Service
	Sales         *sales.Service
	Settings      *settings.Service
	Reports       *reports.Service
}

// Open connects to the configured database and wires every service.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Store, error) {
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, err
	}
	if err := migrate.MaybeAutoRun(ctx, cfg, logg, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	store, err := Wire(client, cfg, logg)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return store, nil
}

// Wire builds every service over an already-open client. Open is the
// usual entry point; Wire exists for callers that manage the connection
// themselves.
func Wire(client *db.Client, cfg *config.Config, logg *logger.Logger) (*Store, error) {
	gdb := client.DB()

	usersSvc, err := users.NewService(users.NewRepository(gdb), cfg.Password)
	if err != nil {
		return nil, err
	}
	catalogSvc, err := catalog.NewService(catalog.NewRepository(gdb), logg)
	if err != nil {
		return nil, err
	}
	settingsSvc, err := settings.NewService(settings.NewRepository(gdb))
	if err != nil {
		return nil, err
	}
	inventorySvc, err := inventory.NewService(inventory.NewRepository(gdb), catalog.NewRepository(gdb), settingsSvc)
	if err != nil {
		return nil, err
	}
	customersSvc, err := customers.NewService(customers.NewRepository(gdb))
	if err != nil {
		return nil, err
	}
	suppliersSvc, err := suppliers.NewService(suppliers.NewRepository(gdb))
	if err != nil {
		return nil, err
	}
	prescriptionsSvc, err := prescriptions.NewService(prescriptions.NewRepository(gdb), customers.NewRepository(gdb))
	if err != nil {
		return nil, err
	}
	salesSvc, err := sales.NewService(sales.NewRepository(gdb), client, inventory.NewRepository(gdb), logg)
	if err != nil {
		return nil, err
	}
	reportsSvc, err := reports.NewService(reports.NewRepository(gdb))
	if err != nil {
		return nil, err
	}

	return &Store{
		client:        client,
		Users:         usersSvc,
		Catalog:       catalogSvc,
		Inventory:     inventorySvc,
		Customers:     customersSvc,
		Suppliers:     suppliersSvc,
		Prescriptions: prescriptionsSvc,
		Sales:         salesSvc,
		Settings:      settingsSvc,
		Reports:       reportsSvc,
	}, nil
}

// Ping verifies the datasource is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close shuts down the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
