package prescriptions

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/pharmaware/pharmacare/internal/customers"
	pkgerrors "github.com/pharmaware/pharmacare/pkg/errors"
	"github.com/pharmaware/pharmacare/pkg/migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	prescriptions *Service
	customers     *customers.Service
	db            *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:prescriptions_%d?mode=memory&cache=shared&_foreign_keys=on", time.Now().UnixNano())
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

	customersSvc, err := customers.NewService(customers.NewRepository(gdb))
	require.NoError(t, err)
	svc, err := NewService(NewRepository(gdb), customers.NewRepository(gdb))
	require.NoError(t, err)
	return &fixture{prescriptions: svc, customers: customersSvc, db: gdb}
}

func TestCreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer, err := f.customers.Create(ctx, customers.CreateCustomerInput{Name: "Sunil Rao"})
	require.NoError(t, err)

	older, err := f.prescriptions.Create(ctx, CreatePrescriptionInput{
		CustomerID:       customer.ID,
		DoctorName:       "Dr. Mehta",
		RxNumber:         "RX-100",
		PrescriptionDate: time.Now().UTC().AddDate(0, -2, 0),
	})
	require.NoError(t, err)
	require.NotNil(t, older.RxNumber)

	newer, err := f.prescriptions.Create(ctx, CreatePrescriptionInput{
		CustomerID: customer.ID,
		DoctorName: "Dr. Iyer",
	})
	require.NoError(t, err)
	assert.False(t, newer.PrescriptionDate.IsZero())

	list, err := f.prescriptions.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Dr. Iyer", list[0].DoctorName)
	assert.Equal(t, "Dr. Mehta", list[1].DoctorName)
}

func TestCreateUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.prescriptions.Create(context.Background(), CreatePrescriptionInput{
		CustomerID: 9999,
		DoctorName: "Dr. Nobody",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeReferential))
}

func TestAttachSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer, err := f.customers.Create(ctx, customers.CreateCustomerInput{Name: "Kavita"})
	require.NoError(t, err)
	prescription, err := f.prescriptions.Create(ctx, CreatePrescriptionInput{
		CustomerID: customer.ID,
		DoctorName: "Dr. Shah",
	})
	require.NoError(t, err)

	// attaching a nonexistent sale violates the foreign key
	err = f.prescriptions.AttachSale(ctx, prescription.ID, 424242)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeReferential))

	err = f.prescriptions.AttachSale(ctx, 9999, 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
