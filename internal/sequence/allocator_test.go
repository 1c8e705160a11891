package sequence

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hospital-management-server/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "sequence.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.SequenceCounter{}))
	return db
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "PAT000001", FormatID(KindPatient, 1))
	assert.Equal(t, "APT000042", FormatID(KindAppointment, 42))
	assert.Equal(t, "WRD0007", FormatID(KindWard, 7))
	assert.Equal(t, "INV123456", FormatID(KindInvoice, 123456))
	assert.Equal(t, "WAS000010", FormatID(KindWaste, 10))
}

func TestNextIsSequentialPerKind(t *testing.T) {
	db := newTestDB(t)

	for i := 1; i <= 3; i++ {
		var id string
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			id, err = Next(tx, KindPatient)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, FormatID(KindPatient, int64(i)), id)
	}
}

func TestNextKindsAreIndependent(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		for range [3]struct{}{} {
			if _, err := Next(tx, KindPatient); err != nil {
				return err
			}
		}
		id, err := Next(tx, KindWard)
		require.NoError(t, err)
		assert.Equal(t, "WRD0001", id)
		return nil
	})
	require.NoError(t, err)
}

// Invoice and inventory identifiers share the INV prefix but draw from
// separate counters, so the same rendered id can exist in both families.
func TestInvoiceAndInventoryCountersIndependent(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		invoiceID, err := Next(tx, KindInvoice)
		require.NoError(t, err)
		inventoryID, err := Next(tx, KindInventory)
		require.NoError(t, err)
		assert.Equal(t, "INV000001", invoiceID)
		assert.Equal(t, "INV000001", inventoryID)
		return nil
	})
	require.NoError(t, err)
}

func TestNextUnknownKind(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := Next(tx, Kind("bogus"))
		return err
	})
	assert.Error(t, err)
}

func TestNextConcurrentAllocationsAreDistinct(t *testing.T) {
	db := newTestDB(t)

	const workers = 10
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.Transaction(func(tx *gorm.DB) error {
				id, err := Next(tx, KindAppointment)
				ids[i] = id
				return err
			})
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "duplicate id %s", ids[i])
		seen[ids[i]] = true
	}
	assert.Len(t, seen, workers)
}

func TestNextRollsBackWithTransaction(t *testing.T) {
	db := newTestDB(t)

	failed := db.Transaction(func(tx *gorm.DB) error {
		if _, err := Next(tx, KindWaste); err != nil {
			return err
		}
		return gorm.ErrInvalidData
	})
	require.Error(t, failed)

	var id string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = Next(tx, KindWaste)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "WAS000001", id)
}
