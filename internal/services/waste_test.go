package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hospital-management-server/internal/models"
)

func createTestCollector(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Email:     "nurse@hospital.test",
		Password:  "x",
		FirstName: "Joy",
		LastName:  "Mbeki",
		Role:      models.RoleNurse,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRecordWasteDefaultsAndAttribution(t *testing.T) {
	db := newTestDB(t)
	svc := NewWasteService(db)
	department := createTestDepartment(t, db, "Surgery")
	collector := createTestCollector(t, db)

	record, err := svc.Record(RecordWasteInput{
		Category:      models.WasteSharps,
		DepartmentID:  department.ID,
		Quantity:      2.5,
		CollectedByID: collector.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "WAS000001", record.WasteID)
	assert.Equal(t, models.WasteCollected, record.Status)
	assert.Equal(t, "kg", record.Unit)
	assert.Equal(t, models.HazardMedium, record.HazardLevel)
	assert.Equal(t, models.ComplianceCompliant, record.ComplianceStatus)
	assert.Equal(t, collector.ID, record.CollectedByID)
}

func TestRecordWasteRequiresDepartment(t *testing.T) {
	db := newTestDB(t)
	svc := NewWasteService(db)

	_, err := svc.Record(RecordWasteInput{
		Category:     models.WasteGeneral,
		DepartmentID: "missing",
		Quantity:     1,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdvanceToDisposedRecordsActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewWasteService(db)
	department := createTestDepartment(t, db, "Surgery")
	collector := createTestCollector(t, db)

	record, err := svc.Record(RecordWasteInput{
		Category:     models.WasteInfectious,
		DepartmentID: department.ID,
		Quantity:     4,
	})
	require.NoError(t, err)

	disposalDate := time.Now()
	disposed, err := svc.Advance(record.ID, AdvanceInput{
		Status:            models.WasteDisposed,
		DisposalMethod:    "Incineration",
		DisposalDate:      &disposalDate,
		DisposalVendor:    "BioSafe Ltd",
		CertificateNumber: "CERT-2026-001",
		DisposedByID:      collector.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.WasteDisposed, disposed.Status)
	assert.Equal(t, "Incineration", disposed.DisposalMethod)
	assert.Equal(t, "BioSafe Ltd", disposed.DisposalVendor)
	assert.Equal(t, "CERT-2026-001", disposed.CertificateNumber)
	assert.Equal(t, collector.ID, disposed.DisposedByID)
	assert.NotNil(t, disposed.DisposalDate)
}

func TestAdvanceAllowsAnyTransition(t *testing.T) {
	db := newTestDB(t)
	svc := NewWasteService(db)
	department := createTestDepartment(t, db, "Surgery")

	record, err := svc.Record(RecordWasteInput{
		Category:     models.WasteChemical,
		DepartmentID: department.ID,
		Quantity:     1,
	})
	require.NoError(t, err)

	// Statuses move freely, including backwards.
	for _, status := range []models.WasteStatus{models.WasteProcessed, models.WasteStored, models.WasteDisposed, models.WasteCollected} {
		updated, err := svc.Advance(record.ID, AdvanceInput{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestAdvanceUnknownRecord(t *testing.T) {
	db := newTestDB(t)
	svc := NewWasteService(db)

	_, err := svc.Advance("missing", AdvanceInput{Status: models.WasteStored})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportAggregatesByCategoryDepartmentAndStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewWasteService(db)
	surgery := createTestDepartment(t, db, "Surgery")
	pathology := createTestDepartment(t, db, "Pathology")

	seed := []RecordWasteInput{
		{Category: models.WasteSharps, DepartmentID: surgery.ID, Quantity: 2},
		{Category: models.WasteSharps, DepartmentID: surgery.ID, Quantity: 3},
		{Category: models.WasteInfectious, DepartmentID: pathology.ID, Quantity: 5},
	}
	var last *models.WasteRecord
	for _, in := range seed {
		record, err := svc.Record(in)
		require.NoError(t, err)
		last = record
	}

	_, err := svc.Advance(last.ID, AdvanceInput{Status: models.WasteDisposed})
	require.NoError(t, err)

	report, records, err := svc.Report(ReportFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 10.0, report.TotalQuantity)
	assert.Equal(t, 5.0, report.ByCategory[models.WasteSharps])
	assert.Equal(t, 5.0, report.ByCategory[models.WasteInfectious])
	assert.Equal(t, 5.0, report.ByDepartment["Surgery"])
	assert.Equal(t, 5.0, report.ByDepartment["Pathology"])
	assert.Equal(t, 2, report.ByStatus[models.WasteCollected])
	assert.Equal(t, 1, report.ByStatus[models.WasteDisposed])
	assert.Equal(t, 3, report.ComplianceStatus[models.ComplianceCompliant])
}

func TestReportFiltersByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewWasteService(db)
	department := createTestDepartment(t, db, "Surgery")

	for _, in := range []RecordWasteInput{
		{Category: models.WasteSharps, DepartmentID: department.ID, Quantity: 2},
		{Category: models.WasteGeneral, DepartmentID: department.ID, Quantity: 8},
	} {
		_, err := svc.Record(in)
		require.NoError(t, err)
	}

	report, records, err := svc.Report(ReportFilter{Category: models.WasteSharps})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2.0, report.TotalQuantity)
	assert.Empty(t, report.ByCategory[models.WasteGeneral])
}
