package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hospital-management-server/internal/models"
	"hospital-management-server/internal/sequence"
)

// WasteService owns the medical-waste disposal lifecycle and aggregate
// compliance reporting.
type WasteService struct {
	DB *gorm.DB
}

// NewWasteService creates a new WasteService.
func NewWasteService(db *gorm.DB) *WasteService {
	return &WasteService{DB: db}
}

// RecordWasteInput carries a new waste entry.
type RecordWasteInput struct {
	Category      models.WasteCategory
	DepartmentID  string
	WardID        string
	Quantity      float64
	Unit          string
	Description   string
	HazardLevel   models.HazardLevel
	CollectedByID string
}

// Record creates a waste record in Collected state attributed to the
// collecting actor.
func (s *WasteService) Record(in RecordWasteInput) (*models.WasteRecord, error) {
	var record models.WasteRecord

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var department models.Department
		if err := tx.First(&department, "id = ?", in.DepartmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("department: %w", ErrNotFound)
			}
			return err
		}

		id, err := sequence.Next(tx, sequence.KindWaste)
		if err != nil {
			return err
		}

		unit := in.Unit
		if unit == "" {
			unit = "kg"
		}
		hazard := in.HazardLevel
		if hazard == "" {
			hazard = models.HazardMedium
		}

		record = models.WasteRecord{
			WasteID:          id,
			Category:         in.Category,
			Date:             time.Now(),
			DepartmentID:     department.ID,
			WardID:           in.WardID,
			Quantity:         in.Quantity,
			Unit:             unit,
			Description:      in.Description,
			HazardLevel:      hazard,
			CollectedByID:    in.CollectedByID,
			Status:           models.WasteCollected,
			ComplianceStatus: models.ComplianceCompliant,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// AdvanceInput carries a waste status update. Transitions are deliberately
// unconstrained (any status to any status) to match established compliance
// workflows; only the Disposed transition has extra bookkeeping.
type AdvanceInput struct {
	Status            models.WasteStatus
	DisposalMethod    string
	DisposalDate      *time.Time
	DisposalVendor    string
	CertificateNumber string
	Notes             string
	DisposedByID      string
}

// Advance moves a waste record to a new status. Reaching Disposed records
// the disposing actor.
func (s *WasteService) Advance(id string, in AdvanceInput) (*models.WasteRecord, error) {
	var record models.WasteRecord
	if err := s.DB.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"status": in.Status}
	if in.DisposalMethod != "" {
		updates["disposal_method"] = in.DisposalMethod
	}
	if in.DisposalDate != nil {
		updates["disposal_date"] = *in.DisposalDate
	}
	if in.DisposalVendor != "" {
		updates["disposal_vendor"] = in.DisposalVendor
	}
	if in.CertificateNumber != "" {
		updates["certificate_number"] = in.CertificateNumber
	}
	if in.Notes != "" {
		updates["notes"] = in.Notes
	}
	if in.Status == models.WasteDisposed && in.DisposedByID != "" {
		updates["disposed_by_id"] = in.DisposedByID
	}

	if err := s.DB.Model(&record).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ReportFilter narrows the records included in a waste report.
type ReportFilter struct {
	Category  models.WasteCategory
	StartDate *time.Time
	EndDate   *time.Time
}

// WasteReport aggregates matching waste records.
type WasteReport struct {
	TotalQuantity    float64                          `json:"totalQuantity"`
	ByCategory       map[models.WasteCategory]float64 `json:"byCategory"`
	ByDepartment     map[string]float64               `json:"byDepartment"`
	ByStatus         map[models.WasteStatus]int       `json:"byStatus"`
	ComplianceStatus map[models.ComplianceStatus]int  `json:"complianceStatus"`
}

// Report aggregates waste records matching the filter into totals by
// category, source department, status and compliance status. Quantities sum;
// status and compliance tallies count records. Pure aggregation, no
// mutation.
func (s *WasteService) Report(filter ReportFilter) (*WasteReport, []models.WasteRecord, error) {
	query := s.DB.Preload("Department")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var records []models.WasteRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, nil, err
	}

	report := &WasteReport{
		ByCategory:       make(map[models.WasteCategory]float64),
		ByDepartment:     make(map[string]float64),
		ByStatus:         make(map[models.WasteStatus]int),
		ComplianceStatus: make(map[models.ComplianceStatus]int),
	}
	for _, r := range records {
		report.TotalQuantity += r.Quantity
		report.ByCategory[r.Category] += r.Quantity
		department := r.Department.Name
		if department == "" {
			department = "Unknown"
		}
		report.ByDepartment[department] += r.Quantity
		report.ByStatus[r.Status]++
		report.ComplianceStatus[r.ComplianceStatus]++
	}
	return report, records, nil
}
