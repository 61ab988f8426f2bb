// internal/ledger/repository.go
package ledger

import (
	"gorm.io/gorm"
)

// Repository wraps database access for CommissionRecord.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// CreateInBatch inserts a set of records in one statement.
func (r *Repository) CreateInBatch(records []*CommissionRecord) error {
	return r.DB.Create(records).Error
}

// FindByID returns one record by ID.
func (r *Repository) FindByID(id uint) (*CommissionRecord, error) {
	var rec CommissionRecord
	if err := r.DB.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByConversion returns all records earned on a conversion.
func (r *Repository) FindByConversion(conversionID uint) ([]CommissionRecord, error) {
	var list []CommissionRecord
	err := r.DB.Where("conversion_id = ?", conversionID).Order("id").Find(&list).Error
	return list, err
}

// FindBySalesperson returns a salesperson's records, optionally filtered
// by status.
func (r *Repository) FindBySalesperson(salespersonID uint, status string) ([]CommissionRecord, error) {
	var list []CommissionRecord
	q := r.DB.Where("salesperson_id = ?", salespersonID).Order("earned_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

// SaveTransition persists a transitioned record with an optimistic check
// on the previously observed status, so two concurrent transitions of the
// same record cannot both win. Returns ErrStaleState when the row no
// longer carries the expected status.
func (r *Repository) SaveTransition(rec *CommissionRecord, expectedCurrent string) error {
	res := r.DB.Model(&CommissionRecord{}).
		Where("id = ? AND status = ?", rec.ID, expectedCurrent).
		Updates(map[string]interface{}{
			"status":         rec.Status,
			"paid_date":      rec.PaidDate,
			"dispute_reason": rec.DisputeReason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}
