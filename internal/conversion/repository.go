// internal/conversion/repository.go
package conversion

import (
	"gorm.io/gorm"
)

// Repository wraps database access for Conversion.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new conversion.
func (r *Repository) Create(c *Conversion) error {
	return r.DB.Create(c).Error
}

// FindAll returns conversions, optionally filtered by status.
func (r *Repository) FindAll(status string) ([]Conversion, error) {
	var list []Conversion
	q := r.DB.Order("id")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

// FindByID returns one conversion by ID.
func (r *Repository) FindByID(id uint) (*Conversion, error) {
	var c Conversion
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindBySalesperson returns a salesperson's conversions.
func (r *Repository) FindBySalesperson(salespersonID uint) ([]Conversion, error) {
	var list []Conversion
	err := r.DB.Where("salesperson_id = ?", salespersonID).Order("id").Find(&list).Error
	return list, err
}

// Update saves changes to an existing conversion.
func (r *Repository) Update(c *Conversion) error {
	return r.DB.Save(c).Error
}

// Delete soft-deletes a conversion.
func (r *Repository) Delete(c *Conversion) error {
	return r.DB.Delete(c).Error
}
