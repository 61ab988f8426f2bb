// internal/promotion/repository.go
package promotion

import (
	"errors"

	"gorm.io/gorm"
)

// ErrExhausted is returned by ConsumeUse when the usage cap is already hit.
var ErrExhausted = errors.New("promotion: usage cap exhausted")

// Repository wraps database access for Promotion.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new promotion.
func (r *Repository) Create(p *Promotion) error {
	return r.DB.Create(p).Error
}

// FindAll returns every promotion.
func (r *Repository) FindAll() ([]Promotion, error) {
	var list []Promotion
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

// FindByID returns one promotion by ID.
func (r *Repository) FindByID(id uint) (*Promotion, error) {
	var p Promotion
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update saves changes to an existing promotion.
func (r *Repository) Update(p *Promotion) error {
	return r.DB.Save(p).Error
}

// Delete soft-deletes a promotion.
func (r *Repository) Delete(p *Promotion) error {
	return r.DB.Delete(p).Error
}

// ConsumeUse increments current_uses by one with the cap check pushed into
// the UPDATE itself, so two concurrent conversions cannot oversell a capped
// promotion. Returns ErrExhausted when the guarded update matches no row.
func (r *Repository) ConsumeUse(id uint) error {
	res := r.DB.Model(&Promotion{}).
		Where("id = ? AND (max_uses IS NULL OR current_uses < max_uses)", id).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrExhausted
	}
	return nil
}
