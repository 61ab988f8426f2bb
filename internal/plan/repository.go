// internal/plan/repository.go
package plan

import (
	"gorm.io/gorm"
)

// Repository wraps database access for MembershipPlan.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new plan.
func (r *Repository) Create(p *MembershipPlan) error {
	return r.DB.Create(p).Error
}

// FindAll returns every plan.
func (r *Repository) FindAll() ([]MembershipPlan, error) {
	var list []MembershipPlan
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

// FindByID returns one plan by ID.
func (r *Repository) FindByID(id uint) (*MembershipPlan, error) {
	var p MembershipPlan
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Update saves changes to an existing plan.
func (r *Repository) Update(p *MembershipPlan) error {
	return r.DB.Save(p).Error
}

// Delete soft-deletes a plan.
func (r *Repository) Delete(p *MembershipPlan) error {
	return r.DB.Delete(p).Error
}

// IsReferenced reports whether any subscription points at the plan. Plans
// with active subscribers are frozen.
func (r *Repository) IsReferenced(id uint) (bool, error) {
	var n int64
	err := r.DB.Table("subscriptions").Where("plan_id = ? AND deleted_at IS NULL", id).Count(&n).Error
	return n > 0, err
}
