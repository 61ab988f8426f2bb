// internal/subscription/repository.go
package subscription

import (
	"gorm.io/gorm"
)

// Repository wraps database access for Subscription.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new subscription.
func (r *Repository) Create(s *Subscription) error {
	return r.DB.Create(s).Error
}

// FindByID returns one subscription by ID.
func (r *Repository) FindByID(id uint) (*Subscription, error) {
	var s Subscription
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindAll returns every subscription.
func (r *Repository) FindAll() ([]Subscription, error) {
	var list []Subscription
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

// Update saves changes to an existing subscription.
func (r *Repository) Update(s *Subscription) error {
	return r.DB.Save(s).Error
}

// AddWaivedCycles accumulates a free-months grant on an existing
// subscription. Stacked grants are additive.
func (r *Repository) AddWaivedCycles(id uint, n int) error {
	return r.DB.Model(&Subscription{}).Where("id = ?", id).
		UpdateColumn("waived_cycles", gorm.Expr("waived_cycles + ?", n)).Error
}
