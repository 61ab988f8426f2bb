// internal/salesperson/repository.go
package salesperson

import (
	"gorm.io/gorm"
)

// Repository wraps database access for Salesperson.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new salesperson.
func (r *Repository) Create(s *Salesperson) error {
	return r.DB.Create(s).Error
}

// FindAll returns every salesperson.
func (r *Repository) FindAll() ([]Salesperson, error) {
	var list []Salesperson
	err := r.DB.Order("id").Find(&list).Error
	return list, err
}

// FindByID returns one salesperson by ID.
func (r *Repository) FindByID(id uint) (*Salesperson, error) {
	var s Salesperson
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByEmail returns one salesperson by email, for login.
func (r *Repository) FindByEmail(email string) (*Salesperson, error) {
	var s Salesperson
	if err := r.DB.Where("email = ?", email).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Update saves changes to an existing salesperson.
func (r *Repository) Update(s *Salesperson) error {
	return r.DB.Save(s).Error
}

// Delete soft-deletes a salesperson.
func (r *Repository) Delete(s *Salesperson) error {
	return r.DB.Delete(s).Error
}
