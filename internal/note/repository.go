// internal/note/repository.go
package note

import (
	"gorm.io/gorm"
)

// Repository wraps database access for Note.
type Repository struct {
	DB *gorm.DB
}

// NewRepository returns a repository bound to db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new note.
func (r *Repository) Create(n *Note) error {
	return r.DB.Create(n).Error
}

// FindByConversion returns all notes on a conversion, newest first.
func (r *Repository) FindByConversion(conversionID uint) ([]Note, error) {
	var list []Note
	err := r.DB.Where("conversion_id = ?", conversionID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// FindByID returns one note by ID.
func (r *Repository) FindByID(id uint) (*Note, error) {
	var n Note
	if err := r.DB.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// Update saves changes to an existing note.
func (r *Repository) Update(n *Note) error {
	return r.DB.Save(n).Error
}

// Delete soft-deletes a note.
func (r *Repository) Delete(n *Note) error {
	return r.DB.Delete(n).Error
}
