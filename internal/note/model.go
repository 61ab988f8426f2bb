package note

import (
	"time"

	"gorm.io/gorm"
)

// Note is a staff comment attached to a conversion.
type Note struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ConversionID  uint   `gorm:"not null;index" json:"conversionId"`
	SalespersonID uint   `gorm:"not null;index" json:"salespersonId"`
	Text          string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Note{})
}
