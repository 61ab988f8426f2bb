package salesperson

import (
	"time"

	"gorm.io/gorm"
)

// Salesperson is a staff account that earns commissions and operates the
// dashboard.
type Salesperson struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Email     string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`
	Password  string `gorm:"size:255" json:"-"`
	IsAdmin   bool   `gorm:"not null;default:false" json:"isAdmin"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Salesperson{})
}
