package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cashier is a local terminal account. Auth is name + PIN; there is no
// external identity provider on a store terminal.
type Cashier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	PINHash   string    `gorm:"size:100;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:cashier" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before inserting a new cashier
func (c *Cashier) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Cashier model
func (Cashier) TableName() string {
	return "cashiers"
}
