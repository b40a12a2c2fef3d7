package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GalleryList is an ordered list of gallery labels stored as a JSON text
// column. Implementing Valuer/Scanner keeps it usable from both struct
// creates and map-based partial updates.
type GalleryList []string

// Value implements driver.Valuer.
func (g GalleryList) Value() (driver.Value, error) {
	if g == nil {
		return nil, nil
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gallery list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (g *GalleryList) Scan(value interface{}) error {
	if value == nil {
		*g = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported gallery list column type %T", value)
	}
	if err := json.Unmarshal(data, g); err != nil {
		return fmt.Errorf("failed to unmarshal gallery list: %w", err)
	}
	return nil
}

// Family represents a household/customer grouping in the database using GORM.
// It corresponds to the 'families' table. The primary key is the derived
// family key computed from the surname, not an auto-increment id.
type Family struct {
	ID                string      `gorm:"primaryKey" json:"id"`
	Name              string      `gorm:"not null" json:"name"`
	LastName          string      `gorm:"not null" json:"last_name"`
	ExternalContactID *int64      `gorm:"" json:"external_contact_id,omitempty"` // Nullable, ShootProof contact id
	DeliveryEmail     *string     `gorm:"" json:"delivery_email,omitempty"`      // Nullable
	Phone             *string     `gorm:"" json:"phone,omitempty"`               // Nullable
	Galleries         GalleryList `gorm:"type:text" json:"galleries,omitempty"`
	CreatedAt         int64       `gorm:"not null" json:"created_at"` // Stored as INTEGER in SQLite, Unix timestamp
	UpdatedAt         int64       `gorm:"not null" json:"updated_at"` // Stored as INTEGER in SQLite, Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Family) TableName() string {
	return "families"
}
