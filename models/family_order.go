package models

// FamilyOrder is the attributed link from a family to one of its orders.
// It corresponds to the 'family_orders' table. Exactly one row is created
// per successfully imported order; duplicate orders never produce a link.
type FamilyOrder struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	FamilyID  string  `gorm:"not null;index" json:"family_id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	Amount    float64 `gorm:"not null;default:0" json:"amount"`
	OrderDate string  `gorm:"" json:"order_date"`
	CreatedAt int64   `gorm:"not null" json:"created_at"` // Stored as INTEGER in SQLite, Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (FamilyOrder) TableName() string {
	return "family_orders"
}
