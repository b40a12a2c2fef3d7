package models

// Order represents one ShootProof order in the database using GORM.
// It corresponds to the 'orders' table. ExternalOrderID is the id assigned
// by ShootProof and is the dedup key across imports; ID is the
// storage-assigned primary key used for relationship rows.
type Order struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalOrderID int64   `gorm:"not null;uniqueIndex" json:"external_order_id"`
	OrderDate       string  `gorm:"not null" json:"order_date"` // ISO form, or the raw export string if unparseable
	GalleryName     string  `gorm:"" json:"gallery_name"`
	CustomerName    string  `gorm:"" json:"customer_name"`
	CustomerEmail   string  `gorm:"" json:"customer_email"`
	TotalSales      float64 `gorm:"not null;default:0" json:"total_sales"`
	Profit          float64 `gorm:"not null;default:0" json:"profit"`
	IsComp          bool    `gorm:"not null;default:false" json:"is_comp"`
	ItemCount       int     `gorm:"not null;default:0" json:"item_count"`
	ItemsRaw        *string `gorm:"" json:"items_raw,omitempty"` // Nullable, truncated item list text
	CreatedAt       int64   `gorm:"not null" json:"created_at"`  // Stored as INTEGER in SQLite, Unix timestamp
}

// TableName explicitly sets the table name for GORM.
func (Order) TableName() string {
	return "orders"
}
