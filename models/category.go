package models

// Category mirrors one entry of the Open Food Facts category taxonomy.
// Rows are created by ingestion and never updated or deleted afterwards.
type Category struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:500;uniqueIndex;not null"`
	ProductCount int    `gorm:"not null;default:0"`
	SourceURL    string
	SourceID     string

	Products []Product `gorm:"many2many:product_categories"`
}

func (c *Category) TableName() string {
	return "categories"
}
