package models

// DefaultProductImage is stored when the upstream record carries no image_url.
const DefaultProductImage = "https://static.openfoodfacts.org/images/image-placeholder.png"

// Product is one food item pulled from the external database.
// Products are only ever created by ingestion; there is no update path.
type Product struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:150;not null"`
	Brand          string `gorm:"size:200"`
	NutritionGrade Grade  `gorm:"size:1;not null;default:Z"`
	ItemCode       string `gorm:"size:150"`
	Description    string
	ImageURL       string
	SourceLink     string

	Categories []Category `gorm:"many2many:product_categories"`
}

func (p *Product) TableName() string {
	return "products"
}
