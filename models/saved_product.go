package models

// SavedProduct is a user's bookmarked product. Who the user is belongs to the
// external auth layer; this side only stores their opaque identifier.
type SavedProduct struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    string  `gorm:"size:64;not null;uniqueIndex:idx_saved_user_product"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_saved_user_product"`
	Product   Product `gorm:"foreignKey:ProductID"`
}

func (s *SavedProduct) TableName() string {
	return "saved_products"
}
