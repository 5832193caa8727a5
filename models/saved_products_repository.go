package models

import "gorm.io/gorm"

type SavedProductsRepository struct {
	db *gorm.DB
}

func NewSavedProductsRepository(db *gorm.DB) *SavedProductsRepository {
	return &SavedProductsRepository{
		db: db,
	}
}

// Save bookmarks a product for a user. The composite unique index turns a
// second save of the same pair into ErrAlreadySaved.
func (r *SavedProductsRepository) Save(userID string, productID uint) error {
	saved := SavedProduct{UserID: userID, ProductID: productID}
	if err := r.db.Omit("Product").Create(&saved).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrAlreadySaved
		}
		return err
	}
	return nil
}

func (r *SavedProductsRepository) ListByUser(userID string) ([]SavedProduct, error) {
	var saved []SavedProduct
	if err := r.db.
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *SavedProductsRepository) Delete(userID string, productID uint) error {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&SavedProduct{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
