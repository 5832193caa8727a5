package models

import (
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetByID loads a product with its categories. Categories come back ordered
// by their id, which is the order the substitute search walks them in.
func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("categories.id")
		}).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// SearchByName returns products whose name contains the query, case-insensitively.
func (r *ProductsRepository) SearchByName(query string) ([]Product, error) {
	var products []Product
	if err := r.db.
		Where("name ILIKE ?", "%"+query+"%").
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) Create(product *Product) error {
	return r.db.Omit("Categories").Create(product).Error
}

// AttachCategory links product to category in the join table.
func (r *ProductsRepository) AttachCategory(product *Product, category *Category) error {
	return r.db.Model(product).Omit("Categories.*").Association("Categories").Append(category)
}

// InCategoryWithGrades returns the products of one category whose grade is in
// grades, excluding excludeID, ordered by id. It is the per-category leg of
// the substitute intersection.
func (r *ProductsRepository) InCategoryWithGrades(categoryID uint, grades []Grade, excludeID uint) ([]Product, error) {
	var products []Product
	if err := r.db.
		Joins("JOIN product_categories ON product_categories.product_id = products.id").
		Where("product_categories.category_id = ?", categoryID).
		Where("products.nutrition_grade IN ?", grades).
		Where("products.id <> ?", excludeID).
		Order("products.id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
