package models

import (
	"errors"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetAll() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) FindByName(name string) (*Category, error) {
	var category Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoriesRepository) Create(category *Category) error {
	return r.db.Create(category).Error
}

// GetOrCreateByName resolves a category by name, creating a bare record if it
// does not exist yet. A losing racer on the name unique constraint re-reads,
// so concurrent callers converge on a single row.
func (r *CategoriesRepository) GetOrCreateByName(name string) (*Category, error) {
	category := Category{Name: name}
	err := r.db.Where("name = ?", name).FirstOrCreate(&category).Error
	if err == nil {
		return &category, nil
	}
	if IsUniqueViolation(err) {
		return r.FindByName(name)
	}
	return nil, err
}
