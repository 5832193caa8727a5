// Package substitutes finds healthier alternatives for a reference product.
package substitutes

import (
	"github.com/nutriswap/nutriswap/models"
)

// maxCategories caps how many of the reference product's categories the
// intersection walks, in id order.
const maxCategories = 5

type ProductProvider interface {
	GetByID(id uint) (*models.Product, error)
	InCategoryWithGrades(categoryID uint, grades []models.Grade, excludeID uint) ([]models.Product, error)
}

type Finder struct {
	repo ProductProvider
}

func NewFinder(repo ProductProvider) *Finder {
	return &Finder{
		repo: repo,
	}
}

// acceptableGrades is the fixed substitution table over the grade order
// A < B < C < D < E < Z. Note that B maps to {A} only.
func acceptableGrades(grade models.Grade) []models.Grade {
	switch grade {
	case models.GradeA:
		return []models.Grade{models.GradeA}
	case models.GradeB:
		return []models.Grade{models.GradeA}
	case models.GradeC:
		return []models.Grade{models.GradeA, models.GradeB}
	case models.GradeD:
		return []models.Grade{models.GradeA, models.GradeB, models.GradeC}
	case models.GradeE:
		return []models.Grade{models.GradeA, models.GradeB, models.GradeC, models.GradeD}
	default:
		return []models.Grade{models.GradeA, models.GradeB, models.GradeC, models.GradeD, models.GradeE}
	}
}

// FindSubstitutes returns the products that share every one of the reference
// product's categories (the first five, in id order) and carry an acceptable
// grade, excluding the reference itself. The result is ordered by product id
// ascending, so repeated calls over the same data are deterministic.
//
// The candidate set is seeded from the first category and only ever narrowed:
// an empty first leg means an empty result regardless of later categories.
func (f *Finder) FindSubstitutes(id uint) ([]models.Product, error) {
	reference, err := f.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	categories := reference.Categories
	if len(categories) == 0 {
		return []models.Product{}, nil
	}
	if len(categories) > maxCategories {
		categories = categories[:maxCategories]
	}

	grades := acceptableGrades(reference.NutritionGrade)

	candidates, err := f.repo.InCategoryWithGrades(categories[0].ID, grades, id)
	if err != nil {
		return nil, err
	}

	for _, category := range categories[1:] {
		if len(candidates) == 0 {
			break
		}
		leg, err := f.repo.InCategoryWithGrades(category.ID, grades, id)
		if err != nil {
			return nil, err
		}

		keep := make(map[uint]struct{}, len(leg))
		for _, p := range leg {
			keep[p.ID] = struct{}{}
		}

		narrowed := candidates[:0]
		for _, p := range candidates {
			if _, ok := keep[p.ID]; ok {
				narrowed = append(narrowed, p)
			}
		}
		candidates = narrowed
	}

	return candidates, nil
}
