package ingest

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nutriswap/nutriswap/models"
	"github.com/nutriswap/nutriswap/openfoodfacts"
)

// CategoryStore is the slice of the category repository ingestion needs.
type CategoryStore interface {
	GetAll() ([]models.Category, error)
	FindByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	GetOrCreateByName(name string) (*models.Category, error)
}

// ProductStore is the slice of the product repository ingestion needs.
type ProductStore interface {
	Create(product *models.Product) error
	AttachCategory(product *models.Product, category *models.Category) error
}

// categoryInput is the validation gate for category creation.
type categoryInput struct {
	Name         string `validate:"required,max=500"`
	ProductCount int
	URL          string `validate:"required,url"`
	SourceID     string
}

// Ingestor turns raw upstream payloads into persisted rows. Per-record
// failures come back as *SkipError so callers can count them; anything else
// is a real storage error.
type Ingestor struct {
	categories CategoryStore
	products   ProductStore
	productURL func(code string) string
	validate   *validator.Validate
}

func NewIngestor(categories CategoryStore, products ProductStore, productURL func(code string) string) *Ingestor {
	return &Ingestor{
		categories: categories,
		products:   products,
		productURL: productURL,
		validate:   validator.New(),
	}
}

// UpsertCategory persists one taxonomy entry under create-once semantics: if a
// category with the same normalized name already exists, its stored fields are
// left untouched and the entry is skipped as a duplicate.
func (ing *Ingestor) UpsertCategory(tag openfoodfacts.CategoryTag) (*models.Category, error) {
	name := Normalize(tag.Name)

	if _, err := ing.categories.FindByName(name); err == nil {
		return nil, &SkipError{Reason: SkipDuplicate, Field: "name"}
	} else if !errors.Is(err, models.ErrCategoryNotFound) {
		return nil, err
	}

	input := categoryInput{
		Name:         name,
		ProductCount: tag.Products,
		URL:          tag.URL,
		SourceID:     tag.ID,
	}
	if err := ing.validate.Struct(input); err != nil {
		return nil, &SkipError{Reason: SkipInvalidField, Err: err}
	}

	category := models.Category{
		Name:         input.Name,
		ProductCount: input.ProductCount,
		SourceURL:    input.URL,
		SourceID:     input.SourceID,
	}
	if err := ing.categories.Create(&category); err != nil {
		if models.IsUniqueViolation(err) {
			return nil, &SkipError{Reason: SkipDuplicate, Field: "name", Err: err}
		}
		if models.IsDataError(err) {
			return nil, &SkipError{Reason: SkipDataError, Err: err}
		}
		return nil, err
	}
	return &category, nil
}

// ProductResult reports what one product ingestion produced.
type ProductResult struct {
	Product      *models.Product
	LinksCreated int
	LinksSkipped int
}

// IngestProduct builds, validates and persists one product record, then links
// it to its categories, creating them lazily where absent.
//
// A payload missing any of product_name, brands, code or ingredients_text is
// abandoned whole. A failing category link skips only that link.
func (ing *Ingestor) IngestProduct(payload openfoodfacts.ProductPayload) (*ProductResult, error) {
	if payload.ProductName == nil {
		return nil, &SkipError{Reason: SkipMissingField, Field: "product_name"}
	}
	if payload.Brands == nil {
		return nil, &SkipError{Reason: SkipMissingField, Field: "brands"}
	}
	if payload.Code == nil {
		return nil, &SkipError{Reason: SkipMissingField, Field: "code"}
	}
	if payload.IngredientsText == nil {
		return nil, &SkipError{Reason: SkipMissingField, Field: "ingredients_text"}
	}

	name := Normalize(*payload.ProductName)
	if name == "" {
		return nil, &SkipError{Reason: SkipInvalidField, Field: "product_name"}
	}

	brand, _, _ := strings.Cut(*payload.Brands, ",")
	brand = Normalize(brand)

	grade := models.GradeZ
	if payload.NutritionGrades != nil {
		parsed, ok := models.ParseGrade(*payload.NutritionGrades)
		if !ok {
			return nil, &SkipError{Reason: SkipInvalidField, Field: "nutrition_grades"}
		}
		grade = parsed
	}

	image := models.DefaultProductImage
	if payload.ImageURL != nil {
		image = *payload.ImageURL
	}

	product := models.Product{
		Name:           name,
		Brand:          brand,
		NutritionGrade: grade,
		ItemCode:       *payload.Code,
		Description:    *payload.IngredientsText,
		ImageURL:       image,
		SourceLink:     ing.productURL(*payload.Code),
	}
	if err := ing.products.Create(&product); err != nil {
		if models.IsIntegrityError(err) || models.IsDataError(err) {
			return nil, &SkipError{Reason: SkipDataError, Err: err}
		}
		return nil, err
	}

	result := &ProductResult{Product: &product}
	for _, token := range strings.Split(payload.Categories, ",") {
		if err := ing.linkCategory(&product, token); err != nil {
			result.LinksSkipped++
			continue
		}
		result.LinksCreated++
	}
	return result, nil
}

func (ing *Ingestor) linkCategory(product *models.Product, token string) error {
	name := Normalize(token)
	if name == "" {
		return &SkipError{Reason: SkipInvalidField, Field: "categories"}
	}
	category, err := ing.categories.GetOrCreateByName(name)
	if err != nil {
		return err
	}
	return ing.products.AttachCategory(product, category)
}
