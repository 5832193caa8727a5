package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nutriswap/nutriswap/models"
)

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Grade    string `json:"nutrition_grade"`
	ImageURL string `json:"image_url"`
}

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type ProductProvider interface {
	SearchByName(query string) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// HandleSearch is the consumer-facing name search: a case-insensitive
// substring match over product names.
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search")
	if query == "" {
		http.Error(w, "Missing search query", http.StatusBadRequest)
		return
	}

	res, err := h.repo.SearchByName(query)
	if err != nil {
		http.Error(w, "Failed to search products", http.StatusInternalServerError)
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = Product{
			ID:       p.ID,
			Name:     p.Name,
			Brand:    p.Brand,
			Grade:    string(p.NutritionGrade),
			ImageURL: p.ImageURL,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Total:    len(products),
		Products: products,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	product, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to retrieve product", http.StatusInternalServerError)
		return
	}

	categories := make([]Category, len(product.Categories))
	for i, c := range product.Categories {
		categories[i] = Category{
			ID:   c.ID,
			Name: c.Name,
		}
	}

	response := struct {
		ID          uint       `json:"id"`
		Name        string     `json:"name"`
		Brand       string     `json:"brand"`
		Grade       string     `json:"nutrition_grade"`
		ItemCode    string     `json:"item_code"`
		Description string     `json:"description"`
		ImageURL    string     `json:"image_url"`
		Link        string     `json:"source_link"`
		Categories  []Category `json:"categories"`
	}{
		ID:          product.ID,
		Name:        product.Name,
		Brand:       product.Brand,
		Grade:       string(product.NutritionGrade),
		ItemCode:    product.ItemCode,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Link:        product.SourceLink,
		Categories:  categories,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
