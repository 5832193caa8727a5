// Package favorites lets a caller bookmark products. Authentication lives in
// the external presentation layer; the caller's identity arrives as an opaque
// X-User-ID header.
package favorites

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nutriswap/nutriswap/models"
)

type SavedProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Grade     string `json:"nutrition_grade"`
	ImageURL  string `json:"image_url"`
}

type SavedProductProvider interface {
	Save(userID string, productID uint) error
	ListByUser(userID string) ([]models.SavedProduct, error)
	Delete(userID string, productID uint) error
}

type FavoritesHandler struct {
	repo SavedProductProvider
}

func NewFavoritesHandler(r SavedProductProvider) *FavoritesHandler {
	return &FavoritesHandler{repo: r}
}

func (h *FavoritesHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		http.Error(w, "Missing X-User-ID header", http.StatusBadRequest)
		return
	}

	var input struct {
		ProductID uint `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.ProductID == 0 {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if err := h.repo.Save(userID, input.ProductID); err != nil {
		if errors.Is(err, models.ErrAlreadySaved) {
			http.Error(w, "Product already saved", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to save product", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Product saved",
	})
}

func (h *FavoritesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		http.Error(w, "Missing X-User-ID header", http.StatusBadRequest)
		return
	}

	saved, err := h.repo.ListByUser(userID)
	if err != nil {
		http.Error(w, "Failed to list saved products", http.StatusInternalServerError)
		return
	}

	response := make([]SavedProduct, len(saved))
	for i, s := range saved {
		response[i] = SavedProduct{
			ProductID: s.ProductID,
			Name:      s.Product.Name,
			Brand:     s.Product.Brand,
			Grade:     string(s.Product.NutritionGrade),
			ImageURL:  s.Product.ImageURL,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *FavoritesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		http.Error(w, "Missing X-User-ID header", http.StatusBadRequest)
		return
	}

	productID, err := strconv.ParseUint(r.PathValue("productID"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(userID, uint(productID)); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not saved", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete saved product", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
