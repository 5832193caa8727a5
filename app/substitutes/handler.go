package substitutes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nutriswap/nutriswap/models"
)

type Product struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Grade    string `json:"nutrition_grade"`
	ImageURL string `json:"image_url"`
	Link     string `json:"source_link"`
}

type Response struct {
	Reference   uint      `json:"reference"`
	Substitutes []Product `json:"substitutes"`
}

type SubstitutesHandler struct {
	finder *Finder
}

func NewSubstitutesHandler(finder *Finder) *SubstitutesHandler {
	return &SubstitutesHandler{
		finder: finder,
	}
}

func (h *SubstitutesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	found, err := h.finder.FindSubstitutes(uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to find substitutes", http.StatusInternalServerError)
		return
	}

	substitutes := make([]Product, len(found))
	for i, p := range found {
		substitutes[i] = Product{
			ID:       p.ID,
			Name:     p.Name,
			Brand:    p.Brand,
			Grade:    string(p.NutritionGrade),
			ImageURL: p.ImageURL,
			Link:     p.SourceLink,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	response := Response{
		Reference:   uint(id),
		Substitutes: substitutes,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
