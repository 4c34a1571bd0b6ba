package categories

import (
	"context"
	"net/http"

	"github.com/triviaquiz/trivia-api/app/api"
	"github.com/triviaquiz/trivia-api/models"
)

type Response struct {
	Success    bool            `json:"success"`
	Categories map[uint]string `json:"categories"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, Response{
		Success:    true,
		Categories: Labels(categories),
	})
}

// Labels maps category id to its type label. The JSON encoder writes the
// integer keys as strings.
func Labels(categories []models.Category) map[uint]string {
	labels := make(map[uint]string, len(categories))
	for _, c := range categories {
		labels[c.ID] = c.Type
	}
	return labels
}
