package questions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/triviaquiz/trivia-api/app/api"
	"github.com/triviaquiz/trivia-api/app/categories"
	"github.com/triviaquiz/trivia-api/models"
)

// QuestionsPerPage is the page size of GET /questions.
const QuestionsPerPage = 10

// maxPage keeps the computed offset well inside int range.
const maxPage = 1 << 24

// defaultCategoryID is the category whose label GET /questions reports as
// current_category, whatever the request asks for.
const defaultCategoryID = 1

type ListResponse struct {
	Success         bool            `json:"success"`
	Questions       []api.Question  `json:"questions"`
	TotalQuestions  int64           `json:"total_questions"`
	Categories      map[uint]string `json:"categories"`
	CurrentCategory *string         `json:"current_category"`
}

type QuestionResponse struct {
	Success bool `json:"success"`
	api.Question
}

type DeleteResponse struct {
	Success bool `json:"success"`
	Deleted uint `json:"deleted"`
}

// SearchResponse carries a null question list when nothing matched.
type SearchResponse struct {
	Success   bool           `json:"success"`
	Questions []api.Question `json:"questions"`
}

type CategoryQuestionsResponse struct {
	Success         bool           `json:"success"`
	Questions       []api.Question `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	CurrentCategory uint           `json:"current_category"`
}

type CreateRequest struct {
	Question   *string      `json:"question"`
	Answer     *string      `json:"answer"`
	Category   *api.FlexInt `json:"category"`
	Difficulty *api.FlexInt `json:"difficulty"`
}

type QuestionProvider interface {
	GetPage(ctx context.Context, offset, limit int) ([]models.Question, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	CreateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id uint) error
	Search(ctx context.Context, term string) ([]models.Question, error)
	GetByCategory(ctx context.Context, categoryID uint) ([]models.Question, error)
}

type QuestionHandler struct {
	repo       QuestionProvider
	categories categories.CategoryProvider
}

func NewQuestionHandler(r QuestionProvider, c categories.CategoryProvider) *QuestionHandler {
	return &QuestionHandler{
		repo:       r,
		categories: c,
	}
}

func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pStr := r.URL.Query().Get("page"); pStr != "" {
		if p, err := strconv.Atoi(pStr); err == nil && p >= 1 {
			page = min(p, maxPage)
		}
	}

	res, total, err := h.repo.GetPage(r.Context(), (page-1)*QuestionsPerPage, QuestionsPerPage)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	cats, err := h.categories.GetAllCategories(r.Context())
	if err != nil {
		api.Fail(w, r, err)
		return
	}
	labels := categories.Labels(cats)

	var current *string
	if label, ok := labels[defaultCategoryID]; ok {
		current = &label
	}

	api.JSON(w, r, http.StatusOK, ListResponse{
		Success:         true,
		Questions:       api.FormatQuestions(res),
		TotalQuestions:  total,
		Categories:      labels,
		CurrentCategory: current,
	})
}

func (h *QuestionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	question, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.Fail(w, r, notFound(err))
		return
	}

	api.JSON(w, r, http.StatusOK, QuestionResponse{
		Success:  true,
		Question: api.FormatQuestion(*question),
	})
}

func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := api.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	if err := h.repo.DeleteQuestion(r.Context(), id); err != nil {
		api.Fail(w, r, notFound(err))
		return
	}

	api.JSON(w, r, http.StatusOK, DeleteResponse{
		Success: true,
		Deleted: id,
	})
}

func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.Fail(w, r, err)
		return
	}

	question, err := input.toModel()
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	if err := h.repo.CreateQuestion(r.Context(), question); err != nil {
		api.Fail(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, api.SuccessResponse{Success: true})
}

func (h *QuestionHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "searchTerm")

	res, err := h.repo.Search(r.Context(), term)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	response := SearchResponse{Success: true}
	if len(res) > 0 {
		response.Questions = api.FormatQuestions(res)
	}
	api.JSON(w, r, http.StatusOK, response)
}

func (h *QuestionHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := api.ParseID(chi.URLParam(r, "categoryID"))
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	res, err := h.repo.GetByCategory(r.Context(), categoryID)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	api.JSON(w, r, http.StatusOK, CategoryQuestionsResponse{
		Success:         true,
		Questions:       api.FormatQuestions(res),
		TotalQuestions:  len(res),
		CurrentCategory: categoryID,
	})
}

func (in CreateRequest) toModel() (*models.Question, error) {
	if in.Question == nil || in.Answer == nil || in.Category == nil || in.Difficulty == nil {
		return nil, fmt.Errorf("%w: question, answer, category and difficulty are required", api.ErrUnprocessable)
	}

	category, err := in.Category.ID()
	if err != nil {
		return nil, err
	}

	return &models.Question{
		Question:   *in.Question,
		Answer:     *in.Answer,
		Category:   category,
		Difficulty: int(*in.Difficulty),
	}, nil
}

func notFound(err error) error {
	if errors.Is(err, models.ErrQuestionNotFound) {
		return fmt.Errorf("%w: %v", api.ErrNotFound, err)
	}
	return err
}
