package quizzes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/triviaquiz/trivia-api/app/api"
	"github.com/triviaquiz/trivia-api/models"
)

type QuizCategory struct {
	Type *string      `json:"type"`
	ID   *api.FlexInt `json:"id"`
}

type PlayRequest struct {
	PreviousQuestions *[]api.FlexInt `json:"previous_questions"`
	QuizCategory      *QuizCategory  `json:"quiz_category"`
}

// PlayResponse carries a null question once the pool is exhausted.
type PlayResponse struct {
	Success  bool          `json:"success"`
	Question *api.Question `json:"question"`
}

type CandidateProvider interface {
	GetQuizCandidates(ctx context.Context, filter models.QuizFilter) ([]models.Question, error)
}

type QuizHandler struct {
	repo   CandidateProvider
	picker Picker
}

// NewQuizHandler uses a clock-seeded picker when p is nil.
func NewQuizHandler(r CandidateProvider, p Picker) *QuizHandler {
	if p == nil {
		p = NewPicker()
	}
	return &QuizHandler{
		repo:   r,
		picker: p,
	}
}

func (h *QuizHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var input PlayRequest
	if err := api.DecodeJSON(r, &input); err != nil {
		api.Fail(w, r, err)
		return
	}

	filter, err := input.toFilter()
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	pool, err := h.repo.GetQuizCandidates(r.Context(), filter)
	if err != nil {
		api.Fail(w, r, err)
		return
	}

	response := PlayResponse{Success: true}
	if question := Pick(pool, h.picker); question != nil {
		formatted := api.FormatQuestion(*question)
		response.Question = &formatted
	}
	api.JSON(w, r, http.StatusOK, response)
}

func (in PlayRequest) toFilter() (models.QuizFilter, error) {
	if in.PreviousQuestions == nil || in.QuizCategory == nil || in.QuizCategory.Type == nil {
		return models.QuizFilter{}, fmt.Errorf("%w: previous_questions and quiz_category.type are required", api.ErrUnprocessable)
	}

	exclude := make([]uint, 0, len(*in.PreviousQuestions))
	for _, prev := range *in.PreviousQuestions {
		id, err := prev.ID()
		if err != nil {
			return models.QuizFilter{}, err
		}
		exclude = append(exclude, id)
	}

	filter := models.QuizFilter{ExcludeIDs: exclude}
	if *in.QuizCategory.Type == AllCategories {
		return filter, nil
	}

	if in.QuizCategory.ID == nil {
		return models.QuizFilter{}, fmt.Errorf("%w: quiz_category.id is required", api.ErrUnprocessable)
	}
	categoryID, err := in.QuizCategory.ID.ID()
	if err != nil {
		return models.QuizFilter{}, err
	}
	filter.CategoryID = &categoryID
	return filter, nil
}
