package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/triviaquiz/trivia-api/app/api"
	"github.com/triviaquiz/trivia-api/app/categories"
	"github.com/triviaquiz/trivia-api/app/questions"
	"github.com/triviaquiz/trivia-api/app/quizzes"
	"github.com/triviaquiz/trivia-api/models"
)

// QuestionStore is everything the question and quiz handlers need from storage.
type QuestionStore interface {
	questions.QuestionProvider
	quizzes.CandidateProvider
}

// Deps holds the collaborators built once at startup and shared by every
// handler.
type Deps struct {
	Categories categories.CategoryProvider
	Questions  QuestionStore
	Logger     zerolog.Logger
	// Picker is optional; a clock-seeded one is used when nil.
	Picker quizzes.Picker
}

// NewDeps wires the gorm repositories.
func NewDeps(categoriesRepo *models.CategoriesRepository, questionsRepo *models.QuestionsRepository, logger zerolog.Logger) Deps {
	return Deps{
		Categories: categoriesRepo,
		Questions:  questionsRepo,
		Logger:     logger,
	}
}

func NewRouter(deps Deps) http.Handler {
	categoryHandler := categories.NewCategoryHandler(deps.Categories)
	questionHandler := questions.NewQuestionHandler(deps.Questions, deps.Categories)
	quizHandler := quizzes.NewQuizHandler(deps.Questions, deps.Picker)

	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(deps.Logger))
	r.Use(Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PATCH", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Abort(w, r, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Abort(w, r, http.StatusMethodNotAllowed)
	})

	r.Get("/categories", categoryHandler.HandleGetAll)
	r.Get("/categories/{categoryID}/questions", questionHandler.HandleListByCategory)

	r.Get("/questions", questionHandler.HandleList)
	r.Post("/questions", questionHandler.HandleCreate)
	r.Get("/questions/{id}", questionHandler.HandleGet)
	r.Delete("/questions/{id:[0-9]+}", questionHandler.HandleDelete)
	r.Post("/questions/{searchTerm}", questionHandler.HandleSearch)

	r.Post("/quizzes", quizHandler.HandlePlay)

	return r
}
