package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triviaquiz/trivia-api/app/api"
	"github.com/triviaquiz/trivia-api/config"
	"github.com/triviaquiz/trivia-api/database"
	"github.com/triviaquiz/trivia-api/models"
)

// --- Helpers ---

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "router.db"),
	}
	db, err := database.Open(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db))
	_, err = database.Seed(context.Background(), db)
	require.NoError(t, err)

	deps := NewDeps(models.NewCategoriesRepository(db), models.NewQuestionsRepository(db), zerolog.Nop())
	return NewRouter(deps)
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

// --- Routing ---

func TestRouterErrorEnvelopes(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		expectedMsg    string
	}{
		{"post categories", http.MethodPost, "/categories", http.StatusMethodNotAllowed, "Method not allowed"},
		{"post category questions", http.MethodPost, "/categories/1/questions", http.StatusMethodNotAllowed, "Method not allowed"},
		{"delete non-numeric id", http.MethodDelete, "/questions/abc", http.StatusMethodNotAllowed, "Method not allowed"},
		{"put questions", http.MethodPut, "/questions", http.StatusMethodNotAllowed, "Method not allowed"},
		{"unknown route", http.MethodGet, "/answers", http.StatusNotFound, "Resource not found"},
		{"non-numeric category", http.MethodGet, "/categories/abc/questions", http.StatusNotFound, "Resource not found"},
		{"non-numeric question", http.MethodGet, "/questions/abc", http.StatusNotFound, "Resource not found"},
		{"missing question", http.MethodGet, "/questions/1000", http.StatusNotFound, "Resource not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			rr := serve(router, tc.method, tc.target, "")

			// Assert
			assert.Equal(t, tc.expectedStatus, rr.Code)
			body := decodeError(t, rr)
			assert.False(t, body.Success)
			assert.Equal(t, tc.expectedStatus, body.Error)
			assert.Equal(t, tc.expectedMsg, body.Message)
		})
	}
}

func TestRouterListAndCategories(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var categories struct {
		Success    bool              `json:"success"`
		Categories map[string]string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &categories))
	assert.True(t, categories.Success)
	assert.Len(t, categories.Categories, 6)
	assert.Equal(t, "Science", categories.Categories["1"])

	rr = serve(router, http.MethodGet, "/questions?page=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Questions       []api.Question `json:"questions"`
		TotalQuestions  int            `json:"total_questions"`
		CurrentCategory string         `json:"current_category"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Questions, len(database.DefaultQuestions)-10)
	assert.Equal(t, len(database.DefaultQuestions), list.TotalQuestions)
	assert.Equal(t, "Science", list.CurrentCategory)

	rr = serve(router, http.MethodGet, "/categories/3/questions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var byCategory struct {
		Questions       []api.Question `json:"questions"`
		TotalQuestions  int            `json:"total_questions"`
		CurrentCategory int            `json:"current_category"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &byCategory))
	assert.Equal(t, 3, byCategory.TotalQuestions)
	assert.Equal(t, 3, byCategory.CurrentCategory)
	for _, q := range byCategory.Questions {
		assert.Equal(t, uint(3), q.Category)
	}
}

func TestRouterCreateSearchDeleteFlow(t *testing.T) {
	router := newTestRouter(t)

	// Create
	rr := serve(router, http.MethodPost, "/questions",
		`{"question":"Which planet is known as the Red Planet?","answer":"Mars","category":"1","difficulty":1}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	// Search
	rr = serve(router, http.MethodPost, "/questions/red%20planet", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var search struct {
		Questions []api.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &search))
	require.Len(t, search.Questions, 1)
	created := search.Questions[0]
	assert.Equal(t, "Mars", created.Answer)

	// Delete
	rr = serve(router, http.MethodDelete, idPath(created.ID), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var deleted struct {
		Success bool `json:"success"`
		Deleted uint `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deleted))
	assert.True(t, deleted.Success)
	assert.Equal(t, created.ID, deleted.Deleted)

	// Lookup and second delete both miss
	rr = serve(router, http.MethodGet, idPath(created.ID), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = serve(router, http.MethodDelete, idPath(created.ID), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Search with no match
	rr = serve(router, http.MethodPost, "/questions/red%20planet", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"questions":null}`, rr.Body.String())
}

func TestRouterCreateValidation(t *testing.T) {
	router := newTestRouter(t)

	rr := serve(router, http.MethodPost, "/questions", `{"question":"No answer","category":1,"difficulty":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = serve(router, http.MethodPost, "/questions", `{"question":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, http.StatusBadRequest, decodeError(t, rr).Error)
}

func TestRouterQuizRound(t *testing.T) {
	router := newTestRouter(t)

	seen := []uint{}
	for range 3 {
		payload, err := json.Marshal(map[string]any{
			"previous_questions": seen,
			"quiz_category":      map[string]any{"type": "Geography", "id": "3"},
		})
		require.NoError(t, err)

		rr := serve(router, http.MethodPost, "/quizzes", string(payload))
		require.Equal(t, http.StatusOK, rr.Code)
		var play struct {
			Question *api.Question `json:"question"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &play))
		require.NotNil(t, play.Question)
		assert.Equal(t, uint(3), play.Question.Category)
		assert.NotContains(t, seen, play.Question.ID)
		seen = append(seen, play.Question.ID)
	}

	payload, err := json.Marshal(map[string]any{
		"previous_questions": seen,
		"quiz_category":      map[string]any{"type": "Geography", "id": 3},
	})
	require.NoError(t, err)
	rr := serve(router, http.MethodPost, "/quizzes", string(payload))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"question":null}`, rr.Body.String())
}

// --- Middleware ---

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRouterCORSHeadersOnResponses(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t)

	t.Run("echoes the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, "req-123", rr.Header().Get(RequestIDHeader))
	})

	t.Run("assigns one when missing", func(t *testing.T) {
		rr := serve(router, http.MethodGet, "/categories", "")
		assert.Len(t, rr.Header().Get(RequestIDHeader), 36)
	})

	t.Run("exposes the id to handlers", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")

		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "abc", seen)
	})
}

func TestRecoverer(t *testing.T) {
	// Arrange
	h := RequestLogger(zerolog.Nop())(Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))
	rr := httptest.NewRecorder()

	// Act
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, http.StatusInternalServerError, body.Error)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestRecovererRethrowsAbort(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func idPath(id uint) string {
	return "/questions/" + strconv.FormatUint(uint64(id), 10)
}
