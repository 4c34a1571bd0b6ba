// Package client is a typed Go consumer of the trivia HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/triviaquiz/trivia-api/app/api"
	"github.com/triviaquiz/trivia-api/app/categories"
	"github.com/triviaquiz/trivia-api/app/questions"
	"github.com/triviaquiz/trivia-api/app/quizzes"
)

// AllCategories is the quiz category type that draws from every category.
const AllCategories = quizzes.AllCategories

const defaultBaseURL = "http://127.0.0.1:8080"

var ErrServiceUnavailable = errors.New("trivia service unavailable")

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// NewQuestion is the payload of CreateQuestion.
type NewQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuizCategory selects the pool of a quiz. Use AllCategories as Type to draw
// from every category; ID is ignored then.
type QuizCategory struct {
	Type string `json:"type"`
	ID   uint   `json:"id"`
}

type playRequest struct {
	PreviousQuestions []uint       `json:"previous_questions"`
	QuizCategory      QuizCategory `json:"quiz_category"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the service at baseURL. A nil httpClient means
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListCategories returns category labels keyed by id.
func (c *Client) ListCategories(ctx context.Context) (map[uint]string, error) {
	var payload categories.Response
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Categories, nil
}

// ListQuestions fetches one page of the question listing. Pages start at 1.
func (c *Client) ListQuestions(ctx context.Context, page int) (*questions.ListResponse, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var payload questions.ListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/questions?"+query.Encode(), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) GetQuestion(ctx context.Context, id uint) (*api.Question, error) {
	var payload questions.QuestionResponse
	if err := c.doJSON(ctx, http.MethodGet, questionPath(id), nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Question, nil
}

// CreateQuestion stores q. The service does not report the new id.
func (c *Client) CreateQuestion(ctx context.Context, q NewQuestion) error {
	return c.doJSON(ctx, http.MethodPost, "/questions", q, nil)
}

// DeleteQuestion removes a question and returns the id the service deleted.
func (c *Client) DeleteQuestion(ctx context.Context, id uint) (uint, error) {
	var payload questions.DeleteResponse
	if err := c.doJSON(ctx, http.MethodDelete, questionPath(id), nil, &payload); err != nil {
		return 0, err
	}
	return payload.Deleted, nil
}

// SearchQuestions returns the questions whose text contains term, ignoring
// case. No match yields a nil slice. Terms containing "/" are not supported.
func (c *Client) SearchQuestions(ctx context.Context, term string) ([]api.Question, error) {
	if term == "" {
		return nil, errors.New("search term is required")
	}

	var payload questions.SearchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/questions/"+url.PathEscape(term), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Questions, nil
}

func (c *Client) QuestionsByCategory(ctx context.Context, categoryID uint) (*questions.CategoryQuestionsResponse, error) {
	path := "/categories/" + strconv.FormatUint(uint64(categoryID), 10) + "/questions"

	var payload questions.CategoryQuestionsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// NextQuizQuestion draws a question from category that is not in previous.
// It returns nil once every question of the pool has been asked.
func (c *Client) NextQuizQuestion(ctx context.Context, category QuizCategory, previous []uint) (*api.Question, error) {
	if previous == nil {
		previous = []uint{}
	}

	request := playRequest{
		PreviousQuestions: previous,
		QuizCategory:      category,
	}

	var payload quizzes.PlayResponse
	if err := c.doJSON(ctx, http.MethodPost, "/quizzes", request, &payload); err != nil {
		return nil, err
	}
	return payload.Question, nil
}

func questionPath(id uint) string {
	return "/questions/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode, Code: response.StatusCode}
		var payload api.ErrorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil {
			if payload.Error != 0 {
				apiErr.Code = payload.Error
			}
			apiErr.Message = payload.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(responseBody); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 answer from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
