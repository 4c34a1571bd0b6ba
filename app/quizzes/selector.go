package quizzes

import (
	"math/rand"
	"sync"
	"time"

	"github.com/triviaquiz/trivia-api/models"
)

// AllCategories is the quiz_category type the client sends to play across
// every category.
const AllCategories = "click"

// Picker returns a uniformly distributed integer in [0, n).
// *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// lockedRand makes a *rand.Rand safe to share between requests.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// NewPicker returns a Picker seeded from the clock.
func NewPicker() Picker {
	return &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Pick returns one question from pool, or nil when the pool is empty.
func Pick(pool []models.Question, picker Picker) *models.Question {
	if len(pool) == 0 {
		return nil
	}
	question := pool[picker.Intn(len(pool))]
	return &question
}
