package api

import "github.com/triviaquiz/trivia-api/models"

func FormatQuestion(q models.Question) Question {
	return Question{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// FormatQuestions never returns nil, so an empty result encodes as [].
func FormatQuestions(questions []models.Question) []Question {
	formatted := make([]Question, len(questions))
	for i, q := range questions {
		formatted[i] = FormatQuestion(q)
	}
	return formatted
}
