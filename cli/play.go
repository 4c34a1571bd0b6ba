// Package cli plays a trivia quiz in the terminal against a running service.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/triviaquiz/trivia-api/app/api"
	"github.com/triviaquiz/trivia-api/client"
)

const (
	maxAttempts = 3
	// DefaultRounds is how many questions a quiz asks at most.
	DefaultRounds = 5
)

// QuizClient is the part of client.Client a quiz needs.
type QuizClient interface {
	ListCategories(ctx context.Context) (map[uint]string, error)
	NextQuizQuestion(ctx context.Context, category client.QuizCategory, previous []uint) (*api.Question, error)
}

// Run lists the categories, lets the player choose one, then asks up to
// rounds questions from it and prints the score.
func Run(ctx context.Context, c QuizClient, in io.Reader, out io.Writer, rounds int) error {
	if rounds <= 0 {
		rounds = DefaultRounds
	}

	labels, err := c.ListCategories(ctx)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	category, ok := chooseCategory(reader, out, labels)
	if !ok {
		fmt.Fprintln(out, "No category chosen. Bye!")
		return nil
	}

	previous := []uint{}
	score := 0
	for len(previous) < rounds {
		question, err := c.NextQuizQuestion(ctx, category, previous)
		if err != nil {
			return err
		}
		if question == nil {
			fmt.Fprintln(out, "\nNo more questions in this category.")
			break
		}
		previous = append(previous, question.ID)

		fmt.Fprintf(out, "\nQ%d: %s\n> ", len(previous), question.Question)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			fmt.Fprintf(out, "\nThe answer was %s\n", question.Answer)
			break
		}

		if isCorrect(answer, question.Answer) {
			fmt.Fprintln(out, "Correct!")
			score++
		} else {
			fmt.Fprintf(out, "Wrong. The answer was %s\n", question.Answer)
		}
	}

	fmt.Fprintf(out, "\nFinal score: %d/%d\n", score, len(previous))
	return nil
}

func chooseCategory(reader *bufio.Reader, out io.Writer, labels map[uint]string) (client.QuizCategory, bool) {
	ids := make([]uint, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Fprintln(out, "Choose a category:")
	fmt.Fprintln(out, "0. All categories")
	for _, id := range ids {
		fmt.Fprintf(out, "%d. %s\n", id, labels[id])
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return client.QuizCategory{}, false
		}

		choice, convErr := strconv.ParseUint(strings.TrimSpace(line), 10, 0)
		if convErr == nil {
			if choice == 0 {
				return client.QuizCategory{Type: client.AllCategories}, true
			}
			if label, ok := labels[uint(choice)]; ok {
				return client.QuizCategory{Type: label, ID: uint(choice)}, true
			}
		}

		if attempt < maxAttempts {
			fmt.Fprintln(out, "Invalid choice. Enter one of the numbers above.")
		}
	}

	return client.QuizCategory{}, false
}

func isCorrect(given, expected string) bool {
	given = strings.TrimSpace(given)
	return given != "" && strings.EqualFold(given, strings.TrimSpace(expected))
}
