package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type QuestionsRepository struct {
	db *gorm.DB
}

// ErrQuestionNotFound is returned when no question has the requested id.
var ErrQuestionNotFound = errors.New("question not found")

// QuizFilter narrows the pool a quiz question is drawn from.
// A nil CategoryID means every category.
type QuizFilter struct {
	CategoryID *uint
	ExcludeIDs []uint
}

func NewQuestionsRepository(db *gorm.DB) *QuestionsRepository {
	return &QuestionsRepository{
		db: db,
	}
}

// GetPage returns questions ordered by id starting at offset, plus the total
// number of questions in the store.
func (r *QuestionsRepository) GetPage(ctx context.Context, offset, limit int) ([]Question, int64, error) {
	var questions []Question
	var total int64

	if err := r.db.WithContext(ctx).Model(&Question{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&questions).Error; err != nil {
		return nil, 0, err
	}

	return questions, total, nil
}

func (r *QuestionsRepository) GetByID(ctx context.Context, id uint) (*Question, error) {
	var question Question
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &question, nil
}

func (r *QuestionsRepository) CreateQuestion(ctx context.Context, question *Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// DeleteQuestion removes the row permanently.
func (r *QuestionsRepository) DeleteQuestion(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Question{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// Search matches term as a case-insensitive substring of the question text.
// Both sides are folded by the database's LOWER, so non-ASCII letters need a
// Unicode-aware LOWER (see database/unicodesqlite for SQLite).
// LIKE wildcards inside term are not escaped.
func (r *QuestionsRepository) Search(ctx context.Context, term string) ([]Question, error) {
	var questions []Question
	if err := r.db.WithContext(ctx).
		Where("LOWER(question) LIKE LOWER(?)", "%"+term+"%").
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionsRepository) GetByCategory(ctx context.Context, categoryID uint) ([]Question, error) {
	var questions []Question
	if err := r.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// maxBoundExcludes caps how many excluded ids are sent as NOT IN
// parameters. Longer lists are applied after the query, which keeps the
// statement under the drivers' bound-parameter limits.
const maxBoundExcludes = 500

// GetQuizCandidates returns every question matching the filter.
func (r *QuestionsRepository) GetQuizCandidates(ctx context.Context, filter QuizFilter) ([]Question, error) {
	var questions []Question

	query := r.db.WithContext(ctx).Model(&Question{})

	if filter.CategoryID != nil {
		query = query.Where("category = ?", *filter.CategoryID)
	}

	exclude := uniqueIDs(filter.ExcludeIDs)
	// gorm renders an empty slice as NOT IN (NULL), which matches nothing.
	if len(exclude) > 0 && len(exclude) <= maxBoundExcludes {
		query = query.Where("id NOT IN ?", exclude)
	}

	if err := query.Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}

	if len(exclude) > maxBoundExcludes {
		questions = withoutIDs(questions, exclude)
	}
	return questions, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func withoutIDs(questions []Question, ids []uint) []Question {
	skip := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		skip[id] = struct{}{}
	}
	kept := questions[:0]
	for _, q := range questions {
		if _, ok := skip[q.ID]; !ok {
			kept = append(kept, q)
		}
	}
	return kept
}
