package models

// Question is a single trivia question.
// Category holds a category id; the store does not enforce that it exists.
type Question struct {
	ID         uint   `gorm:"primaryKey"`
	Question   string `gorm:"type:text;not null"`
	Answer     string `gorm:"type:text;not null"`
	Category   uint   `gorm:"column:category;not null;index"`
	Difficulty int    `gorm:"not null"`
}

func (q *Question) TableName() string {
	return "questions"
}
