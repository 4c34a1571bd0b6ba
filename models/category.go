package models

// Category groups questions under a label such as "Science".
// Rows come from seed data and are never modified at runtime.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Type string `gorm:"not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
