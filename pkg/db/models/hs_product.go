package models

import "time"

// HsProduct maps a Harmonized System code to its product description.
type HsProduct struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Code        string    `gorm:"column:code;not null;uniqueIndex"`
	Description string    `gorm:"column:description;not null"`
	Category    string    `gorm:"column:category;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
