package models

import "time"

// Country is a reference row for origin/destination selection.
type Country struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Iso3      string    `gorm:"column:iso3;size:3;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	Region    string    `gorm:"column:region"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
