package models

import "time"

// Resume points at a PDF stored in object storage. Downloads always serve
// the most recently uploaded row.
type Resume struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FileKey     string    `json:"-" gorm:"size:255"`
	FileName    string    `json:"file_name" gorm:"size:255"`
	ContentType string    `json:"content_type" gorm:"size:100"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
