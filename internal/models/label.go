package models

import "time"

// Label represents a tag that can be applied to tasks
type Label struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // Hex color code (e.g., "#7D56F4" or "#f0c")
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetID returns the label ID (used by quiet CLI output)
func (l *Label) GetID() string {
	return l.ID
}
