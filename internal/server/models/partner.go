package models

import "time"

// Partner is a logo shown in the site footer, sorted by SortOrder.
type Partner struct {
	ID        string
	Name      string
	LogoURL   string
	SortOrder int
	CreatedAt time.Time
}
