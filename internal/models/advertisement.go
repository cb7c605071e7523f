package models

import (
	"time"
)

// Advertisement represents a rotating ad placement. View and click
// counters only ever grow; counts are vanity metrics and approximate.
type Advertisement struct {
	ID           string     `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	MediaURL     string     `json:"media_url" db:"media_url"`
	TargetURL    string     `json:"target_url" db:"target_url"`
	Active       bool       `json:"active" db:"active"`
	StartsAt     *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt       *time.Time `json:"ends_at,omitempty" db:"ends_at"`
	DisplayOrder int        `json:"display_order" db:"display_order"`
	ViewCount    int        `json:"view_count" db:"view_count"`
	ClickCount   int        `json:"click_count" db:"click_count"`
}
