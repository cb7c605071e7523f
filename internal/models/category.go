package models

// Category represents a content section of the site
type Category struct {
	ID           string `json:"id" db:"id"`
	Slug         string `json:"slug" db:"slug"`
	Name         string `json:"name" db:"name"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}

// CategoryListing is a category together with its latest published articles
type CategoryListing struct {
	Category *Category  `json:"category"`
	Articles []*Article `json:"articles"`
}
