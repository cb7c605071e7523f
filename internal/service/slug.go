package service

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/newsdesk-api/internal/repository"
)

// uniqueSlug derives a URL slug from a title and probes the store for
// collisions, appending an incrementing numeric suffix until the slug
// is unique.
func uniqueSlug(ctx context.Context, articles repository.ArticleRepository, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "article"
	}

	candidate := base
	for n := 2; ; n++ {
		exists, err := articles.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probing slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
