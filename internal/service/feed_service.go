package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"github.com/newsdesk-api/internal/config"
	"github.com/newsdesk-api/internal/repository"
	"github.com/rs/zerolog"
)

// feedArticleLimit caps the number of articles in the RSS feed
const feedArticleLimit = 50

// feedService renders the RSS feed and sitemap from published articles
type feedService struct {
	repos *repository.Repositories
	site  *config.SiteConfig
	log   zerolog.Logger
}

func newFeedService(repos *repository.Repositories, site *config.SiteConfig, log zerolog.Logger) *feedService {
	return &feedService{
		repos: repos,
		site:  site,
		log:   log.With().Str("service", "feed").Logger(),
	}
}

// RSS renders an RSS 2.0 feed of the latest published articles
func (s *feedService) RSS(ctx context.Context) (string, error) {
	articles, err := s.repos.Article.ListPublished(ctx, feedArticleLimit)
	if err != nil {
		return "", fmt.Errorf("listing articles for feed: %w", err)
	}

	feed := &feeds.Feed{
		Title:       s.site.Name,
		Link:        &feeds.Link{Href: s.site.BaseURL},
		Description: fmt.Sprintf("Latest articles from %s", s.site.Name),
		Created:     time.Now(),
	}

	for _, article := range articles {
		item := &feeds.Item{
			Id:          article.ID,
			Title:       article.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/articles/%s", s.site.BaseURL, article.Slug)},
			Description: article.Summary,
		}
		if article.PublishedAt != nil {
			item.Created = *article.PublishedAt
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("rendering rss: %w", err)
	}
	return rss, nil
}

// sitemap XML types per the sitemaps.org urlset schema

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders the sitemap covering the site root, categories and
// all published articles.
func (s *feedService) Sitemap(ctx context.Context) ([]byte, error) {
	urlset := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: s.site.BaseURL}},
	}

	categories, err := s.repos.Category.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories for sitemap: %w", err)
	}
	for _, category := range categories {
		urlset.URLs = append(urlset.URLs, sitemapURL{
			Loc: fmt.Sprintf("%s/categories/%s", s.site.BaseURL, category.Slug),
		})
	}

	articles, err := s.repos.Article.ListPublished(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing articles for sitemap: %w", err)
	}
	for _, article := range articles {
		entry := sitemapURL{
			Loc: fmt.Sprintf("%s/articles/%s", s.site.BaseURL, article.Slug),
		}
		if article.PublishedAt != nil {
			entry.LastMod = article.PublishedAt.Format("2006-01-02")
		}
		urlset.URLs = append(urlset.URLs, entry)
	}

	out, err := xml.MarshalIndent(urlset, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rendering sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
