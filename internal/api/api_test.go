package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/newsdesk-api/internal/api"
	"github.com/newsdesk-api/internal/config"
	"github.com/newsdesk-api/internal/mocks"
	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/repository"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

type testEnv struct {
	router   *gin.Engine
	users    *mocks.MockUserRepository
	articles *mocks.MockArticleRepository
	comments *mocks.MockCommentRepository
	ads      *mocks.MockAdRepository
}

func setupTestRouter() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:    mocks.NewMockUserRepository(),
		articles: mocks.NewMockArticleRepository(),
		comments: mocks.NewMockCommentRepository(),
		ads:      mocks.NewMockAdRepository(),
	}

	repos := &repository.Repositories{
		User:       env.users,
		Article:    env.articles,
		Comment:    env.comments,
		Category:   mocks.NewMockCategoryRepository(),
		Ad:         env.ads,
		Subscriber: mocks.NewMockSubscriberRepository(),
	}

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "8080"},
		RateLimit: config.RateLimitConfig{Window: 5 * time.Minute, MaxSubmission: 3},
		Widgets:   config.WidgetConfig{Timeout: time.Second},
		Site:      config.SiteConfig{Name: "Newsdesk", BaseURL: "https://news.example.com"},
	}

	log := zerolog.Nop()
	services := service.NewServices(repos, cfg, log)
	env.router = api.NewRouter(services, repos, cfg, log)

	// A reporter and an admin with active sessions
	env.users.Users["reporter-1"] = &models.User{ID: "reporter-1", Name: "Rita", Role: "reporter", Active: true}
	env.users.Users["admin-1"] = &models.User{ID: "admin-1", Name: "Ada", Role: "admin", Active: true}
	env.users.Sessions["reporter-token"] = "reporter-1"
	env.users.Sessions["admin-token"] = "admin-1"

	return env
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Session-Token", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "newsdesk-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestSubmitCommentLifecycle(t *testing.T) {
	env := setupTestRouter()

	// Submit a comment
	w := doJSON(env.router, "POST", "/comments", "", map[string]string{
		"article_slug": "hello-world",
		"name":         "Ann",
		"content":      "Great read",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["ok"] != true {
		t.Error("Expected ok:true")
	}
	commentID, _ := response["id"].(string)
	if commentID == "" {
		t.Fatal("Expected a comment ID")
	}
	if response["created_at"] == nil {
		t.Error("Expected created_at in response")
	}
	if w.Header().Get("X-RateLimit-Limit") != "3" {
		t.Errorf("Expected X-RateLimit-Limit 3, got %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "2" {
		t.Errorf("Expected X-RateLimit-Remaining 2, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}

	// Pending comments are not publicly visible
	w = doJSON(env.router, "GET", "/comments/hello-world", "", nil)
	var listing struct {
		Comments []models.Comment `json:"comments"`
	}
	json.Unmarshal(w.Body.Bytes(), &listing)
	if len(listing.Comments) != 0 {
		t.Errorf("Pending comment must not be listed, got %d", len(listing.Comments))
	}

	// Admin approves it
	w = doJSON(env.router, "POST", "/comments/moderation", "admin-token", map[string]string{
		"id":     commentID,
		"action": "approve",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Moderation failed with %d: %s", w.Code, w.Body.String())
	}

	// Now it shows up
	w = doJSON(env.router, "GET", "/comments/hello-world", "", nil)
	json.Unmarshal(w.Body.Bytes(), &listing)
	if len(listing.Comments) != 1 {
		t.Errorf("Approved comment must be listed, got %d", len(listing.Comments))
	}
}

func TestSubmitCommentHoneypot(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "POST", "/comments", "", map[string]string{
		"article_slug": "hello-world",
		"name":         "Bot",
		"content":      "Buy stuff",
		"website":      "http://spam.example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Honeypot must answer 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["ok"] != true {
		t.Error("Honeypot response must look like success")
	}
	if _, hasID := response["id"]; hasID {
		t.Error("Honeypot response must not contain an ID")
	}
	if len(env.comments.Comments) != 0 {
		t.Errorf("Honeypot must not persist, found %d rows", len(env.comments.Comments))
	}
}

func TestSubmitCommentRateLimited(t *testing.T) {
	env := setupTestRouter()

	body := map[string]string{
		"article_slug": "hello-world",
		"name":         "Ann",
		"content":      "Another thought",
	}

	// httptest requests all share the same client IP
	for i := 0; i < 3; i++ {
		w := doJSON(env.router, "POST", "/comments", "", body)
		if w.Code != http.StatusOK {
			t.Fatalf("Submission %d failed with %d", i+1, w.Code)
		}
	}

	w := doJSON(env.router, "POST", "/comments", "", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("Expected X-RateLimit-Remaining 0, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}
	if w.Header().Get("Retry-After") != "300" {
		t.Errorf("Expected Retry-After 300, got %q", w.Header().Get("Retry-After"))
	}
	if len(env.comments.Comments) != 3 {
		t.Errorf("Expected 3 persisted comments, got %d", len(env.comments.Comments))
	}
}

func TestAdvanceRequiresSession(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "POST", "/articles/advance", "", map[string]string{"id": "a1"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without session, got %d", w.Code)
	}
}

func TestAdvanceArticle(t *testing.T) {
	env := setupTestRouter()
	env.articles.Articles["a1"] = &models.Article{
		ID:       "a1",
		Title:    "Budget Vote Tonight",
		AuthorID: "reporter-1",
		Status:   models.ArticleStatusDraft,
	}

	w := doJSON(env.router, "POST", "/articles/advance", "reporter-token", map[string]string{"id": "a1"})
	if w.Code != http.StatusOK {
		t.Fatalf("Advance failed with %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["next"] != "submitted" {
		t.Errorf("Expected next=submitted, got %v", response["next"])
	}

	// Not the owner: reads as missing
	w = doJSON(env.router, "POST", "/articles/advance", "admin-token", map[string]string{"id": "a1"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for non-owner, got %d", w.Code)
	}
}

func TestAdvanceSlugConflictMapsTo409(t *testing.T) {
	env := setupTestRouter()
	env.articles.Articles["a1"] = &models.Article{
		ID:       "a1",
		Title:    "Budget Vote Tonight",
		AuthorID: "reporter-1",
		Status:   models.ArticleStatusSubmitted,
	}
	env.articles.UpdateError = &pq.Error{Code: "23505"}

	w := doJSON(env.router, "POST", "/articles/advance", "reporter-token", map[string]string{"id": "a1"})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 on slug unique violation, got %d: %s", w.Code, w.Body.String())
	}
}

func TestModerateArticleRoleCheck(t *testing.T) {
	env := setupTestRouter()
	env.articles.Articles["a1"] = &models.Article{
		ID:       "a1",
		Title:    "Pending Story",
		AuthorID: "reporter-1",
		Status:   models.ArticleStatusSubmitted,
	}

	w := doJSON(env.router, "POST", "/articles/moderation", "reporter-token", map[string]string{
		"id": "a1", "action": "approve",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for reporter, got %d", w.Code)
	}

	w = doJSON(env.router, "POST", "/articles/moderation", "admin-token", map[string]string{
		"id": "a1", "action": "approve",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Admin moderation failed with %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["status"] != "published" {
		t.Errorf("Expected status=published, got %v", response["status"])
	}
}

func TestAdClickAlwaysSucceeds(t *testing.T) {
	env := setupTestRouter()
	env.ads.IncrementError = errors.New("database down")

	w := doJSON(env.router, "POST", "/advertisements/unknown-ad/click", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Click must always answer 200, got %d", w.Code)
	}
}

func TestListActiveAdsFiltersWindow(t *testing.T) {
	env := setupTestRouter()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	expired := time.Now().Add(-time.Minute)

	env.ads.Ads["live"] = &models.Advertisement{ID: "live", Active: true, StartsAt: &past, EndsAt: &future}
	env.ads.Ads["expired"] = &models.Advertisement{ID: "expired", Active: true, StartsAt: &past, EndsAt: &expired}
	env.ads.Ads["inactive"] = &models.Advertisement{ID: "inactive", Active: false}

	w := doJSON(env.router, "GET", "/advertisements", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response struct {
		Advertisements []models.Advertisement `json:"advertisements"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Advertisements) != 1 || response.Advertisements[0].ID != "live" {
		t.Errorf("Expected only the live ad, got %d", len(response.Advertisements))
	}
}

func TestNewsletterSubscribe(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "POST", "/newsletter", "", map[string]string{"email": "ann@example.com"})
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(env.router, "POST", "/newsletter", "", map[string]string{"email": "nope"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad email, got %d", w.Code)
	}
}

func TestStocksWidgetRequiresSymbols(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/widgets/stocks", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without symbols, got %d", w.Code)
	}

	w = doJSON(env.router, "GET", "/widgets/stocks?symbols=,%20,", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for all-blank symbols, got %d", w.Code)
	}

	w = doJSON(env.router, "GET", "/widgets/stocks?symbols=acme,", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 with a symbol, got %d", w.Code)
	}
	var response struct {
		Quotes []models.StockQuote `json:"quotes"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Quotes) != 1 || response.Quotes[0].Symbol != "ACME" {
		t.Errorf("Expected a single ACME quote, got %+v", response.Quotes)
	}
}

func TestWeatherWidgetMockMode(t *testing.T) {
	env := setupTestRouter()

	w := doJSON(env.router, "GET", "/widgets/weather?city=Springfield", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var report models.WeatherReport
	json.Unmarshal(w.Body.Bytes(), &report)
	if report.Source != "mock" {
		t.Errorf("Expected mock weather without API key, got %q", report.Source)
	}
}
