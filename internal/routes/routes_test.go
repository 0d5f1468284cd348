package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/database"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/storage"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin@123456"
	quoteText     = "জীবন সুন্দর, তাকে ভালোবাসো।"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.BcryptCost = bcrypt.MinCost

	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	if _, err := database.SeedAdmin(db, config.AdminConfig{Email: adminEmail, Password: adminPassword, Name: "Admin"}); err != nil {
		t.Fatalf("SeedAdmin: %v", err)
	}

	store, err := storage.NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	limiter := middleware.NewMemoryStore(0)
	t.Cleanup(limiter.Close)
	activity := services.NewActivityLogService(db, 64)
	t.Cleanup(activity.Close)

	cfg := &config.Config{
		Env:    config.EnvTest,
		Server: config.ServerConfig{BodyLimit: 10 << 20},
		JWT: config.JWTConfig{
			Secret:        strings.Repeat("a", 32),
			RefreshSecret: strings.Repeat("b", 32),
			AccessTTL:     time.Hour,
			RefreshTTL:    24 * time.Hour,
		},
		CORS:      config.CORSConfig{Origins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{WindowMS: 900000, MaxRequests: 1000},
		Upload:    config.UploadConfig{MaxFileSize: 1 << 20, AllowedExtensions: []string{"png", "jpg"}},
	}

	return &testServer{
		t:      t,
		db:     db,
		router: Setup(db, cfg, Deps{Storage: store, Limiter: limiter, Activity: activity}),
	}
}

func (s *testServer) do(method, path string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		s.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

func (s *testServer) login() {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": adminEmail, "password": adminPassword})
	if status != http.StatusOK {
		s.t.Fatalf("login status = %d (%s); want 200", status, env.Error.Message)
	}
	var auth models.AuthResponse
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		s.t.Fatal(err)
	}
	if auth.AccessToken == "" || auth.RefreshToken == "" {
		s.t.Fatalf("login returned empty tokens: %+v", auth)
	}
	s.token = auth.AccessToken
}

func (s *testServer) createCategory(body gin.H) models.Category {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/v1/categories", body)
	if status != http.StatusCreated {
		s.t.Fatalf("create category status = %d (%s); want 201", status, env.Error.Message)
	}
	var category models.Category
	if err := json.Unmarshal(env.Data, &category); err != nil {
		s.t.Fatal(err)
	}
	return category
}

func (s *testServer) quoteCount() int64 {
	s.t.Helper()
	var n int64
	if err := s.db.Model(&models.Quote{}).Count(&n).Error; err != nil {
		s.t.Fatal(err)
	}
	return n
}

func TestHealthAndFallback(t *testing.T) {
	s := newTestServer(t)

	if status, env := s.do(http.MethodGet, "/health", nil); status != http.StatusOK || !env.Success {
		t.Fatalf("health = %d %+v; want 200 success", status, env)
	}
	status, env := s.do(http.MethodGet, "/api/v1/nothing-here", nil)
	if status != http.StatusNotFound || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("unknown route = %d %q; want 404 NOT_FOUND", status, env.Error.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/v1/categories", gin.H{"nameBn": "জীবন", "nameEn": "Life"})
	if status != http.StatusUnauthorized || env.Error.Code != "UNAUTHORIZED" {
		t.Fatalf("got %d %q; want 401 UNAUTHORIZED", status, env.Error.Code)
	}

	s.token = "not-a-jwt"
	status, env = s.do(http.MethodGet, "/api/v1/auth/me", nil)
	if status != http.StatusUnauthorized || env.Error.Code != "INVALID_TOKEN" {
		t.Fatalf("got %d %q; want 401 INVALID_TOKEN", status, env.Error.Code)
	}
}

func TestCreateCategoryGeneratesSlug(t *testing.T) {
	s := newTestServer(t)
	s.login()

	category := s.createCategory(gin.H{"nameBn": "জীবন", "nameEn": "Life"})
	if category.Slug != "jibn" || !category.IsActive || category.Order != 0 {
		t.Fatalf("got slug=%q active=%v order=%d; want jibn true 0", category.Slug, category.IsActive, category.Order)
	}

	s.token = ""
	status, env := s.do(http.MethodGet, "/api/v1/categories/jibn", nil)
	if status != http.StatusOK {
		t.Fatalf("get by slug status = %d; want 200", status)
	}
	var fetched models.Category
	if err := json.Unmarshal(env.Data, &fetched); err != nil {
		t.Fatal(err)
	}
	if fetched.ID != category.ID {
		t.Fatalf("fetched id = %q; want %q", fetched.ID, category.ID)
	}
}

func TestBulkCreateQuotes(t *testing.T) {
	s := newTestServer(t)
	s.login()

	life := s.createCategory(gin.H{"nameBn": "জীবন", "nameEn": "Life"})
	love := s.createCategory(gin.H{"nameBn": "ভালোবাসা", "nameEn": "Love", "slug": "love"})
	hidden := s.createCategory(gin.H{"nameBn": "দুঃখ", "nameEn": "Sorrow", "slug": "sorrow", "isActive": false})

	status, env := s.do(http.MethodPost, "/api/v1/quotes/bulk", gin.H{"quotes": []gin.H{
		{"textBn": quoteText, "categoryId": life.ID},
		{"textBn": quoteText, "categoryId": love.ID, "status": "PUBLISHED"},
		{"textBn": quoteText, "categoryId": life.ID, "author": "রবীন্দ্রনাথ"},
	}})
	if status != http.StatusCreated {
		t.Fatalf("bulk create status = %d (%s); want 201", status, env.Error.Message)
	}
	var result models.QuoteBulkCreateResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.Count != 3 || len(result.Quotes) != 3 {
		t.Fatalf("count = %d quotes = %d; want 3 3", result.Count, len(result.Quotes))
	}

	status, env = s.do(http.MethodPost, "/api/v1/quotes/bulk", gin.H{"quotes": []gin.H{
		{"textBn": quoteText, "categoryId": life.ID},
		{"textBn": quoteText, "categoryId": hidden.ID},
	}})
	if status != http.StatusBadRequest {
		t.Fatalf("bulk create with inactive category = %d; want 400", status)
	}
	if n := s.quoteCount(); n != 3 {
		t.Fatalf("quotes persisted = %d; want 3", n)
	}
}

func TestQuoteValidationAndCounters(t *testing.T) {
	s := newTestServer(t)
	s.login()
	category := s.createCategory(gin.H{"nameBn": "জীবন", "nameEn": "Life"})

	status, env := s.do(http.MethodPost, "/api/v1/quotes", gin.H{"textBn": "ছোট", "categoryId": category.ID})
	if status != http.StatusUnprocessableEntity || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("short text = %d %q; want 422 VALIDATION_ERROR", status, env.Error.Code)
	}

	status, env = s.do(http.MethodPost, "/api/v1/quotes", gin.H{"textBn": quoteText, "categoryId": category.ID, "status": "PUBLISHED"})
	if status != http.StatusCreated {
		t.Fatalf("create quote status = %d (%s); want 201", status, env.Error.Message)
	}
	var quote models.Quote
	if err := json.Unmarshal(env.Data, &quote); err != nil {
		t.Fatal(err)
	}
	if quote.PublishedAt == nil {
		t.Fatal("published quote has no publishedAt")
	}

	s.token = ""
	status, env = s.do(http.MethodPost, "/api/v1/quotes/"+quote.ID+"/view", nil)
	if status != http.StatusOK {
		t.Fatalf("view status = %d; want 200", status)
	}
	var counter models.CounterResult
	if err := json.Unmarshal(env.Data, &counter); err != nil {
		t.Fatal(err)
	}
	if counter.Views != 1 {
		t.Fatalf("views = %d; want 1", counter.Views)
	}

	status, _ = s.do(http.MethodPost, "/api/v1/quotes/not-a-uuid/view", nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("bad id status = %d; want 422", status)
	}
}

func TestBulkDeleteCategoriesReportsBlocked(t *testing.T) {
	s := newTestServer(t)
	s.login()

	used := s.createCategory(gin.H{"nameBn": "জীবন", "nameEn": "Life"})
	empty := s.createCategory(gin.H{"nameBn": "ভালোবাসা", "nameEn": "Love", "slug": "love"})
	if status, env := s.do(http.MethodPost, "/api/v1/quotes", gin.H{"textBn": quoteText, "categoryId": used.ID}); status != http.StatusCreated {
		t.Fatalf("create quote status = %d (%s); want 201", status, env.Error.Message)
	}

	status, env := s.do(http.MethodPost, "/api/v1/categories/bulk/delete", gin.H{"ids": []string{used.ID}})
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("all blocked = %d success=%v; want 400 false", status, env.Success)
	}
	if env.Message != "Deleted 0 categories. 1 failed." {
		t.Fatalf("message = %q; want %q", env.Message, "Deleted 0 categories. 1 failed.")
	}
	var result models.BulkResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.Count != 0 || len(result.Errors) != 1 {
		t.Fatalf("result = %+v; want count 0 with 1 error", result)
	}

	status, env = s.do(http.MethodPost, "/api/v1/categories/bulk/delete", gin.H{"ids": []string{used.ID, empty.ID}})
	if status != http.StatusOK || !env.Success {
		t.Fatalf("partly blocked = %d success=%v; want 200 true", status, env.Success)
	}
	if env.Message != "Deleted 1 categories. 1 failed." {
		t.Fatalf("message = %q; want %q", env.Message, "Deleted 1 categories. 1 failed.")
	}
}

func TestFeatureToggleRoutes(t *testing.T) {
	s := newTestServer(t)
	s.login()

	status, env := s.do(http.MethodPost, "/api/v1/settings/feature-toggles/init", nil)
	if status != http.StatusOK {
		t.Fatalf("init status = %d (%s); want 200", status, env.Error.Message)
	}
	var toggles []models.FeatureToggle
	if err := json.Unmarshal(env.Data, &toggles); err != nil {
		t.Fatal(err)
	}
	if len(toggles) == 0 {
		t.Fatal("init returned no toggles")
	}

	key := toggles[0].Key
	status, env = s.do(http.MethodPatch, "/api/v1/settings/feature-toggles/"+key, gin.H{"isEnabled": !toggles[0].IsEnabled})
	if status != http.StatusOK {
		t.Fatalf("patch status = %d (%s); want 200", status, env.Error.Message)
	}
	var updated models.FeatureToggle
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Key != key || updated.IsEnabled == toggles[0].IsEnabled {
		t.Fatalf("updated = %+v; want %s flipped", updated, key)
	}

	if status, env = s.do(http.MethodGet, "/api/v1/settings/feature-toggles", nil); status != http.StatusOK {
		t.Fatalf("list status = %d (%s); want 200", status, env.Error.Message)
	}
	if status, _ = s.do(http.MethodGet, "/api/v1/settings/toggles", nil); status != http.StatusNotFound {
		t.Fatalf("old path status = %d; want 404", status)
	}
}
