package services

import (
	"context"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestQuoteCreatePublishedAt(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)
	ctx := context.Background()
	c := env.createCategory(t, "life", true)

	explicit := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		status      models.QuoteStatus
		publishedAt *time.Time
		wantStatus  models.QuoteStatus
		want        *time.Time
	}{
		{"default draft", "", nil, models.QuoteStatusDraft, nil},
		{"published stamped", models.QuoteStatusPublished, nil, models.QuoteStatusPublished, &now},
		{"published explicit", models.QuoteStatusPublished, &explicit, models.QuoteStatusPublished, &explicit},
		{"review", models.QuoteStatusReview, nil, models.QuoteStatusReview, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := svc.Create(ctx, env.actor(), &models.QuoteCreateRequest{
				TextBn: sampleText, CategoryID: c.ID, Status: tt.status, PublishedAt: tt.publishedAt,
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if quote.Status != tt.wantStatus {
				t.Fatalf("status = %s; want %s", quote.Status, tt.wantStatus)
			}
			switch {
			case tt.want == nil && quote.PublishedAt != nil:
				t.Fatalf("publishedAt = %v; want nil", quote.PublishedAt)
			case tt.want != nil && (quote.PublishedAt == nil || !quote.PublishedAt.Equal(*tt.want)):
				t.Fatalf("publishedAt = %v; want %v", quote.PublishedAt, tt.want)
			}
			if quote.LastModifiedBy == nil || *quote.LastModifiedBy != env.admin.ID {
				t.Fatalf("lastModifiedBy = %v; want %s", quote.LastModifiedBy, env.admin.ID)
			}
			if quote.Category == nil || quote.Category.ID != c.ID {
				t.Fatal("category not attached")
			}
		})
	}
}

func TestQuoteCreateCategoryChecks(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	ctx := context.Background()
	inactive := env.createCategory(t, "off", false)

	_, err := svc.Create(ctx, env.actor(), &models.QuoteCreateRequest{TextBn: sampleText, CategoryID: inactive.ID})
	if statusOf(err) != http.StatusBadRequest {
		t.Fatalf("inactive category err = %v; want 400", err)
	}

	_, err = svc.Create(ctx, env.actor(), &models.QuoteCreateRequest{TextBn: sampleText, CategoryID: uuid.New().String()})
	if statusOf(err) != http.StatusNotFound {
		t.Fatalf("missing category err = %v; want 404", err)
	}
}

func TestQuoteUpdatePublishedAt(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	ctx := context.Background()
	c := env.createCategory(t, "life", true)

	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(first)

	quote, err := svc.Create(ctx, env.actor(), &models.QuoteCreateRequest{TextBn: sampleText, CategoryID: c.ID})
	if err != nil {
		t.Fatal(err)
	}

	update := func(status models.QuoteStatus) *models.Quote {
		t.Helper()
		updated, err := svc.Update(ctx, env.actor(), quote.ID, &models.QuoteUpdateRequest{Status: &status})
		if err != nil {
			t.Fatalf("Update(%s): %v", status, err)
		}
		return updated
	}

	published := update(models.QuoteStatusPublished)
	if published.PublishedAt == nil || !published.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt after first publish = %v; want %v", published.PublishedAt, first)
	}

	later := first.Add(48 * time.Hour)
	svc.now = fixedClock(later)
	again := update(models.QuoteStatusPublished)
	if again.PublishedAt == nil || !again.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt after PUBLISHED->PUBLISHED = %v; want unchanged %v", again.PublishedAt, first)
	}

	archived := update(models.QuoteStatusArchived)
	if archived.PublishedAt == nil || !archived.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt after archive = %v; want unchanged %v", archived.PublishedAt, first)
	}
	republished := update(models.QuoteStatusPublished)
	if republished.PublishedAt == nil || !republished.PublishedAt.Equal(later) {
		t.Fatalf("publishedAt after republish = %v; want restamped %v", republished.PublishedAt, later)
	}

	text := "নতুন লেখা, নতুন ভাবনা।"
	edited, err := svc.Update(ctx, env.actor(), quote.ID, &models.QuoteUpdateRequest{TextBn: &text})
	if err != nil {
		t.Fatal(err)
	}
	if edited.TextBn != text || edited.Status != models.QuoteStatusPublished {
		t.Fatalf("edit changed more than the text: %+v", edited)
	}

	off := env.createCategory(t, "off", false)
	if _, err := svc.Update(ctx, env.actor(), quote.ID, &models.QuoteUpdateRequest{CategoryID: &off.ID}); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("move to inactive category err = %v; want 400", err)
	}
}

func TestIncrementView(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	ctx := context.Background()
	quote := env.createQuote(t, env.createCategory(t, "life", true).ID, models.QuoteStatusPublished)

	counters, err := svc.IncrementView(ctx, quote.ID)
	if err != nil {
		t.Fatal(err)
	}
	if counters.Views != 1 || math.Abs(counters.PerformanceScore-0.1) > 1e-9 {
		t.Fatalf("views=%d score=%v; want 1 and 0.1", counters.Views, counters.PerformanceScore)
	}
	if n := countRows(t, env.db, &models.Analytics{}, "quote_id = ? AND event = ?", quote.ID, models.EventQuoteView); n != 1 {
		t.Fatalf("QUOTE_VIEW rows = %d; want 1", n)
	}

	if _, err := svc.IncrementDownload(ctx, quote.ID); err != nil {
		t.Fatal(err)
	}
	counters, err = svc.IncrementShare(ctx, quote.ID)
	if err != nil {
		t.Fatal(err)
	}
	if counters.Downloads != 1 || counters.Shares != 1 || math.Abs(counters.PerformanceScore-3.1) > 1e-9 {
		t.Fatalf("counters = %+v; want one download, one share, score 3.1", counters)
	}

	if _, err := svc.IncrementView(ctx, uuid.New().String()); statusOf(err) != http.StatusNotFound {
		t.Fatalf("missing quote err = %v; want 404", err)
	}
}

func TestQuoteBulkCreate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	ctx := context.Background()
	a := env.createCategory(t, "a", true)
	b := env.createCategory(t, "b", true)
	off := env.createCategory(t, "off", false)

	reqs := []models.QuoteCreateRequest{
		{TextBn: sampleText, CategoryID: a.ID},
		{TextBn: sampleText, CategoryID: b.ID, Status: models.QuoteStatusPublished},
		{TextBn: sampleText, CategoryID: a.ID},
	}
	result, err := svc.BulkCreate(ctx, env.actor(), reqs)
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if result.Count != 3 || len(result.Quotes) != 3 {
		t.Fatalf("count = %d; want 3", result.Count)
	}
	if result.Quotes[1].PublishedAt == nil {
		t.Fatal("published quote in bulk create has no publishedAt")
	}

	reqs[2].CategoryID = off.ID
	_, err = svc.BulkCreate(ctx, env.actor(), reqs)
	if statusOf(err) != http.StatusBadRequest {
		t.Fatalf("bulk create with inactive category err = %v; want 400", err)
	}
	if n := countRows(t, env.db, &models.Quote{}, ""); n != 3 {
		t.Fatalf("quotes = %d; want 3, nothing from the rejected batch", n)
	}
}

func TestQuoteBulkUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	ctx := context.Background()
	c := env.createCategory(t, "life", true)

	earlier := time.Date(2022, 5, 5, 0, 0, 0, 0, time.UTC)
	kept := env.createQuote(t, c.ID, models.QuoteStatusArchived)
	env.db.Model(kept).Update("published_at", earlier)
	fresh := env.createQuote(t, c.ID, models.QuoteStatusDraft)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	result, err := svc.BulkUpdateStatus(ctx, env.actor(), []string{kept.ID, fresh.ID, uuid.New().String()}, models.QuoteStatusPublished)
	if err != nil {
		t.Fatal(err)
	}
	if result.Count != 2 {
		t.Fatalf("count = %d; want 2", result.Count)
	}

	got, _ := svc.FindByID(ctx, kept.ID)
	if got.PublishedAt == nil || !got.PublishedAt.Equal(earlier) {
		t.Fatalf("existing publishedAt = %v; want %v", got.PublishedAt, earlier)
	}
	got, _ = svc.FindByID(ctx, fresh.ID)
	if got.Status != models.QuoteStatusPublished || got.PublishedAt == nil || !got.PublishedAt.Equal(now) {
		t.Fatalf("fresh quote = %s %v; want PUBLISHED at %v", got.Status, got.PublishedAt, now)
	}
}

func TestQuoteFindAllFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	ctx := context.Background()
	life := env.createCategory(t, "life", true)
	love := env.createCategory(t, "love", true)

	author := "Rabindranath Tagore"
	env.db.Create(&models.Quote{TextBn: sampleText, CategoryID: life.ID, Status: models.QuoteStatusPublished, Author: &author})
	env.createQuote(t, life.ID, models.QuoteStatusDraft)
	env.createQuote(t, love.ID, models.QuoteStatusPublished)
	deleted := env.createQuote(t, love.ID, models.QuoteStatusPublished)
	NewQuoteService(env.db, env.activity).Delete(ctx, env.actor(), deleted.ID)

	base := models.QuoteListQuery{Page: 1, Limit: 20, SortBy: "createdAt", SortOrder: "desc"}
	tests := []struct {
		name  string
		apply func(q *models.QuoteListQuery)
		want  int64
	}{
		{"all live", func(q *models.QuoteListQuery) {}, 3},
		{"by slug", func(q *models.QuoteListQuery) { q.CategorySlug = "love" }, 1},
		{"by id", func(q *models.QuoteListQuery) { q.CategoryID = life.ID }, 2},
		{"by status", func(q *models.QuoteListQuery) { q.Status = models.QuoteStatusPublished }, 2},
		{"search author case-insensitive", func(q *models.QuoteListQuery) { q.Search = "tagore" }, 1},
		{"author filter", func(q *models.QuoteListQuery) { q.Author = "RABINDRA" }, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base
			tt.apply(&q)
			quotes, pagination, err := svc.FindAll(ctx, &q)
			if err != nil {
				t.Fatal(err)
			}
			if pagination.Total != tt.want || int64(len(quotes)) != tt.want {
				t.Fatalf("total=%d rows=%d; want %d", pagination.Total, len(quotes), tt.want)
			}
			for _, quote := range quotes {
				if quote.Category == nil {
					t.Fatal("category not preloaded")
				}
			}
		})
	}
}

func TestGetRandom(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	ctx := context.Background()
	c := env.createCategory(t, "life", true)
	env.createQuote(t, c.ID, models.QuoteStatusDraft)

	if _, err := svc.GetRandom(ctx, ""); statusOf(err) != http.StatusNotFound {
		t.Fatalf("no published quotes err = %v; want 404", err)
	}

	published := env.createQuote(t, c.ID, models.QuoteStatusPublished)
	for i := 0; i < 5; i++ {
		got, err := svc.GetRandom(ctx, "life")
		if err != nil {
			t.Fatal(err)
		}
		if got.ID != published.ID {
			t.Fatalf("GetRandom returned %s; want the only published quote", got.ID)
		}
	}

	if _, err := svc.GetRandom(ctx, "nope"); statusOf(err) != http.StatusNotFound {
		t.Fatalf("unknown slug err = %v; want 404", err)
	}
}

func TestQuoteSearchMatchesWildcardsLiterally(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuoteService(env.db, env.activity)
	ctx := context.Background()
	c := env.createCategory(t, "life", true)

	withEnglish := func(text string) {
		t.Helper()
		if err := env.db.Create(&models.Quote{TextBn: sampleText, TextEn: &text, CategoryID: c.ID, Status: models.QuoteStatusPublished}).Error; err != nil {
			t.Fatal(err)
		}
	}
	withEnglish("Give 100% of yourself every day.")
	withEnglish("A snake_case name is still a name.")
	env.createQuote(t, c.ID, models.QuoteStatusPublished)

	tests := []struct {
		search string
		want   int64
	}{
		{"%", 1},
		{"_", 1},
		{"100%", 1},
		{"e_c", 1},
		{`\`, 0},
		{"%%", 0},
		{"__", 0},
		{"name", 1},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			q := models.QuoteListQuery{Page: 1, Limit: 20, SortBy: "createdAt", SortOrder: "desc", Search: tt.search}
			_, pagination, err := svc.FindAll(ctx, &q)
			if err != nil {
				t.Fatal(err)
			}
			if pagination.Total != tt.want {
				t.Fatalf("search %q total = %d; want %d", tt.search, pagination.Total, tt.want)
			}
		})
	}
}
