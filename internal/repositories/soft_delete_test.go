package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/database"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newCategory(t *testing.T, repo *CategoryRepository, slug string) *models.Category {
	t.Helper()
	c := &models.Category{NameBn: "বিভাগ", NameEn: "Category " + slug, Slug: slug, IsActive: true}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("create %s: %v", slug, err)
	}
	return c
}

func TestSoftDeleteHidesRowsFromDefaultReads(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(openDB(t))

	keep := newCategory(t, repo, "keep")
	gone := newCategory(t, repo, "gone")

	n, err := repo.Delete(ctx, gone.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete = %d, %v; want 1, nil", n, err)
	}

	var live []models.Category
	if err := repo.Query(ctx).Find(&live).Error; err != nil {
		t.Fatal(err)
	}
	if len(live) != 1 || live[0].ID != keep.ID {
		t.Fatalf("default read = %+v; want only %s", live, keep.ID)
	}

	if _, err := repo.FindByID(ctx, gone.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("FindByID(deleted) err = %v; want ErrRecordNotFound", err)
	}

	found, err := repo.FindByID(ctx, gone.ID, IncludeDeleted())
	if err != nil {
		t.Fatalf("FindByID(IncludeDeleted) err = %v", err)
	}
	if found.DeletedAt == nil {
		t.Fatal("deleted row has no deletion timestamp")
	}

	var all []models.Category
	if err := repo.Query(ctx, IncludeDeleted()).Find(&all).Error; err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("IncludeDeleted read returned %d rows; want 2", len(all))
	}
}

func TestDeleteIsIdempotentAndRestorable(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(openDB(t))
	c := newCategory(t, repo, "again")

	if n, _ := repo.Delete(ctx, c.ID); n != 1 {
		t.Fatalf("first delete affected %d rows", n)
	}
	if n, _ := repo.Delete(ctx, c.ID); n != 0 {
		t.Fatalf("second delete affected %d rows; want 0", n)
	}
	if n, _ := repo.Updates(ctx, c.ID, map[string]interface{}{"name_en": "x"}); n != 0 {
		t.Fatalf("update of deleted row affected %d rows; want 0", n)
	}

	if n, err := repo.Restore(ctx, c.ID); err != nil || n != 1 {
		t.Fatalf("Restore = %d, %v", n, err)
	}
	if _, err := repo.FindByID(ctx, c.ID); err != nil {
		t.Fatalf("restored row not visible: %v", err)
	}
}

func TestSlugReusableAfterSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(openDB(t))

	old := newCategory(t, repo, "life")
	if exists, _ := repo.SlugExists(ctx, "life", ""); !exists {
		t.Fatal("SlugExists = false for live slug")
	}
	if exists, _ := repo.SlugExists(ctx, "life", old.ID); exists {
		t.Fatal("SlugExists should ignore the excluded row")
	}

	repo.Delete(ctx, old.ID)
	if exists, _ := repo.SlugExists(ctx, "life", ""); exists {
		t.Fatal("soft-deleted slug still reported taken")
	}
	newCategory(t, repo, "life")
}

func TestDeleteManyAndQuoteCounts(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	categories := NewCategoryRepository(db)
	quotes := NewQuoteRepository(db)

	a := newCategory(t, categories, "a")
	b := newCategory(t, categories, "b")

	var ids []string
	for i := 0; i < 3; i++ {
		q := &models.Quote{TextBn: "একটি পরীক্ষামূলক উক্তি", CategoryID: a.ID, Status: models.QuoteStatusDraft}
		if err := quotes.Create(ctx, q); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, q.ID)
	}

	n, err := quotes.DeleteMany(ctx, ids[:2])
	if err != nil || n != 2 {
		t.Fatalf("DeleteMany = %d, %v; want 2", n, err)
	}

	counts, err := categories.QuoteCounts(ctx, []string{a.ID, b.ID})
	if err != nil {
		t.Fatal(err)
	}
	if counts[a.ID] != 1 || counts[b.ID] != 0 {
		t.Fatalf("QuoteCounts = %v; want a=1 b=0", counts)
	}
}

func TestIncrement(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	c := newCategory(t, NewCategoryRepository(db), "counter")
	quotes := NewQuoteRepository(db)

	q := &models.Quote{TextBn: "একটি পরীক্ষামূলক উক্তি", CategoryID: c.ID, Status: models.QuoteStatusPublished}
	if err := quotes.Create(ctx, q); err != nil {
		t.Fatal(err)
	}

	if n, err := quotes.Increment(ctx, q.ID, "downloads", 2.0); err != nil || n != 1 {
		t.Fatalf("Increment = %d, %v", n, err)
	}
	if _, err := quotes.Increment(ctx, q.ID, "password", 1); err == nil {
		t.Fatal("Increment accepted an unknown column")
	}

	got, _ := quotes.FindByID(ctx, q.ID)
	if got.Downloads != 1 || got.PerformanceScore != 2.0 {
		t.Fatalf("downloads=%d score=%v; want 1 and 2", got.Downloads, got.PerformanceScore)
	}
}
