package services

import (
	"context"
	"testing"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
)

func TestInitializeFeatureTogglesKeepsExisting(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSettingsService(env.db, env.activity)
	ctx := context.Background()

	if _, err := svc.UpdateFeatureToggle(ctx, env.actor(), ToggleWatermarkEnabled, true); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		toggles, err := svc.InitializeFeatureToggles(ctx)
		if err != nil {
			t.Fatalf("InitializeFeatureToggles #%d: %v", i, err)
		}
		if len(toggles) != len(defaultToggles) {
			t.Fatalf("toggles = %d; want %d", len(toggles), len(defaultToggles))
		}
	}

	toggles, err := svc.GetFeatureToggles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(toggles); i++ {
		if toggles[i-1].Key > toggles[i].Key {
			t.Fatalf("toggles not ordered by key: %s before %s", toggles[i-1].Key, toggles[i].Key)
		}
	}

	public, err := svc.GetPublicSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !public.Features[ToggleWatermarkEnabled] {
		t.Fatal("initialize overwrote an existing toggle")
	}
	if !public.Features[ToggleDownloadEnabled] || public.Features[ToggleAdsEnabled] {
		t.Fatalf("default toggle states wrong: %v", public.Features)
	}
}

func TestUpdateFeatureToggle(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSettingsService(env.db, env.activity)
	ctx := context.Background()

	if _, err := svc.InitializeFeatureToggles(ctx); err != nil {
		t.Fatal(err)
	}
	toggle, err := svc.UpdateFeatureToggle(ctx, env.actor(), ToggleShareEnabled, false)
	if err != nil {
		t.Fatal(err)
	}
	if toggle.IsEnabled {
		t.Fatal("toggle still enabled")
	}
	if toggle.Description == nil || *toggle.Description == "" {
		t.Fatal("update dropped the description")
	}
	if toggle.UpdatedBy == nil || *toggle.UpdatedBy != env.admin.ID {
		t.Fatalf("updatedBy = %v; want %s", toggle.UpdatedBy, env.admin.ID)
	}
}

func TestUpsertSetting(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSettingsService(env.db, env.activity)
	ctx := context.Background()

	public := true
	if _, err := svc.UpsertSetting(ctx, env.actor(), &models.SettingUpsertRequest{Key: "site_name", Value: "বাংলা উক্তি", IsPublic: &public}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpsertSetting(ctx, env.actor(), &models.SettingUpsertRequest{Key: "smtp_host", Value: "mail", Group: "email"}); err != nil {
		t.Fatal(err)
	}

	setting, err := svc.UpsertSetting(ctx, env.actor(), &models.SettingUpsertRequest{Key: "site_name", Value: "Bangla Quotes"})
	if err != nil {
		t.Fatal(err)
	}
	if setting.Value != "Bangla Quotes" || !setting.IsPublic || setting.Type != "string" || setting.Group != "general" {
		t.Fatalf("setting = %+v", setting)
	}

	email, err := svc.GetSettings(ctx, "email")
	if err != nil || len(email) != 1 {
		t.Fatalf("GetSettings(email) = %v, %v; want one row", email, err)
	}

	pub, err := svc.GetPublicSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pub.Settings) != 1 || pub.Settings["site_name"] != "Bangla Quotes" {
		t.Fatalf("public settings = %v", pub.Settings)
	}
}
