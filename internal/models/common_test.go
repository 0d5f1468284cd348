package models

import (
	"math"
	"testing"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, limit int
		total       int64
		totalPages  int
		hasNext     bool
		hasPrev     bool
	}{
		{1, 20, 0, 0, false, false},
		{1, 20, 20, 1, false, false},
		{1, 20, 21, 2, true, false},
		{2, 20, 21, 2, false, true},
		{3, 10, 100, 10, true, true},
		{5, 7, 3, 1, false, true},
	}

	for _, tt := range tests {
		p := NewPagination(tt.page, tt.limit, tt.total)
		if p.TotalPages != tt.totalPages || p.HasNext != tt.hasNext || p.HasPrev != tt.hasPrev {
			t.Fatalf("NewPagination(%d, %d, %d) = %+v; want totalPages=%d hasNext=%v hasPrev=%v",
				tt.page, tt.limit, tt.total, p, tt.totalPages, tt.hasNext, tt.hasPrev)
		}
	}
}

func TestNewPaginationProperties(t *testing.T) {
	for total := int64(0); total <= 60; total += 7 {
		for limit := 1; limit <= 25; limit += 4 {
			for page := 1; page <= 12; page++ {
				p := NewPagination(page, limit, total)
				want := int(math.Ceil(float64(total) / float64(limit)))
				if p.TotalPages != want {
					t.Fatalf("total=%d limit=%d: totalPages = %d; want %d", total, limit, p.TotalPages, want)
				}
				if p.HasNext != (page < want) || p.HasPrev != (page > 1) {
					t.Fatalf("page=%d limit=%d total=%d: %+v", page, limit, total, p)
				}
			}
		}
	}
}

func TestPaginationOffset(t *testing.T) {
	if got := NewPagination(3, 20, 100).Offset(); got != 40 {
		t.Fatalf("Offset = %d; want 40", got)
	}
	if got := NewPagination(0, 20, 100).Offset(); got != 0 {
		t.Fatalf("Offset for page 0 = %d; want 0", got)
	}
}

func TestRoleChecks(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Fatalf("%s should be valid", r)
		}
	}
	if Role("ROOT").Valid() {
		t.Fatal("unknown role accepted")
	}
	if !RoleAdmin.IsAdmin() || !RoleSuperAdmin.IsAdmin() {
		t.Fatal("admin roles not recognised")
	}
	if RoleContentManager.IsAdmin() || RoleUser.IsAdmin() || RoleModerator.IsAdmin() {
		t.Fatal("non-admin role treated as admin")
	}
	if !RoleModerator.In(RoleSuperAdmin, RoleModerator) || RoleUser.In(RoleAdmin) {
		t.Fatal("Role.In mismatch")
	}
}
