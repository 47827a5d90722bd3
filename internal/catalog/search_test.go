package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

func testCatalog() []models.Workspace {
	return []models.Workspace{
		{ID: "ws-001", Name: "Innovation Hub", Type: models.TypeMeetingRoom, Location: "Lagos", Capacity: 8, Enabled: true},
		{ID: "ws-002", Name: "Focus Desk A", Type: models.TypeHotDesk, Location: "Lagos", Capacity: 1, Enabled: true},
		{ID: "ws-003", Name: "Executive Suite", Type: models.TypePrivateOffice, Location: "Abuja", Capacity: 4, Enabled: true},
		{ID: "ws-004", Name: "Old Annex", Type: models.TypeMeetingRoom, Location: "Abuja", Capacity: 6, Enabled: false},
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(NewStatic(testCatalog()), nil)

	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{"no filters excludes disabled", Query{}, []string{"ws-001", "ws-002", "ws-003"}},
		{"text over name", Query{Text: "innovation"}, []string{"ws-001"}},
		{"text over type", Query{Text: "hot desk"}, []string{"ws-002"}},
		{"text over location", Query{Text: "abuja"}, []string{"ws-003"}},
		{"text is case-insensitive", Query{Text: "EXECUTIVE"}, []string{"ws-003"}},
		{"location filter", Query{Location: "Lagos"}, []string{"ws-001", "ws-002"}},
		{"type filter", Query{Type: models.TypeMeetingRoom}, []string{"ws-001"}},
		{"combined filters", Query{Text: "desk", Location: "Lagos"}, []string{"ws-002"}},
		{"no match", Query{Text: "rooftop"}, nil},
		{"disabled never matches text", Query{Text: "annex"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := idx.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("result[%d] = %s, want %s", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestSearchByDate(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// ws-001 is fully booked on the day; everything else is free.
	free := func(_ context.Context, workspaceID string, _ time.Time) (bool, error) {
		return workspaceID != "ws-001", nil
	}
	idx := NewIndex(NewStatic(testCatalog()), free)

	got, err := idx.Search(ctx, Query{Date: &day})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	for _, ws := range got {
		if ws.ID == "ws-001" {
			t.Error("fully booked workspace should be filtered out")
		}
	}
}

func TestLocations(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex(NewStatic(testCatalog()), nil)

	locations, err := idx.Locations(ctx)
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("got %d locations, want 2", len(locations))
	}
	if locations[0] != "Lagos" || locations[1] != "Abuja" {
		t.Errorf("locations = %v, want [Lagos Abuja]", locations)
	}
}

func TestSeed(t *testing.T) {
	seed := Seed()
	if len(seed) != 9 {
		t.Fatalf("seed has %d workspaces, want 9", len(seed))
	}
	seen := make(map[string]bool)
	for _, ws := range seed {
		if seen[ws.ID] {
			t.Errorf("duplicate workspace id %s", ws.ID)
		}
		seen[ws.ID] = true
		if !ws.Enabled {
			t.Errorf("seed workspace %s should be enabled", ws.ID)
		}
		if ws.Capacity < 1 {
			t.Errorf("seed workspace %s has capacity %d", ws.ID, ws.Capacity)
		}
		if ws.PricePerHour <= 0 {
			t.Errorf("seed workspace %s has price %d", ws.ID, ws.PricePerHour)
		}
	}
}
