package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

// Query is the predicate set applied to a catalog snapshot. Zero values mean
// "no filter"; Date scopes the search to workspaces with at least one free
// hour on that day.
type Query struct {
	Text     string
	Location string
	Type     models.WorkspaceType
	Date     *time.Time
}

// FreeOnDate reports whether a workspace has any bookable hour left on a
// date. Wired to the conflict resolver through the booking snapshot.
type FreeOnDate func(ctx context.Context, workspaceID string, date time.Time) (bool, error)

// Index derives the filtered, ordered view of the catalog. The composition is
// pure and restartable: the same snapshot and query yield the same sequence.
type Index struct {
	provider Provider
	free     FreeOnDate
}

// NewIndex builds a search index. free may be nil when date-scoped search is
// not needed.
func NewIndex(provider Provider, free FreeOnDate) *Index {
	return &Index{provider: provider, free: free}
}

// Search filters the catalog, preserving catalog order. Disabled workspaces
// are excluded unconditionally, before any other predicate.
func (idx *Index) Search(ctx context.Context, q Query) ([]models.Workspace, error) {
	all, err := idx.provider.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))
	result := make([]models.Workspace, 0, len(all))
	for _, ws := range all {
		if !ws.Enabled {
			continue
		}
		if text != "" && !matchesText(&ws, text) {
			continue
		}
		if q.Location != "" && ws.Location != q.Location {
			continue
		}
		if q.Type != "" && ws.Type != q.Type {
			continue
		}
		if q.Date != nil && idx.free != nil {
			free, err := idx.free(ctx, ws.ID, *q.Date)
			if err != nil {
				return nil, err
			}
			if !free {
				continue
			}
		}
		result = append(result, ws)
	}
	return result, nil
}

// matchesText does a case-insensitive substring match over name, type and
// location.
func matchesText(ws *models.Workspace, text string) bool {
	return strings.Contains(strings.ToLower(ws.Name), text) ||
		strings.Contains(strings.ToLower(string(ws.Type)), text) ||
		strings.Contains(strings.ToLower(ws.Location), text)
}

// Locations returns the distinct locations present in the catalog, in
// catalog order.
func (idx *Index) Locations(ctx context.Context) ([]string, error) {
	all, err := idx.provider.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var locations []string
	for _, ws := range all {
		if !seen[ws.Location] {
			seen[ws.Location] = true
			locations = append(locations, ws.Location)
		}
	}
	return locations, nil
}
