// Package catalog exposes the workspace catalog and the filtered search view
// over it.
package catalog

import (
	"context"

	"github.com/Psybah/deskhive/internal/models"
)

// Provider supplies catalog snapshots. The catalog is maintained by an
// external admin surface; within one request the snapshot is immutable.
type Provider interface {
	ListWorkspaces(ctx context.Context) ([]models.Workspace, error)
	GetWorkspace(ctx context.Context, id string) (*models.Workspace, error)
}

// Static is an in-memory Provider over a fixed workspace list, used in tests
// and as a fallback when no store is configured.
type Static struct {
	workspaces []models.Workspace
}

// NewStatic builds a static provider. The slice is copied.
func NewStatic(workspaces []models.Workspace) *Static {
	return &Static{workspaces: append([]models.Workspace(nil), workspaces...)}
}

func (s *Static) ListWorkspaces(_ context.Context) ([]models.Workspace, error) {
	return append([]models.Workspace(nil), s.workspaces...), nil
}

func (s *Static) GetWorkspace(_ context.Context, id string) (*models.Workspace, error) {
	for i := range s.workspaces {
		if s.workspaces[i].ID == id {
			ws := s.workspaces[i]
			return &ws, nil
		}
	}
	return nil, &models.NotFoundError{Kind: "workspace", ID: id}
}
