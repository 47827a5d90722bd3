package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Psybah/deskhive/internal/models"
)

const workspaceColumns = `id, name, type, location, capacity, price_per_hour,
	description, features, enabled`

// ListWorkspaces returns the full catalog in catalog order.
func (db *DB) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces
		ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []models.Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, *ws)
	}
	return workspaces, rows.Err()
}

// GetWorkspace returns a workspace by id.
func (db *DB) GetWorkspace(ctx context.Context, id string) (*models.Workspace, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+workspaceColumns+` FROM workspaces WHERE id = ?`, id)
	ws, err := scanWorkspace(row)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Kind: "workspace", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return ws, nil
}

// UpsertWorkspace creates or updates a workspace; administrative surface.
func (db *DB) UpsertWorkspace(ctx context.Context, ws *models.Workspace) error {
	features, err := json.Marshal(ws.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	now := time.Now()
	_, err = db.ExecContext(ctx, `
		INSERT INTO workspaces (
			id, name, type, location, capacity, price_per_hour,
			description, features, enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			location = excluded.location,
			capacity = excluded.capacity,
			price_per_hour = excluded.price_per_hour,
			description = excluded.description,
			features = excluded.features,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at`,
		ws.ID, ws.Name, string(ws.Type), ws.Location, ws.Capacity, ws.PricePerHour,
		ws.Description, string(features), ws.Enabled, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert workspace: %w", err)
	}
	return nil
}

// SetWorkspaceEnabled flips a workspace's enabled flag. Disabled workspaces
// drop out of search and booking on the next catalog snapshot.
func (db *DB) SetWorkspaceEnabled(ctx context.Context, id string, enabled bool) error {
	result, err := db.ExecContext(ctx, `
		UPDATE workspaces SET enabled = ?, updated_at = ? WHERE id = ?`,
		enabled, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("set workspace enabled: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &models.NotFoundError{Kind: "workspace", ID: id}
	}
	return nil
}

// SeedWorkspaces inserts the given workspaces when the table is empty.
func (db *DB) SeedWorkspaces(ctx context.Context, workspaces []models.Workspace) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workspaces`).Scan(&count); err != nil {
		return fmt.Errorf("count workspaces: %w", err)
	}
	if count > 0 {
		return nil
	}
	for i := range workspaces {
		if err := db.UpsertWorkspace(ctx, &workspaces[i]); err != nil {
			return err
		}
	}
	db.logger.Info().Int("count", len(workspaces)).Msg("seeded workspace catalog")
	return nil
}

func scanWorkspace(row rowScanner) (*models.Workspace, error) {
	var ws models.Workspace
	var wsType string
	var description, features sql.NullString
	err := row.Scan(
		&ws.ID, &ws.Name, &wsType, &ws.Location, &ws.Capacity, &ws.PricePerHour,
		&description, &features, &ws.Enabled,
	)
	if err != nil {
		return nil, err
	}
	ws.Type = models.WorkspaceType(wsType)
	if description.Valid {
		ws.Description = description.String
	}
	if features.Valid && features.String != "" {
		if err := json.Unmarshal([]byte(features.String), &ws.Features); err != nil {
			return nil, fmt.Errorf("decode features for %s: %w", ws.ID, err)
		}
	}
	return &ws, nil
}
