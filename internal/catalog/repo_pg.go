package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres. Array-valued fields are stored as
// JSON text, matching the import data format.
type PGRepo struct {
	DB *sql.DB
}

const toolColumns = `id, name, category, description, url, frameworks, languages, features,
native_integrations, verified_integrations, notable_strengths, known_limitations,
maturity_score, popularity_score, pricing, notes, created_at, updated_at`

// GetTool returns a tool by ID.
func (r *PGRepo) GetTool(ctx context.Context, id string) (Tool, error) {
	const query = `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	return r.scanTool(r.DB.QueryRowContext(ctx, query, id))
}

// GetToolByName returns a tool by exact name, case-insensitive.
func (r *PGRepo) GetToolByName(ctx context.Context, name string) (Tool, error) {
	const query = `SELECT ` + toolColumns + ` FROM tools WHERE LOWER(name) = LOWER($1)`
	return r.scanTool(r.DB.QueryRowContext(ctx, query, name))
}

// ListTools returns all tools ordered by name.
func (r *PGRepo) ListTools(ctx context.Context) ([]Tool, error) {
	const query = `SELECT ` + toolColumns + ` FROM tools ORDER BY LOWER(name)`
	return r.queryTools(ctx, query)
}

// ListToolsByCategory returns tools in a category ordered by name.
func (r *PGRepo) ListToolsByCategory(ctx context.Context, categoryID string) ([]Tool, error) {
	const query = `SELECT ` + toolColumns + ` FROM tools WHERE LOWER(category) = LOWER($1) ORDER BY LOWER(name)`
	return r.queryTools(ctx, query, categoryID)
}

// GetCompatibility looks up a persisted pairwise score in either ID order.
func (r *PGRepo) GetCompatibility(ctx context.Context, idA, idB string) (Compatibility, error) {
	const query = `
SELECT tool_a_id, tool_b_id, score, difficulty, notes, verified, setup_steps, dependencies, updated_at
FROM compatibilities
WHERE tool_a_id = LEAST($1::text, $2::text) AND tool_b_id = GREATEST($1::text, $2::text)`
	var record Compatibility
	var notes sql.NullString
	var setupSteps, dependencies sql.NullString
	err := r.DB.QueryRowContext(ctx, query, idA, idB).Scan(
		&record.ToolAID,
		&record.ToolBID,
		&record.Score,
		&record.Difficulty,
		&notes,
		&record.Verified,
		&setupSteps,
		&dependencies,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Compatibility{}, ErrNotFound
		}
		return Compatibility{}, err
	}
	if notes.Valid {
		record.Notes = notes.String
	}
	record.SetupSteps = parseJSONList(setupSteps)
	record.Dependencies = parseJSONList(dependencies)
	return record, nil
}

// ListCategories returns all categories ordered by name.
func (r *PGRepo) ListCategories(ctx context.Context) ([]Category, error) {
	const query = `SELECT id, name, description FROM categories ORDER BY LOWER(name)`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var category Category
		var description sql.NullString
		if err := rows.Scan(&category.ID, &category.Name, &description); err != nil {
			return nil, err
		}
		if description.Valid {
			category.Description = description.String
		}
		out = append(out, category)
	}
	return out, rows.Err()
}

// CreateTool inserts a new tool. A case-insensitive name collision returns
// ErrDuplicate.
func (r *PGRepo) CreateTool(ctx context.Context, tool Tool) error {
	existing, err := r.GetToolByName(ctx, tool.Name)
	if err == nil && existing.ID != "" {
		return ErrDuplicate
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	const query = `
INSERT INTO tools (` + toolColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	createdAt := tool.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := tool.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		tool.ID,
		tool.Name,
		tool.Category,
		tool.Description,
		tool.URL,
		encodeJSONList(tool.Frameworks),
		encodeJSONList(tool.Languages),
		encodeJSONList(tool.Features),
		encodeJSONList(tool.NativeIntegrations),
		encodeJSONList(tool.VerifiedIntegrations),
		encodeJSONList(tool.NotableStrengths),
		encodeJSONList(tool.KnownLimitations),
		tool.MaturityScore,
		tool.PopularityScore,
		tool.Pricing,
		tool.Notes,
		createdAt,
		updatedAt,
	)
	return err
}

// UpdateTool replaces a stored tool.
func (r *PGRepo) UpdateTool(ctx context.Context, tool Tool) error {
	const query = `
UPDATE tools
SET name = $2, category = $3, description = $4, url = $5, frameworks = $6, languages = $7,
    features = $8, native_integrations = $9, verified_integrations = $10,
    notable_strengths = $11, known_limitations = $12, maturity_score = $13,
    popularity_score = $14, pricing = $15, notes = $16, updated_at = $17
WHERE id = $1`
	res, err := r.DB.ExecContext(
		ctx,
		query,
		tool.ID,
		tool.Name,
		tool.Category,
		tool.Description,
		tool.URL,
		encodeJSONList(tool.Frameworks),
		encodeJSONList(tool.Languages),
		encodeJSONList(tool.Features),
		encodeJSONList(tool.NativeIntegrations),
		encodeJSONList(tool.VerifiedIntegrations),
		encodeJSONList(tool.NotableStrengths),
		encodeJSONList(tool.KnownLimitations),
		tool.MaturityScore,
		tool.PopularityScore,
		tool.Pricing,
		tool.Notes,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTool removes a tool by ID.
func (r *PGRepo) DeleteTool(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM tools WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertCompatibility stores a pairwise score under the normalized pair order.
func (r *PGRepo) UpsertCompatibility(ctx context.Context, compat Compatibility) error {
	const query = `
INSERT INTO compatibilities (tool_a_id, tool_b_id, score, difficulty, notes, verified, setup_steps, dependencies, updated_at)
VALUES (LEAST($1::text, $2::text), GREATEST($1::text, $2::text), $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (tool_a_id, tool_b_id) DO UPDATE
SET score = EXCLUDED.score, difficulty = EXCLUDED.difficulty, notes = EXCLUDED.notes,
    verified = EXCLUDED.verified, setup_steps = EXCLUDED.setup_steps,
    dependencies = EXCLUDED.dependencies, updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		compat.ToolAID,
		compat.ToolBID,
		compat.Score,
		compat.Difficulty,
		compat.Notes,
		compat.Verified,
		encodeJSONList(compat.SetupSteps),
		encodeJSONList(compat.Dependencies),
		time.Now().UTC(),
	)
	return err
}

// CreateCategory inserts or updates a category.
func (r *PGRepo) CreateCategory(ctx context.Context, category Category) error {
	const query = `
INSERT INTO categories (id, name, description)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description`
	_, err := r.DB.ExecContext(ctx, query, category.ID, category.Name, category.Description)
	return err
}

// CategoryBreakdown tallies tools per category.
func (r *PGRepo) CategoryBreakdown(ctx context.Context) ([]CategoryCount, error) {
	const query = `SELECT category, COUNT(*) FROM tools GROUP BY category ORDER BY category`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var entry CategoryCount
		if err := rows.Scan(&entry.Category, &entry.Count); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanTool(row rowScanner) (Tool, error) {
	var tool Tool
	var description, url, pricing, notes sql.NullString
	var frameworks, languages, features sql.NullString
	var nativeIntegrations, verifiedIntegrations sql.NullString
	var strengths, limitations sql.NullString
	err := row.Scan(
		&tool.ID,
		&tool.Name,
		&tool.Category,
		&description,
		&url,
		&frameworks,
		&languages,
		&features,
		&nativeIntegrations,
		&verifiedIntegrations,
		&strengths,
		&limitations,
		&tool.MaturityScore,
		&tool.PopularityScore,
		&pricing,
		&notes,
		&tool.CreatedAt,
		&tool.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tool{}, ErrNotFound
		}
		return Tool{}, err
	}
	if description.Valid {
		tool.Description = description.String
	}
	if url.Valid {
		tool.URL = url.String
	}
	if pricing.Valid {
		tool.Pricing = pricing.String
	}
	if notes.Valid {
		tool.Notes = notes.String
	}
	tool.Frameworks = parseJSONList(frameworks)
	tool.Languages = parseJSONList(languages)
	tool.Features = parseJSONList(features)
	tool.NativeIntegrations = parseJSONList(nativeIntegrations)
	tool.VerifiedIntegrations = parseJSONList(verifiedIntegrations)
	tool.NotableStrengths = parseJSONList(strengths)
	tool.KnownLimitations = parseJSONList(limitations)
	return tool, nil
}

func (r *PGRepo) queryTools(ctx context.Context, query string, args ...any) ([]Tool, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tool
	for rows.Next() {
		tool, err := r.scanTool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tool)
	}
	return out, rows.Err()
}

// parseJSONList decodes a JSON array column, treating NULL, empty and
// malformed values as an empty list rather than an error.
func parseJSONList(raw sql.NullString) []string {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return []string{}
	}
	return out
}

func encodeJSONList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

var _ Repo = (*PGRepo)(nil)
