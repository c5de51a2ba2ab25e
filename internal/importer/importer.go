// Package importer loads catalog seed data from CSV or JSON files.
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/shared/telemetry"
)

const notSpecified = "Not specified"

// Importer writes imported tools into the catalog repository.
type Importer struct {
	Repo catalog.Repo
}

// Summary reports the outcome of an import run.
type Summary struct {
	Imported int
	Skipped  int
}

// ImportCSVFile imports tools from a CSV file on disk.
func (im *Importer) ImportCSVFile(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return im.ImportCSV(ctx, f)
}

// ImportCSV imports tools from CSV data. The header row names columns; rows
// without a Name are skipped, and a duplicate name skips the row rather than
// failing the run. Scores in the source data are on a 1-10 scale and are
// rescaled to 0-100.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Summary{}, fmt.Errorf("read csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var summary Summary
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("read csv row: %w", err)
		}

		field := func(column string) string {
			idx, ok := columns[column]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		name := field("Name")
		if name == "" {
			summary.Skipped++
			continue
		}

		now := time.Now().UTC()
		tool := catalog.Tool{
			ID:                   uuid.NewString(),
			Name:                 name,
			Category:             field("Categories"),
			Description:          field("Description"),
			URL:                  field("URL"),
			Pricing:              field("Pricing"),
			Frameworks:           parseList(field("Frameworks")),
			Languages:            parseList(field("Supported_Languages")),
			Features:             parseList(field("Features")),
			NativeIntegrations:   parseList(field("Native Integrations")),
			VerifiedIntegrations: parseList(field("Verified Integrations")),
			NotableStrengths:     parseList(field("Notable Strengths")),
			KnownLimitations:     parseList(field("Known Limitations")),
			MaturityScore:        parseScore(field("Maturity Score")),
			PopularityScore:      parseScore(field("Popularity Score")),
			CreatedAt:            now,
			UpdatedAt:            now,
		}

		if err := im.Repo.CreateTool(ctx, tool); err != nil {
			if errors.Is(err, catalog.ErrDuplicate) {
				telemetry.Info("importer.duplicate_skipped", map[string]any{"name": name})
				summary.Skipped++
				continue
			}
			return summary, fmt.Errorf("import tool %q: %w", name, err)
		}
		summary.Imported++
	}

	return summary, nil
}

// ImportJSONFile imports tools from a JSON array file on disk.
func (im *Importer) ImportJSONFile(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open json: %w", err)
	}
	defer f.Close()
	return im.ImportJSON(ctx, f)
}

type jsonTool struct {
	Name                 string   `json:"name"`
	Category             string   `json:"category"`
	Description          string   `json:"description"`
	URL                  string   `json:"url"`
	Pricing              string   `json:"pricing"`
	Frameworks           []string `json:"frameworks"`
	Languages            []string `json:"supported_languages"`
	Features             []string `json:"features"`
	NativeIntegrations   []string `json:"native_integrations"`
	VerifiedIntegrations []string `json:"verified_integrations"`
	NotableStrengths     []string `json:"notable_strengths"`
	KnownLimitations     []string `json:"known_limitations"`
	MaturityScore        int      `json:"maturity_score"`
	PopularityScore      int      `json:"popularity_score"`
	Notes                string   `json:"notes"`
}

// ImportJSON imports tools from a JSON array. Scores are taken as-is on the
// 0-100 scale. Entries without a name are skipped.
func (im *Importer) ImportJSON(ctx context.Context, r io.Reader) (Summary, error) {
	var entries []jsonTool
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return Summary{}, fmt.Errorf("decode json: %w", err)
	}

	var summary Summary
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			summary.Skipped++
			continue
		}

		now := time.Now().UTC()
		tool := catalog.Tool{
			ID:                   uuid.NewString(),
			Name:                 name,
			Category:             strings.TrimSpace(entry.Category),
			Description:          entry.Description,
			URL:                  entry.URL,
			Pricing:              entry.Pricing,
			Frameworks:           cleanList(entry.Frameworks),
			Languages:            cleanList(entry.Languages),
			Features:             cleanList(entry.Features),
			NativeIntegrations:   cleanList(entry.NativeIntegrations),
			VerifiedIntegrations: cleanList(entry.VerifiedIntegrations),
			NotableStrengths:     cleanList(entry.NotableStrengths),
			KnownLimitations:     cleanList(entry.KnownLimitations),
			MaturityScore:        clampScore(entry.MaturityScore),
			PopularityScore:      clampScore(entry.PopularityScore),
			Notes:                entry.Notes,
			CreatedAt:            now,
			UpdatedAt:            now,
		}

		if err := im.Repo.CreateTool(ctx, tool); err != nil {
			if errors.Is(err, catalog.ErrDuplicate) {
				telemetry.Info("importer.duplicate_skipped", map[string]any{"name": name})
				summary.Skipped++
				continue
			}
			return summary, fmt.Errorf("import tool %q: %w", name, err)
		}
		summary.Imported++
	}

	return summary, nil
}

// parseList splits a comma-separated CSV cell. "Not specified" means empty.
func parseList(raw string) []string {
	if raw == "" || raw == notSpecified {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseScore reads a 1-10 score cell and rescales it to 0-100. Missing,
// "Not specified" and out-of-range values come through as 0.
func parseScore(raw string) int {
	if raw == "" || raw == notSpecified {
		return 0
	}
	score, err := strconv.Atoi(raw)
	if err != nil || score < 1 || score > 10 {
		return 0
	}
	return score * 10
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
