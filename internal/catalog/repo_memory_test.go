package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepoToolLifecycle(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	tool := Tool{ID: "t1", Name: "Copilot", Category: "ai-assist"}
	if err := repo.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	got, err := repo.GetTool(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTool: %v", err)
	}
	if got.Name != "Copilot" {
		t.Fatalf("unexpected tool: %+v", got)
	}

	got.Description = "updated"
	if err := repo.UpdateTool(ctx, got); err != nil {
		t.Fatalf("UpdateTool: %v", err)
	}

	if err := repo.DeleteTool(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTool: %v", err)
	}
	if _, err := repo.GetTool(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.UpdateTool(ctx, got); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestMemoryRepoDuplicateNamesCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.CreateTool(ctx, Tool{ID: "t1", Name: "Copilot", Category: "ai-assist"}); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}
	err := repo.CreateTool(ctx, Tool{ID: "t2", Name: "COPILOT", Category: "ai-assist"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMemoryRepoGetByNameCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.CreateTool(ctx, Tool{ID: "t1", Name: "Cody", Category: "ai-assist"}); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}
	got, err := repo.GetToolByName(ctx, "cody")
	if err != nil {
		t.Fatalf("GetToolByName: %v", err)
	}
	if got.ID != "t1" {
		t.Fatalf("unexpected tool: %+v", got)
	}
}

func TestMemoryRepoListSortedByName(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	for _, tool := range []Tool{
		{ID: "t1", Name: "vercel", Category: "dev-env"},
		{ID: "t2", Name: "Cody", Category: "ai-assist"},
		{ID: "t3", Name: "copilot", Category: "AI-Assist"},
	} {
		if err := repo.CreateTool(ctx, tool); err != nil {
			t.Fatalf("CreateTool %s: %v", tool.Name, err)
		}
	}

	tools, err := repo.ListTools(ctx)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	want := []string{"Cody", "copilot", "vercel"}
	for i, name := range want {
		if tools[i].Name != name {
			t.Fatalf("expected %s at %d, got %s", name, i, tools[i].Name)
		}
	}

	// Category match is case-insensitive.
	byCategory, err := repo.ListToolsByCategory(ctx, "ai-assist")
	if err != nil {
		t.Fatalf("ListToolsByCategory: %v", err)
	}
	if len(byCategory) != 2 {
		t.Fatalf("expected 2 ai-assist tools, got %d", len(byCategory))
	}
}

func TestMemoryRepoCompatibilityPairOrder(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	record := Compatibility{ToolAID: "b", ToolBID: "a", Score: 77}
	if err := repo.UpsertCompatibility(ctx, record); err != nil {
		t.Fatalf("UpsertCompatibility: %v", err)
	}

	for _, pair := range [][2]string{{"a", "b"}, {"b", "a"}} {
		got, err := repo.GetCompatibility(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("GetCompatibility(%s, %s): %v", pair[0], pair[1], err)
		}
		if got.Score != 77 {
			t.Fatalf("unexpected score: %+v", got)
		}
	}

	if _, err := repo.GetCompatibility(ctx, "a", "c"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown pair, got %v", err)
	}
}

func TestMemoryRepoHonorsContextCancellation(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.ListTools(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if err := repo.CreateTool(ctx, Tool{ID: "t1", Name: "X"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
