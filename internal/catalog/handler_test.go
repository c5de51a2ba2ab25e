package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, repo Repo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(&Service{Repo: repo})
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandlerCreateAndGetTool(t *testing.T) {
	router := newTestRouter(t, NewMemoryRepo())

	body := map[string]any{
		"name":                "Copilot",
		"category":            "ai-assist",
		"supported_languages": []string{"Go", "Python"},
		"maturity_score":      85,
		"popularity_score":    95,
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected generated id in response")
	}
	langs, _ := created["supported_languages"].([]any)
	if len(langs) != 2 {
		t.Fatalf("unexpected supported_languages: %v", created["supported_languages"])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tools/"+id, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestHandlerCreateDuplicateConflict(t *testing.T) {
	router := newTestRouter(t, NewMemoryRepo())

	payload, _ := json.Marshal(map[string]any{"name": "Copilot", "category": "ai-assist"})
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tools", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i+1, want, resp.Code)
		}
	}
}

func TestHandlerCreateValidationError(t *testing.T) {
	router := newTestRouter(t, NewMemoryRepo())

	payload, _ := json.Marshal(map[string]any{"name": "", "category": ""})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandlerGetUnknownTool(t *testing.T) {
	router := newTestRouter(t, NewMemoryRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tools/missing", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHandlerDeleteTool(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.CreateTool(context.Background(), Tool{ID: "t1", Name: "Copilot", Category: "ai-assist"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/tools/t1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/tools/t1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", resp.Code)
	}
}

func TestHandlerListSummaryAndPagination(t *testing.T) {
	repo := NewMemoryRepo()
	seed := []Tool{
		{ID: "t1", Name: "Copilot", Category: "ai-assist"},
		{ID: "t2", Name: "Cody", Category: "ai-assist"},
		{ID: "t3", Name: "Vercel", Category: "dev-env"},
	}
	for _, tool := range seed {
		if err := repo.CreateTool(context.Background(), tool); err != nil {
			t.Fatalf("seed %s: %v", tool.Name, err)
		}
	}
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tools?summary=true&per_page=2", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Tools      []map[string]any `json:"tools"`
		Pagination struct {
			Total   int  `json:"total"`
			Pages   int  `json:"pages"`
			HasNext bool `json:"has_next"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Tools) != 2 {
		t.Fatalf("expected 2 tools on page, got %d", len(payload.Tools))
	}
	if payload.Pagination.Total != 3 || payload.Pagination.Pages != 2 || !payload.Pagination.HasNext {
		t.Fatalf("unexpected pagination: %+v", payload.Pagination)
	}
	if _, ok := payload.Tools[0]["features"]; ok {
		t.Fatalf("summary response should not include features")
	}
}

func TestHandlerStats(t *testing.T) {
	repo := NewMemoryRepo()
	for _, tool := range []Tool{
		{ID: "t1", Name: "Copilot", Category: "ai-assist"},
		{ID: "t2", Name: "Vercel", Category: "dev-env"},
	} {
		if err := repo.CreateTool(context.Background(), tool); err != nil {
			t.Fatalf("seed %s: %v", tool.Name, err)
		}
	}
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		TotalTools        int            `json:"total_tools"`
		TotalCategories   int            `json:"total_categories"`
		CategoryBreakdown map[string]int `json:"category_breakdown"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.TotalTools != 2 || payload.TotalCategories != 2 {
		t.Fatalf("unexpected stats: %+v", payload)
	}
	if payload.CategoryBreakdown["ai-assist"] != 1 {
		t.Fatalf("unexpected breakdown: %+v", payload.CategoryBreakdown)
	}
}
