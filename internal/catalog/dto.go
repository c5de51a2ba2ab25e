package catalog

import "time"

type toolResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Category             string    `json:"category"`
	Description          string    `json:"description"`
	URL                  string    `json:"url"`
	Frameworks           []string  `json:"frameworks"`
	Languages            []string  `json:"supported_languages"`
	Features             []string  `json:"features"`
	NativeIntegrations   []string  `json:"native_integrations"`
	VerifiedIntegrations []string  `json:"verified_integrations"`
	NotableStrengths     []string  `json:"notable_strengths"`
	KnownLimitations     []string  `json:"known_limitations"`
	MaturityScore        int       `json:"maturity_score"`
	PopularityScore      int       `json:"popularity_score"`
	Pricing              string    `json:"pricing"`
	Notes                string    `json:"notes,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type toolSummaryResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	MaturityScore   int    `json:"maturity_score"`
	PopularityScore int    `json:"popularity_score"`
}

type toolRequest struct {
	Name                 string   `json:"name"`
	Category             string   `json:"category"`
	Description          string   `json:"description"`
	URL                  string   `json:"url"`
	Frameworks           []string `json:"frameworks"`
	Languages            []string `json:"supported_languages"`
	Features             []string `json:"features"`
	NativeIntegrations   []string `json:"native_integrations"`
	VerifiedIntegrations []string `json:"verified_integrations"`
	NotableStrengths     []string `json:"notable_strengths"`
	KnownLimitations     []string `json:"known_limitations"`
	MaturityScore        int      `json:"maturity_score"`
	PopularityScore      int      `json:"popularity_score"`
	Pricing              string   `json:"pricing"`
	Notes                string   `json:"notes"`
}

func toResponse(tool Tool) toolResponse {
	return toolResponse{
		ID:                   tool.ID,
		Name:                 tool.Name,
		Category:             tool.Category,
		Description:          tool.Description,
		URL:                  tool.URL,
		Frameworks:           emptyIfNil(tool.Frameworks),
		Languages:            emptyIfNil(tool.Languages),
		Features:             emptyIfNil(tool.Features),
		NativeIntegrations:   emptyIfNil(tool.NativeIntegrations),
		VerifiedIntegrations: emptyIfNil(tool.VerifiedIntegrations),
		NotableStrengths:     emptyIfNil(tool.NotableStrengths),
		KnownLimitations:     emptyIfNil(tool.KnownLimitations),
		MaturityScore:        tool.MaturityScore,
		PopularityScore:      tool.PopularityScore,
		Pricing:              tool.Pricing,
		Notes:                tool.Notes,
		CreatedAt:            tool.CreatedAt,
		UpdatedAt:            tool.UpdatedAt,
	}
}

func toSummaryResponse(tool Tool) toolSummaryResponse {
	return toolSummaryResponse{
		ID:              tool.ID,
		Name:            tool.Name,
		Category:        tool.Category,
		Description:     tool.Description,
		URL:             tool.URL,
		MaturityScore:   tool.MaturityScore,
		PopularityScore: tool.PopularityScore,
	}
}

func (req toolRequest) toTool() Tool {
	return Tool{
		Name:                 req.Name,
		Category:             req.Category,
		Description:          req.Description,
		URL:                  req.URL,
		Frameworks:           req.Frameworks,
		Languages:            req.Languages,
		Features:             req.Features,
		NativeIntegrations:   req.NativeIntegrations,
		VerifiedIntegrations: req.VerifiedIntegrations,
		NotableStrengths:     req.NotableStrengths,
		KnownLimitations:     req.KnownLimitations,
		MaturityScore:        req.MaturityScore,
		PopularityScore:      req.PopularityScore,
		Pricing:              req.Pricing,
		Notes:                req.Notes,
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
