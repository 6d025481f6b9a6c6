package models

// Settings holds the per-user quota configuration.
type Settings struct {
	UserID string `json:"userId"`

	// ReportLimit caps how many reports the user may hold.
	// nil means unlimited.
	ReportLimit *int `json:"reportLimit"`
}

// DefaultCostPerToken prices generation when the admin has not
// configured a rate.
const DefaultCostPerToken = 0.00002

// AdminSettings holds the global application settings managed by
// administrators. Stored, not interpreted, except CostPerToken which
// prices report generation.
type AdminSettings struct {
	APIKey       string  `json:"apiKey"`
	CostPerToken float64 `json:"costPerToken"`
	LogoURL      string  `json:"logoUrl"`
	FooterText   string  `json:"footerText"`
}

// UsageSummary is the derived per-user usage/quota view. It is computed
// fresh from the report collection on every query and never stored.
type UsageSummary struct {
	TotalReports int     `json:"totalReports"`
	TotalTokens  int64   `json:"totalTokens"`
	TotalCost    float64 `json:"totalCost"`

	// ReportLimit mirrors the user's Settings; nil means unlimited.
	ReportLimit *int `json:"reportLimit"`

	// RemainingReports is max(0, reportLimit-totalReports); nil when
	// unlimited.
	RemainingReports *int `json:"remainingReports"`

	// CanGenerate is true when no limit is set or the limit has not
	// been reached.
	CanGenerate bool `json:"canGenerate"`
}
