package shared

// Task type names shared between the API (producer) and the worker
// (consumer). Keep these in one place so both binaries agree.
const (
	TypeGenerateSummary = "page:generate_summary"
	TypeRefreshPage     = "page:refresh"
	TypeRefreshScan     = "page:refresh_scan"
)

// SummaryPayload carries the target page for a summary generation task.
type SummaryPayload struct {
	PageID string `json:"pageId"`
}

// RefreshPayload carries the target page for a background re-acquisition.
type RefreshPayload struct {
	PageID string `json:"pageId"`
	Depth  int    `json:"depth"`
}
