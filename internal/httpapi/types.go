package httpapi

// IngestStatus mirrors the one-at-a-time rebuild state for the UI.
type IngestStatus struct {
	LastRunAt   string `json:"last_run_at"`
	LastOkAt    string `json:"last_ok_at"`
	LastError   string `json:"last_error"`
	LastAdded   int    `json:"last_added"`
	Restaurants int    `json:"restaurants"`
	Running     bool   `json:"running"`
}
