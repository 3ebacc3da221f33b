package models

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatEntry is an aggregate count for one product name (GET /stats).
type StatEntry struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// RecentEntry is one item of the extraction history (GET /recent).
type RecentEntry struct {
	URL    string `json:"url" yaml:"url"`
	Count  int    `json:"count" yaml:"count"`
	Status string `json:"status" yaml:"status"` // success, error
	Date   string `json:"date,omitempty" yaml:"date,omitempty"`
}

// Succeeded reports whether the entry is styled as a successful extraction.
// Any status other than "success" is shown as an error.
func (e RecentEntry) Succeeded() bool {
	return e.Status == StatusSuccess
}
