package models

// ExtractionRequest is the body of POST /extract.
type ExtractionRequest struct {
	URL string `json:"url"`
}

// Product is a single item detected on a page.
type Product struct {
	Name       string  `json:"name" yaml:"name"`
	Confidence float64 `json:"confidence" yaml:"confidence"` // 0..1
}

// ExtractResponse is the reply of POST /extract.
// Either Products or Error is meaningful, never both.
type ExtractResponse struct {
	Success  bool      `json:"success" yaml:"success"`
	Products []Product `json:"products,omitempty" yaml:"products,omitempty"`
	Count    int       `json:"count,omitempty" yaml:"count,omitempty"`
	Error    string    `json:"error,omitempty" yaml:"error,omitempty"`
}
