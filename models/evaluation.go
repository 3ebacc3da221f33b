package models

// TestSetRequest is the body of POST /create_test_set.
type TestSetRequest struct {
	SampleSize int `json:"sample_size"`
}

// TaskResponse is the reply of the endpoints that start server-side work
// (POST /create_test_set, POST /batch). The work itself runs asynchronously.
type TaskResponse struct {
	Success   bool   `json:"success" yaml:"success"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	TotalURLs int    `json:"total_urls,omitempty" yaml:"total_urls,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// URLResult is the per-URL breakdown of an evaluation run.
type URLResult struct {
	URL            string `json:"url" yaml:"url"`
	TrueCount      int    `json:"true_count" yaml:"true_count"`
	PredictedCount int    `json:"predicted_count" yaml:"predicted_count"`
	CorrectCount   int    `json:"correct_count" yaml:"correct_count"`
	Status         string `json:"status" yaml:"status"`
}

// Metrics are the quality scores of the extractor, each in [0,1].
type Metrics struct {
	Precision  float64     `json:"precision" yaml:"precision"`
	Recall     float64     `json:"recall" yaml:"recall"`
	F1Score    float64     `json:"f1_score" yaml:"f1_score"`
	URLResults []URLResult `json:"url_results,omitempty" yaml:"url_results,omitempty"`

	// Set by the evaluator instead of scores when it has no test data.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// MetricsResponse is the reply of GET /metrics.
type MetricsResponse struct {
	Success bool     `json:"success" yaml:"success"`
	Metrics *Metrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}
