package render

import (
	"fmt"

	"github.com/dtnitsch/product-extractor/models"
)

// MetricValues holds display strings for the metrics panel.
type MetricValues struct {
	Precision string
	Recall    string
	F1Score   string
}

// Percent formats a 0..1 score as a percentage with two decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// Metrics formats all three scores.
func Metrics(m models.Metrics) MetricValues {
	return MetricValues{
		Precision: Percent(m.Precision),
		Recall:    Percent(m.Recall),
		F1Score:   Percent(m.F1Score),
	}
}
