package models

import "fmt"

// DatasetSize is the number of URLs in the service's batch dataset.
const DatasetSize = 704

// BatchRequest is the body of POST /batch.
type BatchRequest struct {
	BatchSize  int `json:"batch_size"`
	StartIndex int `json:"start_index"`
}

// ValidationError reports a request field outside its allowed range.
type ValidationError struct {
	Field   string
	Value   int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Message)
}

// Validate checks the bounds of the dataset slice. Batch size is checked
// before start index, so only the first violation is reported.
func (r BatchRequest) Validate() error {
	if r.BatchSize < 1 || r.BatchSize > DatasetSize {
		return &ValidationError{
			Field:   "batch_size",
			Value:   r.BatchSize,
			Message: fmt.Sprintf("Batch size must be between 1 and %d", DatasetSize),
		}
	}
	if r.StartIndex < 0 || r.StartIndex > DatasetSize-1 {
		return &ValidationError{
			Field:   "start_index",
			Value:   r.StartIndex,
			Message: fmt.Sprintf("Start index must be between 0 and %d", DatasetSize-1),
		}
	}
	return nil
}
