package controller

import "github.com/dtnitsch/product-extractor/pkg/render"

// TriggerID names a control whose busy state the controller manages.
// Values double as element IDs in HTML views.
type TriggerID string

const (
	TriggerSubmit   TriggerID = "submit-btn"
	TriggerTestSet  TriggerID = "create-test-set-btn"
	TriggerEvaluate TriggerID = "evaluate-model-btn"
	TriggerBatch    TriggerID = "run-batch-btn"
)

// TriggerState is the observable state of a control.
type TriggerState struct {
	Enabled bool
	Label   string
}

// Handlers are the user intents a view dispatches to the controller.
// ActivateRecent is delegated: one handler serves every history entry,
// keyed by the entry's render.RecentURLAttr value.
type Handlers struct {
	Submit         func(url string)
	ActivateRecent func(url string)
	CreateTestSet  func()
	EvaluateModel  func()
	RunBatch       func(batchSize, startIndex string)
}

// View is the document the controller renders into. Implementations must
// be safe for concurrent use; the controller refreshes stats and history
// from separate goroutines.
type View interface {
	SetURL(url string)
	SetLoading(visible bool)

	// SetResults, SetStats and SetRecent replace the region's content.
	// A nil node clears it.
	SetResults(n *render.Node)
	SetStats(n *render.Node)
	SetRecent(n *render.Node)

	Trigger(id TriggerID) TriggerState
	SetTrigger(id TriggerID, state TriggerState)

	// SetMetrics reveals the metrics panel and writes the values into it.
	SetMetrics(v render.MetricValues)
	ShowBatchStatus()

	// Notify shows a short message to the user.
	Notify(msg string)

	Bind(h Handlers)
}
