// Package controller binds user intents to the extraction service and
// renders each reply into a View.
//
// Every operation takes the view from idle to busy and back to idle, and no
// failure path leaves a control disabled. Each request is sent once; there
// are no retries and no cancellation by a later identical action.
package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dtnitsch/product-extractor/models"
	"github.com/dtnitsch/product-extractor/pkg/apiclient"
	"github.com/dtnitsch/product-extractor/pkg/render"
	"golang.org/x/sync/errgroup"
)

// API is the extraction service as seen by the controller.
// *apiclient.Client implements it.
type API interface {
	Extract(ctx context.Context, pageURL string) apiclient.Result[models.ExtractResponse]
	Stats(ctx context.Context) apiclient.Result[[]models.StatEntry]
	Recent(ctx context.Context) apiclient.Result[[]models.RecentEntry]
	CreateTestSet(ctx context.Context, sampleSize int) apiclient.Result[models.TaskResponse]
	Metrics(ctx context.Context) apiclient.Result[models.MetricsResponse]
	Batch(ctx context.Context, req models.BatchRequest) apiclient.Result[models.TaskResponse]
}

// Options tune a Controller. Zero values select the defaults.
type Options struct {
	// Logger receives diagnostics for failures the user only sees as a
	// generic message.
	Logger *slog.Logger

	SampleSize int
	// BatchSize and StartIndex are used when the batch form fields hold
	// no number.
	BatchSize  int
	StartIndex int
}

type Controller struct {
	view   View
	api    API
	logger *slog.Logger

	sampleSize int
	batchSize  int
	startIndex int
}

func New(view View, api API, opts Options) *Controller {
	c := &Controller{
		view:       view,
		api:        api,
		logger:     opts.Logger,
		sampleSize: opts.SampleSize,
		batchSize:  opts.BatchSize,
		startIndex: opts.StartIndex,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.sampleSize <= 0 {
		c.sampleSize = models.DefaultSampleSize
	}
	if c.batchSize <= 0 {
		c.batchSize = models.DefaultBatchSize
	}
	return c
}

// SubmitExtraction runs one extraction of url and renders the outcome.
// On success the stats and history are refreshed before it returns.
func (c *Controller) SubmitExtraction(ctx context.Context, url string) error {
	if url == "" {
		return ErrEmptyURL
	}

	submit := c.view.Trigger(TriggerSubmit)
	c.view.SetLoading(true)
	c.view.SetResults(nil)
	c.view.SetTrigger(TriggerSubmit, TriggerState{Enabled: false, Label: submit.Label})

	res := c.api.Extract(ctx, url)

	c.view.SetLoading(false)
	c.view.SetTrigger(TriggerSubmit, TriggerState{Enabled: true, Label: submit.Label})

	switch res.Kind {
	case apiclient.KindTransportError:
		err := failure("extract", res)
		c.logger.Error("extraction request failed", "url", url, "error", err)
		c.view.SetResults(render.ExtractionError(render.MsgRequestFailed))
		return err
	case apiclient.KindAppError:
		c.logger.Info("extraction rejected", "url", url, "status_code", res.StatusCode, "error", res.Message)
		c.view.SetResults(render.ExtractionError(res.Message))
		return failure("extract", res)
	}

	c.logger.Info("extraction finished", "url", url, "products", len(res.Value.Products))
	c.view.SetResults(render.Products(res.Value.Products))

	// Refresh failures are logged by the refresh itself and never fail
	// the extraction.
	_ = c.RefreshHistory(ctx)
	return nil
}

// ActivateRecent re-runs the extraction of a history entry.
func (c *Controller) ActivateRecent(ctx context.Context, url string) error {
	c.view.SetURL(url)
	return c.SubmitExtraction(ctx, url)
}

// RefreshStats replaces the stats region. On failure the region is left
// as it was.
func (c *Controller) RefreshStats(ctx context.Context) error {
	res := c.api.Stats(ctx)
	if !res.OK() {
		err := failure("stats", res)
		c.logger.Error("error fetching stats", "error", err)
		return err
	}
	c.view.SetStats(render.Stats(res.Value))
	return nil
}

// RefreshRecent replaces the history region.
func (c *Controller) RefreshRecent(ctx context.Context) error {
	res := c.api.Recent(ctx)
	if !res.OK() {
		err := failure("recent", res)
		c.logger.Error("error fetching recent urls", "error", err)
		return err
	}
	c.view.SetRecent(render.Recent(res.Value))
	return nil
}

// RefreshHistory refreshes stats and history concurrently and waits for
// both. Neither refresh waits on or cancels the other.
func (c *Controller) RefreshHistory(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.RefreshStats(ctx) })
	g.Go(func() error { return c.RefreshRecent(ctx) })
	return g.Wait()
}

// RequestTestSetCreation asks the service to build an evaluation sample.
// A sampleSize of zero or less uses the configured default.
func (c *Controller) RequestTestSetCreation(ctx context.Context, sampleSize int) error {
	if sampleSize <= 0 {
		sampleSize = c.sampleSize
	}

	restore := c.busy(TriggerTestSet, render.LabelCreatingTestSet)
	defer restore()

	res := c.api.CreateTestSet(ctx, sampleSize)
	if err := notifyFailure(c, "create test set", res); err != nil {
		return err
	}
	c.logger.Info("test set creation started", "sample_size", sampleSize, "message", res.Value.Message)
	c.view.Notify(render.MsgTestSetStarted)
	return nil
}

// RequestModelEvaluation fetches the model's quality scores and shows them.
// The full metrics, per-URL results included, are returned for callers that
// present more than the panel does.
func (c *Controller) RequestModelEvaluation(ctx context.Context) (*models.Metrics, error) {
	restore := c.busy(TriggerEvaluate, render.LabelEvaluating)
	defer restore()

	res := c.api.Metrics(ctx)
	if err := notifyFailure(c, "metrics", res); err != nil {
		return nil, err
	}
	m := res.Value.Metrics
	c.view.SetMetrics(render.Metrics(*m))
	return m, nil
}

// RunBatch starts processing batchSize URLs of the dataset from startIndex.
// Out-of-range input is reported without a request or any busy state.
func (c *Controller) RunBatch(ctx context.Context, batchSize, startIndex int) error {
	req := models.BatchRequest{BatchSize: batchSize, StartIndex: startIndex}
	if err := req.Validate(); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.view.Notify(verr.Message)
		}
		return err
	}

	prev := c.view.Trigger(TriggerBatch)
	c.view.SetTrigger(TriggerBatch, TriggerState{Enabled: false, Label: prev.Label})
	c.view.ShowBatchStatus()
	defer func() {
		c.view.SetTrigger(TriggerBatch, TriggerState{Enabled: true, Label: prev.Label})
		c.view.ShowBatchStatus()
	}()

	res := c.api.Batch(ctx, req)
	if err := notifyFailure(c, "batch", res); err != nil {
		return err
	}
	c.logger.Info("batch processing started",
		"batch_size", batchSize, "start_index", startIndex,
		"total_urls", res.Value.TotalURLs, "message", res.Value.Message)
	c.view.Notify(render.MsgBatchStarted)
	return nil
}

// Handlers returns the intent handlers for a view. Errors are already shown
// to the user by the operations, so the handlers drop them.
func (c *Controller) Handlers(ctx context.Context) Handlers {
	return Handlers{
		Submit: func(url string) {
			_ = c.SubmitExtraction(ctx, url)
		},
		ActivateRecent: func(url string) {
			_ = c.ActivateRecent(ctx, url)
		},
		CreateTestSet: func() {
			_ = c.RequestTestSetCreation(ctx, c.sampleSize)
		},
		EvaluateModel: func() {
			_, _ = c.RequestModelEvaluation(ctx)
		},
		RunBatch: func(batchSize, startIndex string) {
			_ = c.RunBatch(ctx, parseField(batchSize, c.batchSize), parseField(startIndex, c.startIndex))
		},
	}
}

// Attach binds the controller's handlers to its view.
func (c *Controller) Attach(ctx context.Context) {
	c.view.Bind(c.Handlers(ctx))
}

// busy disables a trigger under a busy caption and returns a func that
// restores the state it had before.
func (c *Controller) busy(id TriggerID, label string) func() {
	prev := c.view.Trigger(id)
	c.view.SetTrigger(id, TriggerState{Enabled: false, Label: label})
	return func() {
		c.view.SetTrigger(id, prev)
	}
}

// notifyFailure shows an unsuccessful result as a notice and returns it as
// an error. It returns nil for a success.
func notifyFailure[T any](c *Controller, op string, res apiclient.Result[T]) error {
	switch res.Kind {
	case apiclient.KindAppError:
		c.view.Notify(render.ErrorNotice(res.Message))
	case apiclient.KindTransportError:
		c.logger.Error("request failed", "op", op, "error", res.Err)
		c.view.Notify(render.MsgNoticeRequestFailed)
	default:
		return nil
	}
	return failure(op, res)
}
