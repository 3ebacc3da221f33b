package batch

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/product-extractor/internal/common"
	"github.com/dtnitsch/product-extractor/models"
	"github.com/urfave/cli/v2"
)

// Commands returns the batch command.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "batch",
			Usage: "Process a slice of the URL dataset in the background",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "batch-size", Usage: fmt.Sprintf("URLs to process, 1..%d (default from config, 50)", models.DatasetSize)},
				&cli.IntFlag{Name: "start-index", Usage: fmt.Sprintf("First URL, 0..%d (default from config, 0)", models.DatasetSize-1)},
			},
			Action: BatchAction,
		},
	}
}

func BatchAction(c *cli.Context) error {
	s, err := common.NewSession(c)
	if err != nil {
		return err
	}

	req := models.BatchRequest{BatchSize: s.Config.BatchSize, StartIndex: s.Config.StartIndex}
	if c.IsSet("batch-size") {
		req.BatchSize = c.Int("batch-size")
	}
	if c.IsSet("start-index") {
		req.StartIndex = c.Int("start-index")
	}

	if s.Text() {
		return common.Exit(s.Controller.RunBatch(c.Context, req.BatchSize, req.StartIndex))
	}

	if err := req.Validate(); err != nil {
		var verr *models.ValidationError
		msg := err.Error()
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		if err := s.Emit(common.FailureOutput{Kind: "validation_error", Error: msg}); err != nil {
			return err
		}
		return common.ExitWith(common.ExitRejected)
	}
	return common.EmitResult(s, s.Client.Batch(c.Context, req))
}
