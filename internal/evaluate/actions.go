package evaluate

import (
	"strconv"

	"github.com/dtnitsch/product-extractor/internal/common"
	"github.com/dtnitsch/product-extractor/models"
	"github.com/dtnitsch/product-extractor/pkg/apiclient"
	"github.com/urfave/cli/v2"
)

// Commands returns the model evaluation commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "test-set",
			Usage: "Ask the service to build an evaluation sample",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "sample-size", Usage: "URLs to sample (default from config, 30)"},
			},
			Action: TestSetAction,
		},
		{
			Name:  "metrics",
			Usage: "Show precision, recall and F1 of the model",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "details", Usage: "Include per-URL results"},
			},
			Action: MetricsAction,
		},
	}
}

func TestSetAction(c *cli.Context) error {
	s, err := common.NewSession(c)
	if err != nil {
		return err
	}

	sampleSize := s.Config.SampleSize
	if c.IsSet("sample-size") {
		sampleSize = c.Int("sample-size")
	}
	if sampleSize <= 0 {
		sampleSize = models.DefaultSampleSize
	}

	if !s.Text() {
		return common.EmitResult(s, s.Client.CreateTestSet(c.Context, sampleSize))
	}
	return common.Exit(s.Controller.RequestTestSetCreation(c.Context, sampleSize))
}

func MetricsAction(c *cli.Context) error {
	s, err := common.NewSession(c)
	if err != nil {
		return err
	}
	details := c.Bool("details")

	if !s.Text() {
		res := s.Client.Metrics(c.Context)
		if res.OK() && !details {
			res = withoutDetails(res)
		}
		return common.EmitResult(s, res)
	}

	m, err := s.Controller.RequestModelEvaluation(c.Context)
	if err != nil {
		return common.Exit(err)
	}
	if details && len(m.URLResults) > 0 {
		s.View.Table("Per-URL results", []string{"URL", "True", "Predicted", "Correct", "Status"}, urlRows(m.URLResults))
	}
	return nil
}

func withoutDetails(res apiclient.Result[models.MetricsResponse]) apiclient.Result[models.MetricsResponse] {
	m := *res.Value.Metrics
	m.URLResults = nil
	res.Value.Metrics = &m
	return res
}

func urlRows(results []models.URLResult) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.URL,
			strconv.Itoa(r.TrueCount),
			strconv.Itoa(r.PredictedCount),
			strconv.Itoa(r.CorrectCount),
			r.Status,
		})
	}
	return rows
}
