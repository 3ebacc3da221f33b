package extract

import (
	"fmt"

	"github.com/dtnitsch/product-extractor/internal/common"
	"github.com/dtnitsch/product-extractor/models"
	"github.com/dtnitsch/product-extractor/pkg/apiclient"
	"github.com/dtnitsch/product-extractor/pkg/controller"
	"github.com/dtnitsch/product-extractor/pkg/page"
	"github.com/dtnitsch/product-extractor/pkg/render"
	"github.com/dtnitsch/product-extractor/pkg/storage"
	"github.com/urfave/cli/v2"
)

// Commands returns the extraction and history commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "extract",
			Usage:     "Extract product names from one or more pages",
			ArgsUsage: "URL [URL...]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "urls", Usage: "Comma-separated URLs"},
			},
			Action: ExtractAction,
		},
		{
			Name:   "stats",
			Usage:  "Show the most frequently found products",
			Action: StatsAction,
		},
		{
			Name:   "recent",
			Usage:  "Show recently processed URLs",
			Action: RecentAction,
		},
		{
			Name:      "page",
			Usage:     "Render the interactive page as HTML after running URLs through it",
			ArgsUsage: "[URL...]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write HTML to a file instead of stdout"},
				&cli.BoolFlag{Name: "metrics", Usage: "Also run a model evaluation"},
			},
			Action: PageAction,
		},
	}
}

// Output is one extraction in JSON or YAML output.
type Output struct {
	URL      string           `json:"url" yaml:"url"`
	Success  bool             `json:"success" yaml:"success"`
	Kind     string           `json:"kind" yaml:"kind"`
	Products []models.Product `json:"products,omitempty" yaml:"products,omitempty"`
	Count    int              `json:"count" yaml:"count"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
}

func newOutput(url string, res apiclient.Result[models.ExtractResponse]) Output {
	if !res.OK() {
		failure := common.NewFailureOutput(res)
		return Output{URL: url, Kind: failure.Kind, Error: failure.Error}
	}
	products := render.SortProducts(res.Value.Products)
	return Output{
		URL:      url,
		Success:  true,
		Kind:     res.Kind.String(),
		Products: products,
		Count:    len(products),
	}
}

func ExtractAction(c *cli.Context) error {
	s, err := common.NewSession(c)
	if err != nil {
		return err
	}

	urls := common.CollectURLs(c.Args().Slice(), c.String("urls"))
	if len(urls) == 0 {
		return cli.Exit("at least one URL is required (argument or --urls)", common.ExitRejected)
	}
	s.Logger.Info("extracting", "urls", len(urls))

	codes := make([]int, 0, len(urls))
	if !s.Text() {
		outputs := make([]Output, 0, len(urls))
		for _, u := range urls {
			res := s.Client.Extract(c.Context, u)
			outputs = append(outputs, newOutput(u, res))
			codes = append(codes, common.Code(common.ExitForKind(res.Kind)))
		}
		if err := s.Emit(outputs); err != nil {
			return err
		}
		return common.ExitWith(common.Worst(codes...))
	}

	for _, u := range urls {
		s.View.SetURL(u)
		err := s.Controller.SubmitExtraction(c.Context, u)
		codes = append(codes, common.Code(common.Exit(err)))
	}
	return common.ExitWith(common.Worst(codes...))
}

func StatsAction(c *cli.Context) error {
	s, err := common.NewSession(c)
	if err != nil {
		return err
	}
	if !s.Text() {
		return common.EmitResult(s, s.Client.Stats(c.Context))
	}
	return common.Fail(s.Controller.RefreshStats(c.Context))
}

func RecentAction(c *cli.Context) error {
	s, err := common.NewSession(c)
	if err != nil {
		return err
	}
	if !s.Text() {
		return common.EmitResult(s, s.Client.Recent(c.Context))
	}
	return common.Fail(s.Controller.RefreshRecent(c.Context))
}

// PageAction drives the in-memory page the way a visitor would: it loads
// the history, submits each URL through the form and prints the document.
func PageAction(c *cli.Context) error {
	s, err := common.NewSession(c)
	if err != nil {
		return err
	}

	p, err := page.New()
	if err != nil {
		return cli.Exit(err.Error(), common.ExitFailed)
	}
	ctrl := s.PageController(p)
	ctrl.Attach(c.Context)

	// History failures leave the placeholders in place.
	_ = ctrl.RefreshHistory(c.Context)

	for _, u := range common.CollectURLs(c.Args().Slice(), "") {
		p.SetField(page.IDURLInput, u)
		p.Submit()
	}
	if c.Bool("metrics") {
		p.Click("#" + string(controller.TriggerEvaluate))
	}
	for _, notice := range p.Notices() {
		s.View.Notify(notice)
	}

	markup, err := p.HTML()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to render page: %v", err), common.ExitFailed)
	}

	if path := c.String("output"); path != "" {
		if err := storage.SaveFile(path, []byte(markup)); err != nil {
			return cli.Exit(err.Error(), common.ExitFailed)
		}
		s.Logger.Info("page written", "path", path, "bytes", len(markup))
		return nil
	}
	fmt.Fprintln(s.Out, markup)
	return nil
}
