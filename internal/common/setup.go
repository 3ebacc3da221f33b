package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/product-extractor/internal/terminal"
	"github.com/dtnitsch/product-extractor/models"
	"github.com/dtnitsch/product-extractor/pkg/apiclient"
	"github.com/dtnitsch/product-extractor/pkg/controller"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitRejected = 1 // service error or out-of-range input
	ExitFailed   = 2 // unreachable service, bad reply, bad setup
)

// GlobalFlags returns the flags shared by every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Usage:   "Extraction service base URL",
			Value:   models.DefaultServerURL,
			EnvVars: []string{"EXTRACTOR_SERVER"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Per-request timeout",
			Value:   models.DefaultTimeout,
			EnvVars: []string{"EXTRACTOR_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "config",
			Usage:   "YAML config file",
			EnvVars: []string{"EXTRACTOR_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "Output format: text, json, yaml",
			Value:   FormatText,
			EnvVars: []string{"EXTRACTOR_FORMAT"},
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Usage:   "Only log errors",
			EnvVars: []string{"EXTRACTOR_QUIET"},
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Usage:   "Disable colored output",
			EnvVars: []string{"EXTRACTOR_NO_COLOR"},
		},
	}
}

// Session bundles everything a command needs for one run.
type Session struct {
	Config     models.ClientConfig
	Format     string
	Logger     *slog.Logger
	Client     *apiclient.Client
	View       *terminal.View
	Controller *controller.Controller
	Out        io.Writer

	opts controller.Options
}

// NewSession resolves configuration from defaults, the config file and
// flags, in that order, and wires the client, view and controller.
func NewSession(c *cli.Context) (*Session, error) {
	out, errOut := c.App.Writer, c.App.ErrWriter
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(errOut, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, cli.Exit(err.Error(), ExitFailed)
	}
	if c.IsSet("server") {
		cfg.ServerURL = c.String("server")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}

	format := strings.ToLower(c.String("format"))
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, cli.Exit(fmt.Sprintf("unknown format %q (want text, json or yaml)", format), ExitFailed)
	}

	client, err := apiclient.NewClient(cfg.ServerURL, cfg.Timeout)
	if err != nil {
		return nil, cli.Exit(err.Error(), ExitFailed)
	}

	view := terminal.NewView(out, errOut, UseColors(c, out))
	opts := controller.Options{
		Logger:     logger,
		SampleSize: cfg.SampleSize,
		BatchSize:  cfg.BatchSize,
		StartIndex: cfg.StartIndex,
	}

	logger.Info("session ready", "server", cfg.ServerURL, "timeout", cfg.Timeout.String(), "format", format)
	return &Session{
		Config:     cfg,
		Format:     format,
		Logger:     logger,
		Client:     client,
		View:       view,
		Controller: controller.New(view, client, opts),
		Out:        out,
		opts:       opts,
	}, nil
}

// PageController returns a controller driving view with the session's
// client and settings.
func (s *Session) PageController(view controller.View) *controller.Controller {
	return controller.New(view, s.Client, s.opts)
}

// Text reports whether output goes through the terminal view.
func (s *Session) Text() bool {
	return s.Format == FormatText
}

// UseColors reports whether w should get ANSI colors. NO_COLOR and
// TERM=dumb turn colors off, as does anything that is not a terminal.
func UseColors(c *cli.Context, w io.Writer) bool {
	if c.Bool("no-color") || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Emit writes v to the session output as JSON or YAML.
func (s *Session) Emit(v any) error {
	var data []byte
	var err error
	if s.Format == FormatYAML {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to marshal output: %v", err), ExitFailed)
	}
	fmt.Fprintln(s.Out, strings.TrimRight(string(data), "\n"))
	return nil
}

// FailureOutput is emitted in place of a reply that did not succeed.
type FailureOutput struct {
	Success bool   `json:"success" yaml:"success"`
	Kind    string `json:"kind" yaml:"kind"`
	Error   string `json:"error" yaml:"error"`
}

// NewFailureOutput describes an unsuccessful result.
func NewFailureOutput[T any](res apiclient.Result[T]) FailureOutput {
	msg := res.Message
	if res.Kind == apiclient.KindTransportError && res.Err != nil {
		msg = res.Err.Error()
	}
	return FailureOutput{Kind: res.Kind.String(), Error: msg}
}

// EmitResult writes the decoded reply, or a FailureOutput, and returns the
// matching exit error.
func EmitResult[T any](s *Session, res apiclient.Result[T]) error {
	if res.OK() {
		return s.Emit(res.Value)
	}
	if err := s.Emit(NewFailureOutput(res)); err != nil {
		return err
	}
	return ExitForKind(res.Kind)
}

// ExitForKind maps a result kind to an exit error, nil for success.
// The message is left empty because the failure has already been shown.
func ExitForKind(k apiclient.Kind) error {
	switch k {
	case apiclient.KindSuccess:
		return nil
	case apiclient.KindAppError:
		return cli.Exit("", ExitRejected)
	default:
		return cli.Exit("", ExitFailed)
	}
}

// Exit maps an error returned by a controller operation to an exit error.
// Operations have already shown the failure, so the message is left empty.
func Exit(err error) error {
	if err == nil {
		return nil
	}
	var appErr *controller.AppError
	var verr *models.ValidationError
	switch {
	case errors.As(err, &appErr), errors.As(err, &verr), errors.Is(err, controller.ErrEmptyURL):
		return cli.Exit("", ExitRejected)
	default:
		return cli.Exit("", ExitFailed)
	}
}

// Worst keeps the highest exit code seen across several operations.
func Worst(codes ...int) int {
	worst := ExitOK
	for _, code := range codes {
		worst = max(worst, code)
	}
	return worst
}

// Code returns the exit code an error carries.
func Code(err error) int {
	if err == nil {
		return ExitOK
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitFailed
}

// ExitWith turns an exit code into an exit error, nil for ExitOK.
func ExitWith(code int) error {
	if code == ExitOK {
		return nil
	}
	return cli.Exit("", code)
}

// Fail is Exit for failures nothing has shown yet; the message is printed
// on exit.
func Fail(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit(err.Error(), Code(Exit(err)))
}
