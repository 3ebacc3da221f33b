// Package terminal implements controller.View for the command line.
// Regions are printed as they are replaced; lists become borderless tables.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dtnitsch/product-extractor/models"
	"github.com/dtnitsch/product-extractor/pkg/controller"
	"github.com/dtnitsch/product-extractor/pkg/render"
	"github.com/fatih/color"
)

const (
	headingStats  = "Top products"
	headingRecent = "Recent requests"
	batchRunning  = "Batch processing is running in the background."
	loadingText   = "Extracting products"
)

type View struct {
	mu        sync.Mutex
	out       io.Writer
	err       io.Writer
	useColors bool

	url        string
	triggers   map[controller.TriggerID]controller.TriggerState
	batchShown bool
	notices    []string
}

// NewView returns a view printing regions to out and progress and notices
// to errOut.
func NewView(out, errOut io.Writer, useColors bool) *View {
	return &View{
		out:       out,
		err:       errOut,
		useColors: useColors,
		triggers:  map[controller.TriggerID]controller.TriggerState{},
	}
}

func (v *View) SetURL(url string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.url = url
}

func (v *View) SetLoading(visible bool) {
	if !visible {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.url == "" {
		v.faint(v.err, "%s...", loadingText)
		return
	}
	v.faint(v.err, "%s from %s...", loadingText, v.url)
}

func (v *View) SetResults(n *render.Node) {
	if n == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printNode(n)
}

func (v *View) SetStats(n *render.Node) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.heading(headingStats)
	v.printNode(n)
}

func (v *View) SetRecent(n *render.Node) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.heading(headingRecent)
	v.printNode(n)
}

func (v *View) Trigger(id controller.TriggerID) controller.TriggerState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state, ok := v.triggers[id]
	if !ok {
		return controller.TriggerState{Enabled: true}
	}
	return state
}

func (v *View) SetTrigger(id controller.TriggerID, state controller.TriggerState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	prev := v.triggers[id]
	v.triggers[id] = state
	if !state.Enabled && state.Label != "" && state.Label != prev.Label {
		v.faint(v.err, "%s", state.Label)
	}
}

func (v *View) SetMetrics(m render.MetricValues) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.heading("Model quality")
	writeTable(v.out, nil, [][]string{
		{"Precision", m.Precision},
		{"Recall", m.Recall},
		{"F1", m.F1Score},
	})
}

// ShowBatchStatus prints the status line once; revealing an already
// visible panel changes nothing.
func (v *View) ShowBatchStatus() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.batchShown {
		return
	}
	v.batchShown = true
	v.faint(v.err, "%s", batchRunning)
}

func (v *View) Notify(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, msg)
	if v.useColors {
		color.New(color.FgCyan).Fprintln(v.err, msg)
		return
	}
	fmt.Fprintln(v.err, msg)
}

// Table prints a titled table outside the page regions.
func (v *View) Table(title string, header []string, rows [][]string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.heading(title)
	writeTable(v.out, header, rows)
}

// Bind is a no-op: the CLI calls controller operations directly.
func (v *View) Bind(controller.Handlers) {}

// Notices returns every notice shown so far.
func (v *View) Notices() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.notices...)
}

// printNode prints top-level blocks in order. Lists become tables with one
// row per item and one cell per child element.
func (v *View) printNode(n *render.Node) {
	if n == nil {
		return
	}
	if n.IsFragment() {
		for _, c := range n.Children {
			v.printNode(c)
		}
		return
	}

	switch {
	case n.Tag == "ul":
		v.printList(n)
	case n.HasClass("error-message"):
		v.errorLine(render.Text(n))
	default:
		if text := render.Text(n); text != "" {
			fmt.Fprintln(v.out, text)
		}
	}
}

func (v *View) printList(ul *render.Node) {
	rows := make([][]string, 0, len(ul.Children))
	width := 0
	for _, li := range ul.Children {
		var row []string
		switch {
		case li.HasClass(models.StatusSuccess):
			row = append(row, v.dot(true))
		case li.HasClass(models.StatusError):
			row = append(row, v.dot(false))
		}
		for _, cell := range li.Children {
			row = append(row, strings.TrimSpace(render.Text(cell)))
		}
		rows = append(rows, row)
		width = max(width, len(row))
	}
	// Optional cells such as a history date leave short rows.
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
	}
	writeTable(v.out, nil, rows)
}

func (v *View) dot(ok bool) string {
	if !v.useColors {
		if ok {
			return "[OK]"
		}
		return "[ERR]"
	}
	if ok {
		return color.GreenString("●")
	}
	return color.RedString("●")
}

func (v *View) heading(title string) {
	if v.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(v.out, "\n%s\n", title)
		return
	}
	fmt.Fprintf(v.out, "\n%s\n", title)
}

func (v *View) errorLine(text string) {
	if v.useColors {
		color.New(color.FgRed).Fprintln(v.out, text)
		return
	}
	fmt.Fprintln(v.out, text)
}

func (v *View) faint(w io.Writer, format string, args ...any) {
	if v.useColors {
		color.New(color.Faint).Fprintf(w, format+"\n", args...)
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
