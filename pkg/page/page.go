// Package page is an in-memory rendition of the extractor's index page.
//
// A Page holds the HTML document as a goquery tree and implements
// controller.View against it, so the whole interaction flow can run without
// a browser. Submit, Click and SetField stand in for user input; Notices
// collects what a browser would show as alerts.
package page

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/product-extractor/pkg/controller"
	"github.com/dtnitsch/product-extractor/pkg/render"
)

//go:embed index.html
var indexHTML string

// Element IDs the page must carry.
const (
	IDForm        = "extract-form"
	IDURLInput    = "url-input"
	IDLoading     = "loading"
	IDResults     = "results"
	IDStats       = "stats"
	IDRecent      = "recent"
	IDMetrics     = "metrics-result"
	IDPrecision   = "precision-value"
	IDRecall      = "recall-value"
	IDF1          = "f1-value"
	IDBatchSize   = "batch-size"
	IDStartIndex  = "start-index"
	IDBatchStatus = "batch-status"
)

const hiddenClass = "hidden"

var requiredIDs = []string{
	IDForm, IDURLInput, IDLoading, IDResults, IDStats, IDRecent,
	IDMetrics, IDPrecision, IDRecall, IDF1,
	IDBatchSize, IDStartIndex, IDBatchStatus,
	string(controller.TriggerSubmit), string(controller.TriggerTestSet),
	string(controller.TriggerEvaluate), string(controller.TriggerBatch),
}

// RequiredIDs returns the element IDs a document must carry.
func RequiredIDs() []string {
	return append([]string(nil), requiredIDs...)
}

type Page struct {
	mu       sync.Mutex
	doc      *goquery.Document
	handlers controller.Handlers
	notices  []string
}

// New returns a page built from the bundled index document.
func New() (*Page, error) {
	return Parse(strings.NewReader(indexHTML))
}

// Parse builds a page from a custom document. The document must carry
// every element ID the controller drives.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	var missing []string
	for _, id := range requiredIDs {
		if doc.Find("#"+id).Length() == 0 {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("page is missing elements: %s", strings.Join(missing, ", "))
	}
	return &Page{doc: doc}, nil
}

func (p *Page) byID(id string) *goquery.Selection {
	return p.doc.Find("#" + id).First()
}

func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID(IDURLInput).SetAttr("value", url)
}

func (p *Page) SetLoading(visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	setHidden(p.byID(IDLoading), !visible)
}

func (p *Page) SetResults(n *render.Node) { p.replace(IDResults, n) }
func (p *Page) SetStats(n *render.Node)   { p.replace(IDStats, n) }
func (p *Page) SetRecent(n *render.Node)  { p.replace(IDRecent, n) }

func (p *Page) replace(id string, n *render.Node) {
	p.mu.Lock()
	defer p.mu.Unlock()
	region := p.byID(id)
	region.Empty()
	if nodes := render.ToHTML(n); len(nodes) > 0 {
		region.AppendNodes(nodes...)
	}
}

func (p *Page) Trigger(id controller.TriggerID) controller.TriggerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	btn := p.byID(string(id))
	return controller.TriggerState{
		Enabled: !isDisabled(btn),
		Label:   strings.TrimSpace(btn.Text()),
	}
}

func (p *Page) SetTrigger(id controller.TriggerID, state controller.TriggerState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	btn := p.byID(string(id))
	if state.Enabled {
		btn.RemoveAttr("disabled")
	} else {
		btn.SetAttr("disabled", "")
	}
	btn.SetText(state.Label)
}

func (p *Page) SetMetrics(v render.MetricValues) {
	p.mu.Lock()
	defer p.mu.Unlock()
	setHidden(p.byID(IDMetrics), false)
	p.byID(IDPrecision).SetText(v.Precision)
	p.byID(IDRecall).SetText(v.Recall)
	p.byID(IDF1).SetText(v.F1Score)
}

func (p *Page) ShowBatchStatus() {
	p.mu.Lock()
	defer p.mu.Unlock()
	setHidden(p.byID(IDBatchStatus), false)
}

func (p *Page) Notify(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, msg)
}

func (p *Page) Bind(h controller.Handlers) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = h
}

// Notices returns every notice shown so far, oldest first.
func (p *Page) Notices() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.notices...)
}

// Text returns the trimmed text content of the element with the given ID.
func (p *Page) Text(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return strings.TrimSpace(p.byID(id).Text())
}

// Field returns the value attribute of the element with the given ID.
func (p *Page) Field(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, _ := p.byID(id).Attr("value")
	return v
}

// SetField types value into the input with the given ID.
func (p *Page) SetField(id, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID(id).SetAttr("value", value)
}

// Hidden reports whether the element with the given ID is hidden.
func (p *Page) Hidden(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.byID(id).HasClass(hiddenClass)
}

// Find runs fn against the elements matching selector while the page is
// locked. fn must not call back into the page.
func (p *Page) Find(selector string, fn func(*goquery.Selection)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.doc.Find(selector))
}

// HTML serializes the whole document.
func (p *Page) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Html()
}

func setHidden(s *goquery.Selection, hidden bool) {
	if hidden {
		s.AddClass(hiddenClass)
	} else {
		s.RemoveClass(hiddenClass)
	}
}

func isDisabled(s *goquery.Selection) bool {
	_, ok := s.Attr("disabled")
	return ok
}
