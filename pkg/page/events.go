package page

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/product-extractor/pkg/controller"
	"github.com/dtnitsch/product-extractor/pkg/render"
)

// Submit submits the extraction form with the current input value, as
// pressing Enter would. It reports whether a handler ran; a disabled submit
// control blocks submission.
func (p *Page) Submit() bool {
	p.mu.Lock()
	if isDisabled(p.byID(string(controller.TriggerSubmit))) || p.handlers.Submit == nil {
		p.mu.Unlock()
		return false
	}
	url, _ := p.byID(IDURLInput).Attr("value")
	h := p.handlers.Submit
	p.mu.Unlock()

	h(url)
	return true
}

// Click activates the first element matching selector. Clicks bubble: a
// click anywhere inside a trigger activates the trigger, and a click inside
// the recent container activates the nearest history link. It reports
// whether a handler ran. Handlers run on the caller's goroutine after the
// page is unlocked.
func (p *Page) Click(selector string) bool {
	p.mu.Lock()
	target := p.doc.Find(selector).First()
	if target.Length() == 0 {
		p.mu.Unlock()
		return false
	}
	if btn := target.Closest("button"); btn.Length() > 0 && isDisabled(btn) {
		p.mu.Unlock()
		return false
	}
	dispatch := p.dispatchFor(target)
	p.mu.Unlock()

	if dispatch == nil {
		return false
	}
	dispatch()
	return true
}

// dispatchFor resolves the handler a click on target reaches. Callers hold mu.
func (p *Page) dispatchFor(target *goquery.Selection) func() {
	h := p.handlers

	switch {
	case within(target, string(controller.TriggerSubmit)):
		if h.Submit == nil {
			return nil
		}
		url, _ := p.byID(IDURLInput).Attr("value")
		return func() { h.Submit(url) }
	case within(target, string(controller.TriggerTestSet)):
		return h.CreateTestSet
	case within(target, string(controller.TriggerEvaluate)):
		return h.EvaluateModel
	case within(target, string(controller.TriggerBatch)):
		if h.RunBatch == nil {
			return nil
		}
		size, _ := p.byID(IDBatchSize).Attr("value")
		start, _ := p.byID(IDStartIndex).Attr("value")
		return func() { h.RunBatch(size, start) }
	case within(target, IDRecent):
		link := target.Closest("[" + render.RecentURLAttr + "]")
		url, ok := link.Attr(render.RecentURLAttr)
		if !ok || h.ActivateRecent == nil {
			return nil
		}
		return func() { h.ActivateRecent(url) }
	}
	return nil
}

func within(s *goquery.Selection, id string) bool {
	return s.Closest("#"+id).Length() > 0
}
