//go:build js && wasm

// Package browser implements controller.View against the live DOM of the
// index page when compiled to WebAssembly.
package browser

import (
	"fmt"
	"strings"
	"syscall/js"

	"github.com/dtnitsch/product-extractor/pkg/controller"
	"github.com/dtnitsch/product-extractor/pkg/page"
	"github.com/dtnitsch/product-extractor/pkg/render"
)

const hiddenClass = "hidden"

type View struct {
	doc   js.Value
	funcs []js.Func
}

// NewView looks up the page elements the controller drives. It fails when
// one is missing.
func NewView() (*View, error) {
	v := &View{doc: js.Global().Get("document")}
	var missing []string
	for _, id := range page.RequiredIDs() {
		if !v.byID(id).Truthy() {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("page is missing elements: %s", strings.Join(missing, ", "))
	}
	return v, nil
}

func (v *View) byID(id string) js.Value {
	return v.doc.Call("getElementById", id)
}

func (v *View) SetURL(url string) {
	v.byID(page.IDURLInput).Set("value", url)
}

func (v *View) SetLoading(visible bool) {
	setHidden(v.byID(page.IDLoading), !visible)
}

func (v *View) SetResults(n *render.Node) { v.replace(page.IDResults, n) }
func (v *View) SetStats(n *render.Node)   { v.replace(page.IDStats, n) }
func (v *View) SetRecent(n *render.Node)  { v.replace(page.IDRecent, n) }

func (v *View) replace(id string, n *render.Node) {
	region := v.byID(id)
	region.Set("innerHTML", "")
	if n == nil {
		return
	}
	for _, el := range v.createElements(n) {
		region.Call("appendChild", el)
	}
}

// createElements builds DOM nodes for n. Fragments expand to their
// children.
func (v *View) createElements(n *render.Node) []js.Value {
	switch {
	case n.IsFragment():
		var out []js.Value
		for _, c := range n.Children {
			out = append(out, v.createElements(c)...)
		}
		return out
	case n.Tag == "":
		return []js.Value{v.doc.Call("createTextNode", n.Text)}
	}

	el := v.doc.Call("createElement", n.Tag)
	for _, a := range n.Attrs {
		el.Call("setAttribute", a.Key, a.Val)
	}
	if n.Text != "" {
		el.Set("textContent", n.Text)
	}
	for _, c := range n.Children {
		for _, child := range v.createElements(c) {
			el.Call("appendChild", child)
		}
	}
	return []js.Value{el}
}

func (v *View) Trigger(id controller.TriggerID) controller.TriggerState {
	btn := v.byID(string(id))
	return controller.TriggerState{
		Enabled: !btn.Get("disabled").Bool(),
		Label:   strings.TrimSpace(btn.Get("textContent").String()),
	}
}

func (v *View) SetTrigger(id controller.TriggerID, state controller.TriggerState) {
	btn := v.byID(string(id))
	btn.Set("disabled", !state.Enabled)
	btn.Set("textContent", state.Label)
}

func (v *View) SetMetrics(m render.MetricValues) {
	setHidden(v.byID(page.IDMetrics), false)
	v.byID(page.IDPrecision).Set("textContent", m.Precision)
	v.byID(page.IDRecall).Set("textContent", m.Recall)
	v.byID(page.IDF1).Set("textContent", m.F1Score)
}

func (v *View) ShowBatchStatus() {
	setHidden(v.byID(page.IDBatchStatus), false)
}

func (v *View) Notify(msg string) {
	js.Global().Call("alert", msg)
}

// Bind installs the event listeners. Handlers run on their own goroutine:
// a listener must return before the fetch it starts can settle.
func (v *View) Bind(h controller.Handlers) {
	v.on(v.byID(page.IDForm), "submit", func(js.Value) {
		if h.Submit == nil || !v.Trigger(controller.TriggerSubmit).Enabled {
			return
		}
		url := v.byID(page.IDURLInput).Get("value").String()
		go h.Submit(url)
	})
	v.onClick(controller.TriggerTestSet, h.CreateTestSet)
	v.onClick(controller.TriggerEvaluate, h.EvaluateModel)
	v.onClick(controller.TriggerBatch, func() {
		if h.RunBatch == nil {
			return
		}
		size := v.byID(page.IDBatchSize).Get("value").String()
		start := v.byID(page.IDStartIndex).Get("value").String()
		h.RunBatch(size, start)
	})

	// One listener on the container serves every history link, including
	// the ones added by later refreshes.
	v.on(v.byID(page.IDRecent), "click", func(event js.Value) {
		link := event.Get("target").Call("closest", "["+render.RecentURLAttr+"]")
		if !link.Truthy() || h.ActivateRecent == nil {
			return
		}
		url := link.Call("getAttribute", render.RecentURLAttr).String()
		go h.ActivateRecent(url)
	})
}

func (v *View) onClick(id controller.TriggerID, fn func()) {
	if fn == nil {
		return
	}
	v.on(v.byID(string(id)), "click", func(js.Value) {
		go fn()
	})
}

func (v *View) on(el js.Value, event string, fn func(event js.Value)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
			fn(args[0])
		}
		return nil
	})
	v.funcs = append(v.funcs, cb)
	el.Call("addEventListener", event, cb)
}

// Release frees the listener callbacks.
func (v *View) Release() {
	for _, f := range v.funcs {
		f.Release()
	}
	v.funcs = nil
}

func setHidden(el js.Value, hidden bool) {
	if hidden {
		el.Get("classList").Call("add", hiddenClass)
	} else {
		el.Get("classList").Call("remove", hiddenClass)
	}
}
