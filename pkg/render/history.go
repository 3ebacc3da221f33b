package render

import (
	"strconv"

	"github.com/dtnitsch/product-extractor/models"
)

// Stats renders aggregate counts, or a placeholder when there are none.
func Stats(entries []models.StatEntry) *Node {
	if len(entries) == 0 {
		return El("p", nil, TextNode(MsgStatsUnavailable))
	}

	items := make([]*Node, 0, len(entries))
	for _, e := range entries {
		items = append(items, El("li", nil,
			El("span", Class("product-name"), TextNode(e.Name)),
			El("span", Class("product-count"), TextNode(strconv.Itoa(e.Count))),
		))
	}
	return El("ul", Class("stats-list"), items...)
}

// RecentURLAttr carries the URL a history link re-submits. Views dispatch
// clicks inside the recent container by this attribute.
const RecentURLAttr = "data-url"

// Recent renders the extraction history, or a placeholder when empty.
func Recent(entries []models.RecentEntry) *Node {
	if len(entries) == 0 {
		return El("p", nil, TextNode(MsgNoHistory))
	}

	items := make([]*Node, 0, len(entries))
	for _, e := range entries {
		status := models.StatusError
		if e.Succeeded() {
			status = models.StatusSuccess
		}
		link := El("a", []Attr{
			{Key: "href", Val: "#"},
			{Key: "class", Val: "url-link"},
			{Key: RecentURLAttr, Val: e.URL},
		}, TextNode(e.URL))

		children := []*Node{
			link,
			El("span", Class("url-count"), TextNode(strconv.Itoa(e.Count)+" products")),
		}
		if e.Date != "" {
			// Hidden in HTML views; the terminal prints every cell.
			children = append(children, El("span", []Attr{
				{Key: "class", Val: "url-date"},
				{Key: "hidden", Val: ""},
			}, TextNode(e.Date)))
		}
		items = append(items, El("li", Class("recent-item", status), children...))
	}
	return El("ul", Class("recent-list"), items...)
}
