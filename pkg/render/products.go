package render

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"github.com/dtnitsch/product-extractor/models"
)

// SortProducts returns a copy ordered by confidence, highest first.
// Equal confidences keep their response order.
func SortProducts(products []models.Product) []models.Product {
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b models.Product) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return sorted
}

// ConfidencePercent rounds a 0..1 confidence to a whole percentage.
func ConfidencePercent(confidence float64) int {
	return int(math.Round(confidence * 100))
}

// Products renders the extraction result. An empty list renders the
// "nothing found" message and no list element.
func Products(products []models.Product) *Node {
	if len(products) == 0 {
		return Fragment(
			El("p", nil, TextNode(MsgNoProducts)),
			El("p", nil, TextNode(MsgNoProductsHint)),
		)
	}

	sorted := SortProducts(products)
	items := make([]*Node, 0, len(sorted))
	for i, p := range sorted {
		items = append(items, productItem(i, p))
	}

	return Fragment(
		El("div", Class("results-summary"),
			El("p", nil,
				TextNode("Found "),
				El("strong", nil, TextNode(strconv.Itoa(len(sorted)))),
				TextNode(" products on the page:"),
			),
		),
		El("ul", Class("products-list"), items...),
	)
}

func productItem(index int, p models.Product) *Node {
	delay := strconv.FormatFloat(float64(index*5)/100, 'f', -1, 64)
	attrs := append(Class("product-item"), Attr{Key: "style", Val: "animation-delay: " + delay + "s"})
	return El("li", attrs,
		El("span", Class("product-name"), TextNode(p.Name)),
		El("span", Class("product-confidence"), TextNode(strconv.Itoa(ConfidencePercent(p.Confidence))+"%")),
	)
}

// ExtractionError renders msg verbatim followed by a retry hint.
func ExtractionError(msg string) *Node {
	return Fragment(
		El("div", Class("error-message"),
			El("p", nil, TextNode(msg)),
		),
		El("p", nil, TextNode(MsgRetryHint)),
	)
}
