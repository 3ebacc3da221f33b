package common

import (
	"regexp"
	"strings"
)

var (
	markdownLinkPattern = regexp.MustCompile(`^\[.*?\]\((https?://[^\)]+)\)$`)

	trailingJunk = ",)}]\"'>;"
	leadingJunk  = "([<\"'"
)

// SanitizeURL cleans up a URL pasted on the command line: whitespace,
// markdown links, wrapping punctuation, and an empty query or fragment.
// The service keys history by the submitted text, so "x/#" and "x/" are
// reduced to the same URL.
func SanitizeURL(rawURL string) string {
	cleaned := strings.TrimSpace(rawURL)

	// [text](url) -> url
	if matches := markdownLinkPattern.FindStringSubmatch(cleaned); len(matches) > 1 {
		cleaned = matches[1]
	}

	// `"(https://example.com/#),` -> `https://example.com/`
	for {
		next := strings.TrimRight(strings.TrimLeft(cleaned, leadingJunk), trailingJunk)
		next = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(next), "#"), "?")
		if next == cleaned {
			break
		}
		cleaned = next
	}
	return cleaned
}

// CollectURLs merges positional arguments and a comma-separated list,
// sanitizing each entry and dropping the ones that end up empty.
// The service normalizes schemes itself, so nothing else is checked.
func CollectURLs(args []string, commaList string) []string {
	raw := append([]string(nil), args...)
	if commaList != "" {
		raw = append(raw, strings.Split(commaList, ",")...)
	}

	urls := make([]string, 0, len(raw))
	for _, r := range raw {
		if cleaned := SanitizeURL(r); cleaned != "" {
			urls = append(urls, cleaned)
		}
	}
	return urls
}
