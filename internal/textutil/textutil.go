// Package textutil normalises grant text before the classifier and scorer
// look at it. Grant fields may arrive as scraped HTML or as catalog prose.
package textutil

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	spaceRe  = regexp.MustCompile(`\s+`)
	htmlish  = regexp.MustCompile(`<\s*/?\s*[a-zA-Z][^>]*>`)
	tokenRe  = regexp.MustCompile(`[\p{L}]{4,}`)
	strictUI = bluemonday.StrictPolicy()
)

// CollapseSpace trims s and collapses runs of whitespace to one space.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// PlainText returns s with any HTML markup removed and whitespace collapsed.
// Text without markup is returned collapsed but otherwise untouched.
func PlainText(s string) string {
	if !htmlish.MatchString(s) {
		return CollapseSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CollapseSpace(s)
	}
	// Block elements otherwise glue adjacent words together.
	doc.Find("p, li, div, br, td, th, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return CollapseSpace(doc.Text())
}

// Sanitize strips all markup from untrusted text (for example model output)
// and collapses whitespace.
func Sanitize(s string) string {
	return CollapseSpace(html.UnescapeString(strictUI.Sanitize(s)))
}

// Join concatenates the non-empty parts with a single space.
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// Truncate cuts s to at most maxLen runes, appending an ellipsis if cut.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen > 3 {
		return strings.TrimRightFunc(string(r[:maxLen-3]), unicode.IsSpace) + "..."
	}
	return string(r[:maxLen])
}

// Tokens returns the distinct lowercase words of four or more letters in s,
// excluding any in stop.
func Tokens(s string, stop map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range tokenRe.FindAllString(strings.ToLower(s), -1) {
		if _, skip := stop[tok]; skip {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Normalize lowercases s and folds hyphens and underscores into spaces so
// "early-career" and "Early_Career" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return CollapseSpace(s)
}
