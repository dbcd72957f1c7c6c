package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	durationRe = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(-|–|to)?\s*\d*\s*(years?|months?|weeks?)\b|\b(one|two|three|four|five|six|twelve|eighteen|twenty-four)[- ](years?|months?|weeks?)\b|\bmulti-year\b|\b(annual|annually|per year|per annum|per month|monthly)\b|\b(duration|tenure|term) of\b`)
	pagesRe    = regexp.MustCompile(`(?i)(\d+)\s*(?:-|–|to)?\s*(\d+)?[- ]pages?\b`)
	wordsRe    = regexp.MustCompile(`(?i)(\d[\d,]*)\s*[- ]?words?\b`)
	lettersRe  = regexp.MustCompile(`(?i)\b(\d+|one|two|three|four|five|six)\s+(?:[a-z]+\s+){0,2}(?:letters?|references?|referees?)\b`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
}

// WordsPerPage converts word limits into an equivalent page estimate.
const WordsPerPage = 500

// HasDuration reports whether text states how long an award runs.
func HasDuration(text string) bool {
	return durationRe.MatchString(text)
}

// EstimatePages returns the largest page figure in text, converting word
// limits at WordsPerPage. Zero means no length was stated.
func EstimatePages(text string) int {
	best := 0
	for _, m := range pagesRe.FindAllStringSubmatch(text, -1) {
		for _, g := range m[1:] {
			if n, err := strconv.Atoi(g); err == nil && n > best {
				best = n
			}
		}
	}
	for _, m := range wordsRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil || n <= 0 {
			continue
		}
		pages := (n + WordsPerPage - 1) / WordsPerPage
		if pages > best {
			best = pages
		}
	}
	return best
}

// CountLetters returns the number of recommendation letters requested in
// text. ok is false when no explicit count was found.
func CountLetters(text string) (int, bool) {
	best, found := 0, false
	for _, m := range lettersRe.FindAllStringSubmatch(text, -1) {
		word := strings.ToLower(m[1])
		n, err := strconv.Atoi(word)
		if err != nil {
			n = numberWords[word]
		}
		if n > 0 && n > best {
			best, found = n, true
		}
	}
	return best, found
}
