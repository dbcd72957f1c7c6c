package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/grant-verdict/internal/lexicon"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"02 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2nd, 2006",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"2006-01-02 15:04:05",
}

var (
	isoDateRe   = regexp.MustCompile(`\b(19|20)\d{2}-\d{1,2}-\d{1,2}\b`)
	slashDateRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/(19|20)\d{2}\b|\b(19|20)\d{2}/\d{1,2}/\d{1,2}\b`)
	monthDayRe  = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s+\d{1,2}(st|nd|rd|th)?\b|\b\d{1,2}(st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\b`)
	monthYearRe = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+((?:19|20)\d{2})\b`)
	dayMonthRe  = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?,?\s+((?:19|20)\d{2})\b`)
	ordinalRe   = regexp.MustCompile(`(?i)(\d)(st|nd|rd|th)\b`)
)

var datePrefixes = []string{
	"closing date:", "deadline:", "due date:", "applications close:",
	"applications due:", "expires:", "ends:", "decision date:",
	"decisions by:", "announced:",
}

// HasDatePattern reports whether text contains something shaped like a date:
// an ISO date, a slash date, or a "Month Day" pattern.
func HasDatePattern(text string) bool {
	return isoDateRe.MatchString(text) || slashDateRe.MatchString(text) || monthDayRe.MatchString(text)
}

// IsVagueTimeline reports whether text uses rolling or open-ended language.
func IsVagueTimeline(text string) bool {
	return lexicon.VagueTimeline.Any(text)
}

// ParseDate reads a calendar date from free text. Date-only values resolve to
// the end of that day in UTC.
func ParseDate(text string) (time.Time, error) {
	clean := cleanDate(text)
	if clean == "" {
		return time.Time{}, eris.New("parse: empty date")
	}

	if t, err := time.Parse(time.RFC3339, clean); err == nil {
		return t.UTC(), nil
	}
	normalized := ordinalRe.ReplaceAllString(clean, "$1")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			if strings.Contains(layout, ":") {
				return t, nil
			}
			return endOfDay(t), nil
		}
	}

	if t, ok := dateFromRegex(clean); ok {
		return endOfDay(t), nil
	}
	return time.Time{}, eris.Errorf("parse: unable to parse date %q", text)
}

func dateFromRegex(text string) (time.Time, bool) {
	if m := isoDateRe.FindString(text); m != "" {
		if t, err := time.Parse("2006-1-2", m); err == nil {
			return t, true
		}
	}
	if m := slashDateRe.FindString(text); m != "" {
		for _, layout := range []string{"1/2/2006", "2006/1/2", "2/1/2006"} {
			if t, err := time.Parse(layout, m); err == nil {
				return t, true
			}
		}
	}
	if m := monthYearRe.FindStringSubmatch(text); m != nil {
		if t, ok := monthDayYear(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		if t, ok := monthDayYear(m[2], m[1], m[3]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func monthDayYear(month, day, year string) (time.Time, bool) {
	month = strings.TrimSuffix(strings.ToLower(month), ".")
	if month == "sept" {
		month = "sep"
	}
	if len(month) > 3 {
		month = month[:3]
	}
	t, err := time.Parse("Jan 2 2006", strings.ToUpper(month[:1])+month[1:]+" "+day+" "+year)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func cleanDate(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	for _, p := range datePrefixes {
		if idx := strings.Index(lower, p); idx != -1 {
			s = s[idx+len(p):]
			lower = lower[idx+len(p):]
		}
	}
	return strings.TrimSpace(s)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}
