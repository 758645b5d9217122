package report

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var monthNames = [...]string{
	time.January:   "janeiro",
	time.February:  "fevereiro",
	time.March:     "março",
	time.April:     "abril",
	time.May:       "maio",
	time.June:      "junho",
	time.July:      "julho",
	time.August:    "agosto",
	time.September: "setembro",
	time.October:   "outubro",
	time.November:  "novembro",
	time.December:  "dezembro",
}

// FormatDate renders t the way pt-BR long dates are written, already in
// normalized form: "5 de março de 2026". The day carries no leading zero.
func FormatDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + " de " + monthNames[t.Month()] + " de " + strconv.Itoa(t.Year())
}

// NormalizeDate turns a date as written in page markup into the comparison
// key used against FormatDate: control characters \r \n \t and commas are
// removed, the text is lower-cased and trimmed. It is idempotent.
func NormalizeDate(s string) string {
	s = StripControl(s)
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(cases.Lower(language.BrazilianPortuguese).String(s))
}

// StripControl removes carriage returns, newlines and tabs.
func StripControl(s string) string {
	return strings.NewReplacer("\r", "", "\n", "", "\t", "").Replace(s)
}

// ParseDate accepts a date given on the command line and returns its
// normalized form. Supported inputs: "2026-10-16", "16/10/2026", or an
// already written pt-BR date ("16 de Outubro, de 2026").
func ParseDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006", "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatDate(t)
		}
	}

	return NormalizeDate(s)
}
