package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/carta-conjuntura/internal/report"
)

const (
	dateSelector    = "time.entry-date"
	titleSelector   = "h1.entry-title > a"
	contentSelector = "div.entry-content"
)

// Paragraphs containing these phrases are navigation boilerplate.
var boilerplate = []string{
	"acesse o texto completo",
	"dados xls",
}

// block is one parsed <article> fragment.
type block struct {
	doc *goquery.Document
}

func parseBlock(fragment string) (*block, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	return &block{doc: doc}, nil
}

// date returns the normalized publication date, or false when the block
// has no date element.
func (b *block) date() (string, bool) {
	sel := b.doc.Find(dateSelector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return report.NormalizeDate(sel.Text()), true
}

// titleAndLink reads the entry header anchor.
func (b *block) titleAndLink() (title, link string, ok bool) {
	a := b.doc.Find(titleSelector).First()
	href, exists := a.Attr("href")
	if !exists {
		return "", "", false
	}
	return strings.TrimSpace(report.StripControl(a.Text())), strings.TrimSpace(href), true
}

func (b *block) content() *goquery.Selection {
	return b.doc.Find(contentSelector).First()
}

// summary joins the content paragraphs that are not boilerplate with a
// blank line.
func summary(content *goquery.Selection) string {
	var paragraphs []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text == "" || isBoilerplate(text) {
			return
		}
		paragraphs = append(paragraphs, text)
	})
	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}

func isBoilerplate(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range boilerplate {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// pdfLink returns the first href in the content region ending in .pdf.
func pdfLink(content *goquery.Selection) (string, bool) {
	var link string
	content.Find("[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if strings.HasSuffix(strings.ToLower(href), ".pdf") {
			link = href
			return false
		}
		return true
	})
	return link, link != ""
}
