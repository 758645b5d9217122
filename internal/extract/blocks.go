package extract

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
)

const blockTag = "article"

// Blocks yields the raw markup of every top-level <article> element in
// document order. Articles nested inside another article stay part of the
// outer fragment. An article still open at end of input is not yielded.
func Blocks(markup string) iter.Seq[string] {
	return func(yield func(string) bool) {
		z := html.NewTokenizer(strings.NewReader(markup))
		var buf strings.Builder
		depth := 0

		for {
			tt := z.Next()
			if tt == html.ErrorToken {
				return
			}
			// TagName lower-cases in place, so copy the token first.
			raw := append([]byte(nil), z.Raw()...)

			switch tt {
			case html.StartTagToken:
				if isBlockTag(z) {
					depth++
				}
			case html.EndTagToken:
				if depth > 0 && isBlockTag(z) {
					buf.Write(raw)
					depth--
					if depth == 0 {
						fragment := buf.String()
						buf.Reset()
						if !yield(fragment) {
							return
						}
					}
					continue
				}
			}

			if depth > 0 {
				buf.Write(raw)
			}
		}
	}
}

func isBlockTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	return string(name) == blockTag
}
