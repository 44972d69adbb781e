package assets

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes the Data Dragon markup of a description, keeping the line breaks.
// Entities like &amp; are decoded.
func StripMarkup(s string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				sb.WriteByte('\n')
			}
		}
	}
}
