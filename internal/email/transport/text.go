package transport

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	blankLines = regexp.MustCompile(`\n{3,}`)
	inlineWS   = regexp.MustCompile(`[ \t\r\f]+`)
)

// HTMLToText renders a plain-text fallback for an HTML body. Block elements
// become line breaks, links keep their target, and script/style content is
// dropped.
func HTMLToText(body string) string {
	z := html.NewTokenizer(strings.NewReader(body))
	var (
		b    strings.Builder
		skip int
		href []string
	)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way emit what was read.
			return tidy(b.String())
		case html.TextToken:
			if skip > 0 {
				continue
			}
			b.WriteString(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			switch tag {
			case "script", "style", "head", "title":
				if tt == html.StartTagToken {
					skip++
				}
			case "br":
				b.WriteString("\n")
			case "li":
				b.WriteString("\n- ")
			case "a":
				target := ""
				for hasAttr {
					var k, v []byte
					k, v, hasAttr = z.TagAttr()
					if string(k) == "href" {
						target = string(v)
					}
				}
				href = append(href, target)
			default:
				if isBlock(tag) {
					b.WriteString("\n")
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch tag {
			case "script", "style", "head", "title":
				if skip > 0 {
					skip--
				}
			case "a":
				if n := len(href); n > 0 {
					if t := href[n-1]; t != "" && !strings.HasPrefix(t, "#") && !strings.HasPrefix(t, "mailto:") {
						b.WriteString(" (" + t + ")")
					}
					href = href[:n-1]
				}
			default:
				if isBlock(tag) {
					b.WriteString("\n")
				}
			}
		}
	}
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "table", "tr", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "section", "header", "footer", "blockquote", "hr":
		return true
	}
	return false
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(inlineWS.ReplaceAllString(l, " "))
	}
	out := strings.Join(lines, "\n")
	out = blankLines.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
