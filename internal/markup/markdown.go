package markup

import "strings"

// RenderMarkdownBasic converts a Markdown document to HTML, handling block
// structure only: fenced code blocks, ##/###/#### headings, "- " lists,
// blank lines and paragraphs. Inline syntax (bold, links) is not
// interpreted; all text is escaped. Single pass, linear in the input.
func RenderMarkdownBasic(markdown string) string {
	lines := strings.Split(markdown, "\n")
	var html []string
	inList := false
	inCode := false

	closeList := func() {
		if inList {
			html = append(html, "</ul>")
			inList = false
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if !inCode {
				html = append(html, "<pre><code>")
				inCode = true
			} else {
				html = append(html, "</code></pre>")
				inCode = false
			}
			continue
		}
		if inCode {
			html = append(html, EscapeHTML(line)+"\n")
			continue
		}

		text := EscapeHTML(line)
		switch {
		case strings.HasPrefix(text, "#### "):
			closeList()
			html = append(html, "<h4>"+text[5:]+"</h4>")
		case strings.HasPrefix(text, "### "):
			closeList()
			html = append(html, "<h3>"+text[4:]+"</h3>")
		case strings.HasPrefix(text, "## "):
			closeList()
			html = append(html, "<h2>"+text[3:]+"</h2>")
		case strings.HasPrefix(text, "- "):
			if !inList {
				html = append(html, "<ul>")
				inList = true
			}
			html = append(html, "<li>"+text[2:]+"</li>")
		case strings.TrimSpace(text) == "":
			closeList()
			html = append(html, "<br>")
		default:
			closeList()
			html = append(html, "<p>"+text+"</p>")
		}
	}

	closeList()
	if inCode {
		// Unterminated fence at end of input is force-closed once.
		html = append(html, "</code></pre>")
	}
	return strings.Join(html, "")
}
