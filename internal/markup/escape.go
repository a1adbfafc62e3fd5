// Package markup provides the HTML escaping and minimal Markdown rendering
// used when untrusted text is interpolated into console pages.
package markup

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes &, < and > for interpolation into generated markup.
// Quotes are deliberately not escaped; callers must not rely on it for
// quoted attribute values.
func EscapeHTML(value string) string {
	return htmlEscaper.Replace(value)
}
