package markup

import (
	"strings"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a&b<c>d", "a&amp;b&lt;c&gt;d"},
		{"plain text", "plain text"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"&&", "&amp;&amp;"},
		{`"quoted"`, `"quoted"`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeHTMLNoRawAngleBrackets(t *testing.T) {
	inputs := []string{"<b>", "a<b>c&d", "> quote", "&lt; already escaped"}
	for _, in := range inputs {
		out := EscapeHTML(in)
		if strings.ContainsAny(out, "<>") {
			t.Errorf("EscapeHTML(%q) = %q still contains raw angle brackets", in, out)
		}
	}
}

func TestRenderMarkdownBasicStructure(t *testing.T) {
	got := RenderMarkdownBasic("## Title\n- a\n- b\n\ntext")
	want := "<h2>Title</h2><ul><li>a</li><li>b</li></ul><br><p>text</p>"
	if got != want {
		t.Fatalf("RenderMarkdownBasic() = %q, want %q", got, want)
	}
}

func TestRenderMarkdownBasicHeadings(t *testing.T) {
	got := RenderMarkdownBasic("#### h4\n### h3\n## h2")
	want := "<h4>h4</h4><h3>h3</h3><h2>h2</h2>"
	if got != want {
		t.Fatalf("headings = %q, want %q", got, want)
	}
}

func TestRenderMarkdownBasicCodeBlock(t *testing.T) {
	got := RenderMarkdownBasic("```\n## not a heading\n<tag>\n```\nafter")
	want := "<pre><code>## not a heading\n&lt;tag&gt;\n</code></pre><p>after</p>"
	if got != want {
		t.Fatalf("code block = %q, want %q", got, want)
	}
}

func TestRenderMarkdownBasicUnterminatedFence(t *testing.T) {
	got := RenderMarkdownBasic("```\ncode")
	want := "<pre><code>code\n</code></pre>"
	if got != want {
		t.Fatalf("unterminated fence = %q, want %q", got, want)
	}
	if strings.Count(got, "</code></pre>") != 1 {
		t.Fatalf("fence closed %d times, want once", strings.Count(got, "</code></pre>"))
	}
}

func TestRenderMarkdownBasicListClosedByNonListLine(t *testing.T) {
	got := RenderMarkdownBasic("- item\npara")
	want := "<ul><li>item</li></ul><p>para</p>"
	if got != want {
		t.Fatalf("list close = %q, want %q", got, want)
	}
}

func TestRenderMarkdownBasicListClosedAtEnd(t *testing.T) {
	got := RenderMarkdownBasic("- only")
	want := "<ul><li>only</li></ul>"
	if got != want {
		t.Fatalf("trailing list = %q, want %q", got, want)
	}
}

func TestRenderMarkdownBasicEscapesParagraphText(t *testing.T) {
	got := RenderMarkdownBasic("**bold** & <em>")
	want := "<p>**bold** &amp; &lt;em&gt;</p>"
	if got != want {
		t.Fatalf("inline text = %q, want %q", got, want)
	}
}
