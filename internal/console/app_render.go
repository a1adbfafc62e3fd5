package console

import (
	"fmt"
	"strings"

	"github.com/songminho/ragconsole/internal/domain"
	"github.com/songminho/ragconsole/internal/markup"
)

func pageHead(title string) string {
	return `<!DOCTYPE html><html lang="ko"><head><meta charset="utf-8">` +
		`<meta name="viewport" content="width=device-width, initial-scale=1.0">` +
		`<title>` + markup.EscapeHTML(title) + `</title>` +
		`<style>` + consoleCSS + `</style></head><body><main class="console">`
}

const pageFoot = `</main></body></html>`

const consoleCSS = `body{font-family:-apple-system,'Segoe UI','Noto Sans KR',sans-serif;margin:0;background:#f8f9fa;color:#212529}` +
	`.console{max-width:1080px;margin:0 auto;padding:24px}` +
	`.console-header{display:flex;justify-content:space-between;align-items:center}` +
	`.panel{background:#fff;border:1px solid #dee2e6;border-radius:8px;padding:16px;margin:16px 0}` +
	`.status-msg{color:#6c757d;font-size:0.85rem}` +
	`.filter-bar{display:flex;gap:8px;margin-bottom:12px}` +
	`.chat-message{padding:8px 12px;border-radius:8px;margin:6px 0;white-space:pre-wrap}` +
	`.chat-message.user{background:#e7f1ff}` +
	`.chat-message.bot{background:#f1f3f5}` +
	`.status-indicator{font-weight:600}` +
	`.status-indicator.ok{color:#2f9e44}.status-indicator.warn{color:#e8590c}` +
	`.status-indicator.error{color:#c92a2a}.status-indicator.unknown{color:#868e96}` +
	`.doc-item-btn{display:flex;justify-content:space-between;width:100%;padding:6px 8px;border:none;background:none;cursor:pointer}` +
	`.doc-meta{color:#868e96;font-size:0.8rem}` +
	`.secondary-btn{font-size:0.85rem}`

// RenderTranscript builds the chat transcript, oldest first.
func RenderTranscript(messages []domain.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&b, `<div class="chat-message %s">%s</div>`,
			markup.EscapeHTML(msg.Role), markup.EscapeHTML(msg.Content))
	}
	return b.String()
}

// RenderDocList builds the sidebar document list. Each entry links to the
// document viewer.
func RenderDocList(view AppView) string {
	if view.DocsMsg != "" && len(view.Docs) == 0 {
		return `<p class="status-msg">` + markup.EscapeHTML(view.DocsMsg) + `</p>`
	}

	var b strings.Builder
	for _, doc := range view.Docs {
		fmt.Fprintf(&b, `<a class="doc-item-btn" href="/app/docs/%s"><span class="doc-name">%s</span><span class="doc-meta">%d KB</span></a>`,
			markup.EscapeHTML(doc.Name), markup.EscapeHTML(doc.Name), doc.SizeKB())
	}
	return b.String()
}

func collectionOption(item domain.CollectionInfo, selectedKey string) string {
	selected := ""
	if item.Key == selectedKey {
		selected = " selected"
	}
	display := fmt.Sprintf("%s (%s) - vectors=%d, soft=%d%%", item.Label, item.Key, item.Vectors, item.SoftPercent())
	return fmt.Sprintf(`<option value="%s"%s>%s</option>`,
		markup.EscapeHTML(item.Key), selected, markup.EscapeHTML(display))
}

func renderCollectionSelectors(view AppView) string {
	var b strings.Builder
	b.WriteString(`<select name="collection">`)
	if len(view.Collections.Collections) == 0 {
		b.WriteString(`<option value="all">전체 (기본)</option>`)
	}
	for _, item := range view.Collections.Collections {
		b.WriteString(collectionOption(item, view.PrimaryKey))
	}
	b.WriteString(`</select><select name="collection2">`)
	selectedNone := ""
	if view.SecondaryKey == "" {
		selectedNone = " selected"
	}
	fmt.Fprintf(&b, `<option value=""%s>사용 안 함</option>`, selectedNone)
	for _, item := range view.Collections.Collections {
		b.WriteString(collectionOption(item, view.SecondaryKey))
	}
	b.WriteString(`</select>`)
	return b.String()
}

// RenderAppPage builds the full user console page.
func RenderAppPage(view AppView) string {
	var b strings.Builder
	b.WriteString(pageHead("RAG Chat Console"))

	b.WriteString(`<header class="console-header"><h1>문서 Q&A</h1>`)
	fmt.Fprintf(&b, `<span class="status-indicator %s">%s</span></header>`,
		view.Status.Level, markup.EscapeHTML(view.Status.Text))
	fmt.Fprintf(&b, `<p class="status-msg" id="statusMsg">%s</p>`, markup.EscapeHTML(view.Status.Detail))

	// LLM settings
	b.WriteString(`<section class="panel"><h2>LLM 설정</h2>`)
	b.WriteString(`<form method="post" action="/app/provider">`)
	b.WriteString(`<select name="provider">`)
	for _, p := range []string{domain.ProviderOllama, domain.ProviderLMStudio, domain.ProviderOpenAI} {
		selected := ""
		if view.Provider == p {
			selected = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, p, selected, p)
	}
	b.WriteString(`</select><button type="submit">적용</button></form>`)
	b.WriteString(`<form method="post" action="/app/settings">`)
	fmt.Fprintf(&b, `<input type="text" name="model" value="%s" placeholder="model">`, markup.EscapeHTML(view.Model))
	fmt.Fprintf(&b, `<input type="password" name="api_key" value="%s" placeholder="API key">`, markup.EscapeHTML(view.APIKey))
	fmt.Fprintf(&b, `<input type="text" name="base_url" value="%s" placeholder="base URL">`, markup.EscapeHTML(view.BaseURL))
	b.WriteString(`<button type="submit">저장</button></form></section>`)

	// Collection selection
	b.WriteString(`<section class="panel"><h2>컬렉션</h2>`)
	b.WriteString(`<form method="post" action="/app/collections">`)
	b.WriteString(renderCollectionSelectors(view))
	b.WriteString(`<button type="submit">선택</button></form>`)
	fmt.Fprintf(&b, `<p class="status-msg" id="collectionHint">%s</p>`, markup.EscapeHTML(view.Hint))
	b.WriteString(`<form method="post" action="/app/reindex"><button type="submit">재인덱싱</button></form>`)
	b.WriteString(`</section>`)

	// Chat transcript
	b.WriteString(`<section class="panel"><h2>대화</h2><div id="chatContainer">`)
	b.WriteString(RenderTranscript(view.Transcript))
	b.WriteString(`</div>`)
	b.WriteString(`<form method="post" action="/app/query">`)
	b.WriteString(`<textarea name="question" rows="3" placeholder="질문을 입력하세요"></textarea>`)
	b.WriteString(`<button type="submit">전송</button></form></section>`)

	// Documents
	b.WriteString(`<section class="panel"><h2>문서</h2><div id="docList">`)
	b.WriteString(RenderDocList(view))
	b.WriteString(`</div>`)
	fmt.Fprintf(&b, `<h3 id="docTitle">%s</h3>`, markup.EscapeHTML(view.DocTitle))
	fmt.Fprintf(&b, `<div id="docViewer">%s</div></section>`, view.DocHTML)

	// Upload request form
	b.WriteString(`<section class="panel"><h2>문서 업로드 요청</h2>`)
	b.WriteString(`<form method="post" action="/app/upload">`)
	b.WriteString(`<input type="text" name="source_name" placeholder="출처 이름">`)
	b.WriteString(`<input type="text" name="country" placeholder="국가">`)
	b.WriteString(`<input type="text" name="doc_type" placeholder="문서 유형">`)
	b.WriteString(`<textarea name="content" rows="6" placeholder="Markdown 내용"></textarea>`)
	b.WriteString(`<button type="submit">요청 생성</button></form>`)
	fmt.Fprintf(&b, `<p class="status-msg" id="uploadMsg">%s</p>`, markup.EscapeHTML(view.UploadMsg))
	b.WriteString(`</section>`)

	b.WriteString(pageFoot)
	return b.String()
}
