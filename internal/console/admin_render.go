package console

import (
	"fmt"
	"strings"

	"github.com/songminho/ragconsole/internal/domain"
	"github.com/songminho/ragconsole/internal/markup"
)

const thStyle = `style="text-align:left;border-bottom:1px solid #dee2e6;padding:8px;"`

// RenderCollectionTable builds the capacity table of the admin console.
func RenderCollectionTable(view AdminView) string {
	if !view.HasStats || len(view.Collections.Collections) == 0 {
		return "<p class='status-msg'>컬렉션 정보가 없습니다.</p>"
	}

	var b strings.Builder
	b.WriteString(`<table style="width:100%;border-collapse:collapse;font-size:0.9rem;"><thead><tr>`)
	for _, head := range []string{"key", "label", "collection", "vectors", "cap 사용률", "상태"} {
		fmt.Fprintf(&b, "<th %s>%s</th>", thStyle, head)
	}
	b.WriteString("</tr></thead><tbody>")

	defaultKey := view.Collections.DefaultCollectionKey
	for _, item := range view.Collections.Collections {
		key := item.Key
		if key == defaultKey {
			key += " (default)"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td>",
			markup.EscapeHTML(key), markup.EscapeHTML(item.Label), markup.EscapeHTML(item.Name))
		fmt.Fprintf(&b, `<td style="text-align:right;">%d</td>`, item.Vectors)
		fmt.Fprintf(&b, `<td style="text-align:right;">%d%% / %d%%</td>`, item.SoftPercent(), item.HardPercent())
		fmt.Fprintf(&b, "<td>%s</td></tr>", markup.EscapeHTML(item.CapStateLabel()))
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// RenderRequestTable builds the moderation queue table. Approve/reject
// actions appear only on pending rows; each action form carries its own
// admin-code field so the code is read fresh per action.
func RenderRequestTable(view AdminView) string {
	if !view.HasQueue || len(view.Queue.Requests) == 0 {
		return "<p class='status-msg'>요청 데이터가 없습니다.</p>"
	}

	var b strings.Builder
	b.WriteString(`<table style="width:100%;border-collapse:collapse;font-size:0.85rem;"><thead><tr>`)
	heads := []string{"id", "source", "collection", "status", "usable",
		"created_at", "updated_at", "rejected_reason", "validation_reasons", "actions"}
	for _, head := range heads {
		fmt.Fprintf(&b, "<th %s>%s</th>", thStyle, head)
	}
	b.WriteString("</tr></thead><tbody>")

	for _, item := range view.Queue.Requests {
		b.WriteString("<tr>")
		fmt.Fprintf(&b, "<td>%s</td>", markup.EscapeHTML(item.ID))
		fmt.Fprintf(&b, "<td>%s</td>", markup.EscapeHTML(orDash(item.SourceName)))
		fmt.Fprintf(&b, "<td>%s</td>", markup.EscapeHTML(orDash(item.CollectionKey)))
		fmt.Fprintf(&b, "<td>%s</td>", markup.EscapeHTML(item.Status))
		fmt.Fprintf(&b, "<td>%t</td>", item.Usable)
		fmt.Fprintf(&b, "<td>%s</td>", markup.EscapeHTML(orDash(item.CreatedAt)))
		fmt.Fprintf(&b, "<td>%s</td>", markup.EscapeHTML(orDash(item.UpdatedAt)))
		fmt.Fprintf(&b, "<td>%s</td>", markup.EscapeHTML(orDash(item.RejectedReason)))
		reasons := "-"
		if len(item.Validation.Reasons) > 0 {
			reasons = strings.Join(item.Validation.Reasons, " | ")
		}
		fmt.Fprintf(&b, "<td>%s</td>", markup.EscapeHTML(reasons))
		fmt.Fprintf(&b, `<td style="display:flex;gap:6px;">%s</td>`, requestActionForms(item))
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func requestActionForms(item domain.UploadRequest) string {
	if item.Status != domain.RequestStatusPending {
		return "-"
	}
	id := markup.EscapeHTML(item.ID)
	var b strings.Builder
	fmt.Fprintf(&b, `<form method="post" action="/admin/requests/%s/approve">`, id)
	b.WriteString(`<input type="password" name="code" placeholder="admin code" size="10">`)
	b.WriteString(`<button class="secondary-btn" type="submit" style="padding:4px 10px;">승인</button></form>`)
	fmt.Fprintf(&b, `<form method="post" action="/admin/requests/%s/reject">`, id)
	b.WriteString(`<input type="password" name="code" placeholder="admin code" size="10">`)
	b.WriteString(`<input type="text" name="reason" placeholder="반려 사유" size="14">`)
	b.WriteString(`<button class="secondary-btn" type="submit" style="padding:4px 10px;">반려</button></form>`)
	return b.String()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// RenderAdminPage builds the full admin console page.
func RenderAdminPage(view AdminView) string {
	var b strings.Builder
	b.WriteString(pageHead("RAG Admin Console"))
	b.WriteString(`<header class="console-header"><h1>업로드 요청 관리</h1>`)
	b.WriteString(`<a class="secondary-btn" href="/app">사용자 화면</a></header>`)

	fmt.Fprintf(&b, `<p class="status-msg" id="adminMsg">%s</p>`, markup.EscapeHTML(view.AdminMsg))

	b.WriteString(`<section class="panel"><h2>컬렉션 상태</h2>`)
	fmt.Fprintf(&b, `<p class="status-msg">%s</p>`, markup.EscapeHTML(view.CollectionMsg))
	b.WriteString(RenderCollectionTable(view))
	b.WriteString(`</section>`)

	b.WriteString(`<section class="panel"><h2>요청 목록</h2>`)
	b.WriteString(`<form method="get" action="/admin" class="filter-bar">`)
	b.WriteString(`<select name="status"><option value="">전체</option>`)
	for _, status := range []string{domain.RequestStatusPending, domain.RequestStatusApproved, domain.RequestStatusRejected} {
		selected := ""
		if view.Filter.Status == status {
			selected = " selected"
		}
		fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, status, selected, status)
	}
	b.WriteString(`</select>`)
	fmt.Fprintf(&b, `<input type="text" name="reason" placeholder="reason" value="%s">`, markup.EscapeHTML(view.Filter.Reason))
	fmt.Fprintf(&b, `<input type="text" name="q" placeholder="검색" value="%s">`, markup.EscapeHTML(view.Filter.Search))
	b.WriteString(`<button type="submit">새로고침</button></form>`)
	fmt.Fprintf(&b, `<p class="status-msg" id="requestMsg">%s</p>`, markup.EscapeHTML(view.RequestMsg))
	b.WriteString(RenderRequestTable(view))
	b.WriteString(`</section>`)

	b.WriteString(pageFoot)
	return b.String()
}
