package console

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/songminho/ragconsole/internal/domain"
)

func requestsJSON() string {
	return `{
		"auto_approve": false,
		"counts": {"pending": 1, "approved": 2, "rejected": 3},
		"requests": [
			{"id": "r1", "source_name": "src", "collection_key": "law",
			 "status": "pending", "usable": true,
			 "created_at": "2026-08-01", "updated_at": "2026-08-02",
			 "rejected_reason": "", "validation": {"usable": true, "reasons": ["ok"]}},
			{"id": "r2", "source_name": "", "collection_key": "tax",
			 "status": "approved", "usable": true,
			 "created_at": "2026-07-01", "updated_at": "2026-07-02",
			 "rejected_reason": "", "validation": {"usable": true, "reasons": []}}
		]
	}`
}

func TestApproveBlankCodeMakesNoNetworkCalls(t *testing.T) {
	stub := newRecordingBackend()
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())

	admin.Approve(context.Background(), "r1", "   ")

	if stub.callCount() != 0 {
		t.Fatalf("expected zero backend calls, got %v", stub.callLog())
	}
	if got := admin.View().AdminMsg; got != "관리자 코드를 먼저 입력하세요." {
		t.Fatalf("AdminMsg = %q", got)
	}
}

func TestRejectBlankCodeOrReasonMakesNoNetworkCalls(t *testing.T) {
	stub := newRecordingBackend()
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())

	admin.Reject(context.Background(), "r1", "", "dup")
	if got := admin.View().AdminMsg; got != "관리자 코드를 먼저 입력하세요." {
		t.Fatalf("AdminMsg after blank code = %q", got)
	}

	admin.Reject(context.Background(), "r1", "secret", "   ")
	if got := admin.View().AdminMsg; got != "반려 사유 입력이 취소되었습니다." {
		t.Fatalf("AdminMsg after blank reason = %q", got)
	}

	if stub.callCount() != 0 {
		t.Fatalf("expected zero backend calls, got %v", stub.callLog())
	}
}

func TestApproveSuccessReloadsQueueThenCollections(t *testing.T) {
	stub := newRecordingBackend()
	stub.on("POST /upload-requests/r1/approve", serveJSON(`{"ok": true}`))
	stub.on("GET /upload-requests", serveJSON(requestsJSON()))
	stub.on("GET /collections", serveJSON(collectionsJSON()))
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())

	admin.Approve(context.Background(), "r1", "secret")

	want := []string{
		"POST /upload-requests/r1/approve",
		"GET /upload-requests",
		"GET /collections",
	}
	got := stub.callLog()
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, got[i], want[i])
		}
	}
	if msg := admin.View().AdminMsg; msg != "승인 완료: r1" {
		t.Errorf("AdminMsg = %q", msg)
	}
}

func TestRejectSuccessReloadsQueueOnly(t *testing.T) {
	stub := newRecordingBackend()
	stub.on("POST /upload-requests/r1/reject", serveJSON(`{"ok": true}`))
	stub.on("GET /upload-requests", serveJSON(requestsJSON()))
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())

	admin.Reject(context.Background(), "r1", "secret", "dup content")

	got := stub.callLog()
	if len(got) != 2 || got[0] != "POST /upload-requests/r1/reject" || got[1] != "GET /upload-requests" {
		t.Fatalf("calls = %v", got)
	}
	for _, call := range got {
		if call == "GET /collections" {
			t.Fatal("reject must not reload collections")
		}
	}
}

func TestApproveFailureShowsNormalizedError(t *testing.T) {
	stub := newRecordingBackend()
	stub.on("POST /upload-requests/r1/approve",
		serveJSONStatus(403, `{"message": "코드 불일치", "request_id": "req-7"}`))
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())

	admin.Approve(context.Background(), "r1", "wrong")

	if got := admin.View().AdminMsg; got != "코드 불일치 | request_id: req-7" {
		t.Fatalf("AdminMsg = %q", got)
	}
	if stub.callCount() != 1 {
		t.Fatalf("failed approve must not trigger reloads, calls = %v", stub.callLog())
	}
}

func TestLoadCollectionsHTTPFailureUsesFixedMessage(t *testing.T) {
	stub := newRecordingBackend()
	stub.on("GET /collections", serveJSONStatus(500, `{"message": "detailed reason"}`))
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())

	admin.LoadCollections(context.Background())

	// This endpoint deliberately ignores the structured body.
	if got := admin.View().CollectionMsg; got != "컬렉션 상태 조회 실패" {
		t.Fatalf("CollectionMsg = %q", got)
	}
}

func TestLoadRequestsFailureUsesNormalizer(t *testing.T) {
	stub := newRecordingBackend()
	stub.on("GET /upload-requests",
		serveJSONStatus(400, `{"detail": {"message": "잘못된 status", "hint": "pending|approved|rejected"}}`))
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())

	admin.LoadRequests(context.Background())

	want := "잘못된 status | hint: pending|approved|rejected"
	if got := admin.View().RequestMsg; got != want {
		t.Fatalf("RequestMsg = %q, want %q", got, want)
	}
}

func TestLoadSuccessMessagesAndCounts(t *testing.T) {
	stub := newRecordingBackend()
	stub.on("GET /collections", serveJSON(collectionsJSON()))
	stub.on("GET /upload-requests", serveJSON(requestsJSON()))
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())

	admin.Refresh(context.Background())
	view := admin.View()

	if view.CollectionMsg != "조회 완료: 2개 컬렉션, auto_approve=on" {
		t.Errorf("CollectionMsg = %q", view.CollectionMsg)
	}
	if view.RequestMsg != "요청 집계: pending=1, approved=2, rejected=3" {
		t.Errorf("RequestMsg = %q", view.RequestMsg)
	}
}

func TestRenderCollectionTable(t *testing.T) {
	stub := newRecordingBackend()
	stub.on("GET /collections", serveJSON(collectionsJSON()))
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())
	admin.LoadCollections(context.Background())

	html := RenderCollectionTable(admin.View())
	for _, want := range []string{"law (default)", "50% / 25%", "정상", "soft-cap 경고", "rag_tax"} {
		if !strings.Contains(html, want) {
			t.Errorf("collection table missing %q", want)
		}
	}
}

func TestRenderRequestTableActionsOnlyForPending(t *testing.T) {
	stub := newRecordingBackend()
	stub.on("GET /upload-requests", serveJSON(requestsJSON()))
	admin := NewAdminConsole(newBackendClient(t, stub), zap.NewNop())
	admin.LoadRequests(context.Background())

	html := RenderRequestTable(admin.View())
	if !strings.Contains(html, "/admin/requests/r1/approve") {
		t.Error("pending row r1 must expose an approve action")
	}
	if !strings.Contains(html, "/admin/requests/r1/reject") {
		t.Error("pending row r1 must expose a reject action")
	}
	if strings.Contains(html, "/admin/requests/r2/") {
		t.Error("non-pending row r2 must not expose actions")
	}
}

func TestRenderRequestTableEmpty(t *testing.T) {
	view := AdminView{HasQueue: true, Queue: domain.UploadQueueSnapshot{}}
	if got := RenderRequestTable(view); !strings.Contains(got, "요청 데이터가 없습니다") {
		t.Fatalf("empty table = %q", got)
	}
}
