package console

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/songminho/ragconsole/internal/backend"
	"github.com/songminho/ragconsole/internal/domain"
)

// Admin console messages. The admin code itself is never stored here; it
// is re-read from the form on every privileged action.
const (
	msgCollectionsLoadFailed = "컬렉션 상태 조회 실패"
	msgRequestsLoadFailed    = "요청 조회 실패"
	msgAdminCodeRequired     = "관리자 코드를 먼저 입력하세요."
	msgRejectReasonCancelled = "반려 사유 입력이 취소되었습니다."
	msgApproveFailed         = "승인 실패"
	msgRejectFailed          = "반려 실패"
)

// AdminConsole drives the moderation console: collection capacity stats
// and the upload-request queue, with approve/reject actions.
type AdminConsole struct {
	client *backend.Client
	logger *zap.Logger

	mu          sync.Mutex
	filter      domain.RequestFilter
	collections domain.CollectionSnapshot
	hasStats    bool
	queue       domain.UploadQueueSnapshot
	hasQueue    bool

	collectionMsg string
	requestMsg    string
	adminMsg      string
}

// AdminView is a point-in-time copy of the console state for rendering.
type AdminView struct {
	Filter        domain.RequestFilter
	Collections   domain.CollectionSnapshot
	HasStats      bool
	Queue         domain.UploadQueueSnapshot
	HasQueue      bool
	CollectionMsg string
	RequestMsg    string
	AdminMsg      string
}

// NewAdminConsole creates an admin console bound to a backend client.
func NewAdminConsole(client *backend.Client, logger *zap.Logger) *AdminConsole {
	return &AdminConsole{client: client, logger: logger}
}

// View returns a snapshot of the current console state.
func (c *AdminConsole) View() AdminView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return AdminView{
		Filter:        c.filter,
		Collections:   c.collections,
		HasStats:      c.hasStats,
		Queue:         c.queue,
		HasQueue:      c.hasQueue,
		CollectionMsg: c.collectionMsg,
		RequestMsg:    c.requestMsg,
		AdminMsg:      c.adminMsg,
	}
}

// SetFilter replaces the queue filter used by the next LoadRequests.
func (c *AdminConsole) SetFilter(filter domain.RequestFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = filter
}

// Refresh reloads collections and then the request queue, in that order,
// so the on-screen auto-approve state is consistent when requests land.
func (c *AdminConsole) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadCollections(ctx)
	c.loadRequests(ctx)
}

// LoadCollections refreshes the capacity table.
func (c *AdminConsole) LoadCollections(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadCollections(ctx)
}

// LoadRequests refreshes the moderation queue with the current filter.
func (c *AdminConsole) LoadRequests(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadRequests(ctx)
}

func (c *AdminConsole) loadCollections(ctx context.Context) {
	snap, err := c.client.Collections(ctx)
	if err != nil {
		// This endpoint shows a fixed message on HTTP failure instead of
		// the normalized error body. Kept as the product behaves.
		if isStatusError(err) {
			c.collectionMsg = msgCollectionsLoadFailed
		} else {
			c.collectionMsg = err.Error()
		}
		return
	}

	c.collections = snap
	c.hasStats = true
	autoApprove := "off"
	if snap.AutoApprove {
		autoApprove = "on"
	}
	c.collectionMsg = fmt.Sprintf("조회 완료: %d개 컬렉션, auto_approve=%s", len(snap.Collections), autoApprove)
}

func (c *AdminConsole) loadRequests(ctx context.Context) {
	snap, err := c.client.UploadRequests(ctx, c.filter)
	if err != nil {
		c.requestMsg = failureText(err, msgRequestsLoadFailed)
		return
	}

	c.queue = snap
	c.hasQueue = true
	if len(snap.Requests) > 0 {
		c.requestMsg = fmt.Sprintf("요청 집계: pending=%d, approved=%d, rejected=%d",
			snap.Counts.Pending, snap.Counts.Approved, snap.Counts.Rejected)
	}
}

// Approve approves a pending request. A blank admin code short-circuits
// locally with no backend call. On success the queue and then the
// collection stats are reloaded, since approval can change vector counts.
func (c *AdminConsole) Approve(ctx context.Context, requestID, code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code = strings.TrimSpace(code)
	if code == "" {
		c.adminMsg = msgAdminCodeRequired
		return
	}

	if err := c.client.ApproveUploadRequest(ctx, requestID, code); err != nil {
		c.adminMsg = failureText(err, msgApproveFailed)
		return
	}

	c.logger.Info("upload request approved", zap.String("request_id", requestID))
	c.adminMsg = "승인 완료: " + requestID
	c.loadRequests(ctx)
	c.loadCollections(ctx)
}

// Reject rejects a pending request. A blank admin code or a blank reason
// short-circuits locally with no backend call. On success only the queue
// is reloaded.
func (c *AdminConsole) Reject(ctx context.Context, requestID, code, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	code = strings.TrimSpace(code)
	if code == "" {
		c.adminMsg = msgAdminCodeRequired
		return
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		c.adminMsg = msgRejectReasonCancelled
		return
	}

	if err := c.client.RejectUploadRequest(ctx, requestID, code, reason); err != nil {
		c.adminMsg = failureText(err, msgRejectFailed)
		return
	}

	c.logger.Info("upload request rejected",
		zap.String("request_id", requestID),
		zap.String("reason", reason),
	)
	c.adminMsg = "반려 완료: " + requestID
	c.loadRequests(ctx)
}
