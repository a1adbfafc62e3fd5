package console

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/songminho/ragconsole/internal/backend"
	"github.com/songminho/ragconsole/internal/domain"
	"github.com/songminho/ragconsole/internal/markup"
)

// Status indicator levels. The indicator only moves on health-check and
// reindex events; there are no timers or automatic re-checks.
type StatusLevel string

const (
	StatusUnknown StatusLevel = "unknown"
	StatusOK      StatusLevel = "ok"
	StatusWarn    StatusLevel = "warn"
	StatusError   StatusLevel = "error"
)

// StatusIndicator is the user console's connection/progress badge.
type StatusIndicator struct {
	Level  StatusLevel
	Text   string
	Detail string
}

// User console messages.
const (
	msgSelectCollection      = "컬렉션을 선택하세요."
	msgSelectionMissing      = "선택된 컬렉션 정보를 찾을 수 없습니다."
	msgNoCollections         = "컬렉션 정보가 없습니다."
	msgCollectionsFetchError = "컬렉션 로드 실패"
	msgDocsLoadFailed        = "문서 목록 로드 실패"
	msgNoDocs                = "등록된 문서가 없습니다."
	msgDocFetchFailed        = "문서 조회 실패"
	msgHealthFailed          = "health check 실패"
	msgQueryFailed           = "요청 실패"
	msgPendingAnswer         = "생성 중..."
	msgUploadContentRequired = "업로드할 Markdown 내용을 입력하세요."
	msgUploadCreateFailed    = "업로드 요청 생성 실패"
)

// HistoryStore persists transcript messages. A nil store disables
// persistence; persistence failures are logged and never surfaced.
type HistoryStore interface {
	AppendMessage(msg *domain.Message) error
}

// UploadDraft is the user-filled upload form.
type UploadDraft struct {
	SourceName string
	Country    string
	DocType    string
	Content    string
}

// AppConsole drives the end-user chat console: provider settings,
// collection selection, the transcript, documents and upload requests.
type AppConsole struct {
	client  *backend.Client
	history HistoryStore
	logger  *zap.Logger

	mu        sync.Mutex
	sessionID string

	provider string
	model    string
	apiKey   string
	baseURL  string

	primaryKey   string
	secondaryKey string
	collections  domain.CollectionSnapshot
	hintOverride string

	transcript []domain.Message

	docs    []domain.DocSummary
	docsMsg string

	docTitle string
	docHTML  string

	status    StatusIndicator
	uploadMsg string
}

// AppView is a point-in-time copy of the console state for rendering.
type AppView struct {
	Provider     string
	Model        string
	APIKey       string
	BaseURL      string
	PrimaryKey   string
	SecondaryKey string
	Collections  domain.CollectionSnapshot
	Hint         string
	Transcript   []domain.Message
	Docs         []domain.DocSummary
	DocsMsg      string
	DocTitle     string
	DocHTML      string
	Status       StatusIndicator
	UploadMsg    string
}

// NewAppConsole creates a user console bound to a backend client. The
// initial provider gets its defaults applied immediately.
func NewAppConsole(client *backend.Client, history HistoryStore, sessionID, provider string, logger *zap.Logger) *AppConsole {
	if provider == "" {
		provider = domain.ProviderOllama
	}
	c := &AppConsole{
		client:    client,
		history:   history,
		logger:    logger,
		sessionID: sessionID,
		provider:  provider,
		status:    StatusIndicator{Level: StatusUnknown, Text: "Unknown"},
		docTitle:  "Document Viewer",
	}
	c.syncDefaults()
	return c
}

// View returns a snapshot of the current console state.
func (c *AppConsole) View() AppView {
	c.mu.Lock()
	defer c.mu.Unlock()
	transcript := make([]domain.Message, len(c.transcript))
	copy(transcript, c.transcript)
	return AppView{
		Provider:     c.provider,
		Model:        c.model,
		APIKey:       c.apiKey,
		BaseURL:      c.baseURL,
		PrimaryKey:   c.primaryKey,
		SecondaryKey: c.secondaryKey,
		Collections:  c.collections,
		Hint:         c.collectionHint(),
		Transcript:   transcript,
		Docs:         c.docs,
		DocsMsg:      c.docsMsg,
		DocTitle:     c.docTitle,
		DocHTML:      c.docHTML,
		Status:       c.status,
		UploadMsg:    c.uploadMsg,
	}
}

// SeedTranscript preloads previously persisted messages, oldest first.
func (c *AppConsole) SeedTranscript(messages []domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, messages...)
}

// SetProvider changes the LLM provider and pre-fills the provider's
// default model and base URL.
func (c *AppConsole) SetProvider(provider string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.provider = provider
	c.syncDefaults()
}

// UpdateSettings overrides model, API key and base URL without touching
// provider defaults.
func (c *AppConsole) UpdateSettings(model, apiKey, baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
	c.apiKey = apiKey
	c.baseURL = baseURL
}

func (c *AppConsole) syncDefaults() {
	switch c.provider {
	case domain.ProviderOllama:
		c.model = "qwen3:4b"
		c.baseURL = "http://localhost:11434"
	case domain.ProviderLMStudio:
		c.model = "local-model"
		c.baseURL = "http://localhost:1234/v1"
	default:
		c.model = "gpt-4o-mini"
		c.baseURL = ""
	}
}

// SelectPrimary sets the primary collection. A secondary equal to the new
// primary is cleared to unused.
func (c *AppConsole) SelectPrimary(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primaryKey = key
	if c.secondaryKey == c.primaryKey {
		c.secondaryKey = ""
	}
}

// SelectSecondary sets the secondary collection; selecting the primary
// again means unused.
func (c *AppConsole) SelectSecondary(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key == c.primaryKey {
		c.secondaryKey = ""
		return
	}
	c.secondaryKey = key
}

// SelectedCollectionKeys returns the 0-2 selected keys, primary first,
// defensively deduplicated even though the setters already enforce it.
func (c *AppConsole) SelectedCollectionKeys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedCollectionKeys()
}

func (c *AppConsole) selectedCollectionKeys() []string {
	var keys []string
	if c.primaryKey != "" {
		keys = append(keys, c.primaryKey)
	}
	if c.secondaryKey != "" && c.secondaryKey != c.primaryKey {
		keys = append(keys, c.secondaryKey)
	}
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return keys
}

// CollectionHint describes the current selection and the worst hard-cap
// usage among the selected collections.
func (c *AppConsole) CollectionHint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collectionHint()
}

func (c *AppConsole) collectionHint() string {
	if c.hintOverride != "" {
		return c.hintOverride
	}

	keys := c.selectedCollectionKeys()
	if len(keys) == 0 {
		return msgSelectCollection
	}

	var selected []domain.CollectionInfo
	for _, key := range keys {
		if info, ok := c.collections.Find(key); ok {
			selected = append(selected, info)
		}
	}
	if len(selected) == 0 {
		return msgSelectionMissing
	}

	labels := make([]string, len(selected))
	maxHardPct := 0
	for i, info := range selected {
		labels[i] = fmt.Sprintf("%s(%s)", info.Label, info.Key)
		if pct := info.HardPercent(); pct > maxHardPct {
			maxHardPct = pct
		}
	}
	return fmt.Sprintf("선택: %s | 최대 hard-cap 사용률 %d%%", strings.Join(labels, ", "), maxHardPct)
}

// LoadCollections refreshes the collection list and the two selectors,
// preserving selections that are still valid. A vanished primary falls
// back to the server default, a vanished secondary to unused.
func (c *AppConsole) LoadCollections(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadCollections(ctx)
}

func (c *AppConsole) loadCollections(ctx context.Context) {
	snap, err := c.client.Collections(ctx)
	if err != nil {
		c.hintOverride = failureText(err, msgCollectionsFetchError)
		return
	}

	c.collections = snap
	if len(snap.Collections) == 0 {
		c.primaryKey = "all"
		c.secondaryKey = ""
		c.hintOverride = msgNoCollections
		return
	}

	defaultKey := snap.DefaultCollectionKey
	if defaultKey == "" {
		defaultKey = "all"
	}
	if _, ok := snap.Find(c.primaryKey); !ok {
		c.primaryKey = defaultKey
	}
	if _, ok := snap.Find(c.secondaryKey); !ok {
		c.secondaryKey = ""
	}
	if c.secondaryKey == c.primaryKey {
		c.secondaryKey = ""
	}
	c.hintOverride = ""
}

// LoadDocs refreshes the indexed document list.
func (c *AppConsole) LoadDocs(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadDocs(ctx)
}

func (c *AppConsole) loadDocs(ctx context.Context) {
	list, err := c.client.ListDocs(ctx)
	if err != nil {
		if isStatusError(err) {
			c.docsMsg = failureText(err, msgDocsLoadFailed)
		} else {
			c.docsMsg = "오류: " + err.Error()
		}
		c.docs = nil
		return
	}

	c.docs = list.Docs
	if len(list.Docs) == 0 {
		c.docsMsg = msgNoDocs
	} else {
		c.docsMsg = ""
	}
}

// OpenDoc fetches one document and renders it through the Markdown
// renderer. The viewer title is set before the fetch; a failed fetch
// leaves the new title in place.
func (c *AppConsole) OpenDoc(ctx context.Context, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.docTitle = "Document Viewer - " + name
	doc, err := c.client.GetDoc(ctx, name)
	if err != nil {
		var text string
		if isStatusError(err) {
			text = markup.EscapeHTML(failureText(err, msgDocFetchFailed))
		} else {
			text = markup.EscapeHTML("오류: " + err.Error())
		}
		c.docHTML = "<p class='status-msg'>" + text + "</p>"
		return
	}
	c.docHTML = markup.RenderMarkdownBasic(doc.Content)
}

// HealthCheck probes the backend and drives the status indicator.
func (c *AppConsole) HealthCheck(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	health, err := c.client.Health(ctx)
	if err != nil {
		if isStatusError(err) {
			c.status = StatusIndicator{Level: StatusError, Text: "Error", Detail: failureText(err, msgHealthFailed)}
		} else {
			c.status = StatusIndicator{Level: StatusError, Text: "Offline", Detail: err.Error()}
		}
		return
	}

	key := health.CollectionKey
	if key == "" {
		key = "all"
	}
	c.status = StatusIndicator{
		Level:  StatusOK,
		Text:   "Online",
		Detail: fmt.Sprintf("default=%s, vectors=%d", key, health.Vectors),
	}
}

// SendQuestion appends the question and a placeholder answer to the
// transcript, asks the backend, and resolves the placeholder with the
// answer or the formatted failure. Blank questions are a no-op.
func (c *AppConsole) SendQuestion(ctx context.Context, question string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	question = strings.TrimSpace(question)
	if question == "" {
		return
	}

	c.appendMessage(domain.RoleUser, question, true)
	pending := c.appendMessage(domain.RoleBot, msgPendingAnswer, false)

	keys := c.selectedCollectionKeys()
	req := domain.QueryRequest{
		Query:       question,
		LLMProvider: c.provider,
		LLMModel:    c.model,
		LLMAPIKey:   c.apiKey,
		LLMBaseURL:  c.baseURL,
		Collections: keys,
	}
	if len(keys) > 0 {
		req.Collection = keys[0]
	}

	resp, err := c.client.Query(ctx, req)
	if err != nil {
		if isStatusError(err) {
			c.resolveMessage(pending, failureText(err, msgQueryFailed))
		} else {
			c.resolveMessage(pending, "오류: "+err.Error())
		}
		return
	}
	c.resolveMessage(pending, resp.Answer)
}

// Reindex rebuilds the index of the primary selection (or the backend
// default), reports the result, and refreshes documents then collections.
func (c *AppConsole) Reindex(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusIndicator{Level: StatusWarn, Text: "Working", Detail: "문서 재인덱싱 중..."}

	result, err := c.client.Reindex(ctx, true, c.primaryKey)
	if err != nil {
		if isStatusError(err) {
			c.status = StatusIndicator{Level: StatusError, Text: "Error", Detail: failureText(err, "reindex 실패")}
		} else {
			c.status = StatusIndicator{Level: StatusError, Text: "Error", Detail: err.Error()}
		}
		return
	}

	name := result.Collection
	if name == "" {
		name = c.primaryKey
	}
	if name == "" {
		name = "all"
	}
	summary := ""
	if result.Validation != nil && result.Validation.SummaryText != "" {
		summary = " | " + result.Validation.SummaryText
	}

	detail := fmt.Sprintf("reindex 완료: collection=%s, vectors=%d%s", name, result.Vectors, summary)
	c.status = StatusIndicator{Level: StatusOK, Text: "Online", Detail: detail}
	c.appendMessage(domain.RoleBot, fmt.Sprintf("재인덱싱 완료: collection=%s, vectors=%d%s", name, result.Vectors, summary), true)

	c.loadDocs(ctx)
	c.loadCollections(ctx)
}

// SubmitUploadRequest submits a new document for moderation. Blank
// content short-circuits locally with no backend call. Documents and
// collections are refreshed only when the backend approved immediately;
// a pending request changes nothing observable yet.
func (c *AppConsole) SubmitUploadRequest(ctx context.Context, draft UploadDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	content := strings.TrimSpace(draft.Content)
	if content == "" {
		c.uploadMsg = msgUploadContentRequired
		return
	}

	req := domain.CreateUploadRequest{
		Content:    content,
		SourceName: strings.TrimSpace(draft.SourceName),
		Collection: c.primaryKey,
		Country:    draft.Country,
		DocType:    draft.DocType,
	}

	receipt, err := c.client.CreateUploadRequest(ctx, req)
	if err != nil {
		c.uploadMsg = failureText(err, msgUploadCreateFailed)
		return
	}

	requestID := receipt.Request.ID
	if requestID == "" {
		requestID = "-"
	}
	status := receipt.Request.Status
	if status == "" {
		status = domain.RequestStatusPending
	}
	autoApprove := "off"
	if receipt.AutoApprove {
		autoApprove = "on"
	}

	c.uploadMsg = fmt.Sprintf("요청 생성 완료: id=%s, status=%s, auto_approve=%s", requestID, status, autoApprove)
	c.appendMessage(domain.RoleBot, fmt.Sprintf("업로드 요청 생성: id=%s, status=%s", requestID, status), true)

	if status == domain.RequestStatusApproved {
		c.loadCollections(ctx)
		c.loadDocs(ctx)
	}
}

// appendMessage adds a transcript entry and optionally persists it right
// away. Placeholders persist once resolved instead.
func (c *AppConsole) appendMessage(role, content string, persist bool) string {
	msg := domain.Message{
		ID:        uuid.New().String(),
		SessionID: c.sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	c.transcript = append(c.transcript, msg)

	if persist && c.history != nil {
		if err := c.history.AppendMessage(&msg); err != nil {
			c.logger.Warn("failed to persist transcript message", zap.Error(err))
		}
	}
	return msg.ID
}

// resolveMessage rewrites a placeholder's content and persists the final
// form.
func (c *AppConsole) resolveMessage(id, content string) {
	for i := range c.transcript {
		if c.transcript[i].ID == id {
			c.transcript[i].Content = content
			if c.history != nil {
				if err := c.history.AppendMessage(&c.transcript[i]); err != nil {
					c.logger.Warn("failed to persist transcript message", zap.Error(err))
				}
			}
			return
		}
	}
}
