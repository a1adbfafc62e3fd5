package domain

// Upload request status constants
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// UploadRequest is a user-submitted document awaiting moderation.
type UploadRequest struct {
	ID             string            `json:"id"`
	SourceName     string            `json:"source_name"`
	CollectionKey  string            `json:"collection_key"`
	Status         string            `json:"status"`
	Usable         bool              `json:"usable"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
	RejectedReason string            `json:"rejected_reason"`
	Validation     ValidationReport  `json:"validation"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// ValidationReport carries the backend's document validation verdict.
type ValidationReport struct {
	Usable  bool     `json:"usable"`
	Reasons []string `json:"reasons"`
}

// RequestCounts is the aggregate tally accompanying a queue fetch.
type RequestCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// RequestFilter narrows an upload-request listing. Empty fields are
// omitted from the query string entirely.
type RequestFilter struct {
	Status string
	Reason string
	Search string
}

// UploadQueueSnapshot is the full /upload-requests response.
type UploadQueueSnapshot struct {
	AutoApprove bool            `json:"auto_approve"`
	Counts      RequestCounts   `json:"counts"`
	Requests    []UploadRequest `json:"requests"`
}

// CreateUploadRequest is the payload for submitting a new document.
type CreateUploadRequest struct {
	Content    string `json:"content"`
	SourceName string `json:"source_name,omitempty"`
	Collection string `json:"collection,omitempty"`
	Country    string `json:"country,omitempty"`
	DocType    string `json:"doc_type,omitempty"`
}

// UploadReceipt is the response to a created upload request.
type UploadReceipt struct {
	Request     UploadRequest `json:"request"`
	AutoApprove bool          `json:"auto_approve"`
}
