package domain

// LLM provider identifiers recognized by the user console. Anything else
// falls back to the hosted default.
const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderOpenAI   = "openai"
)

// QueryRequest is the payload for asking a question through /query.
type QueryRequest struct {
	Query       string   `json:"query"`
	LLMProvider string   `json:"llm_provider"`
	LLMModel    string   `json:"llm_model,omitempty"`
	LLMAPIKey   string   `json:"llm_api_key,omitempty"`
	LLMBaseURL  string   `json:"llm_base_url,omitempty"`
	Collection  string   `json:"collection,omitempty"`
	Collections []string `json:"collections,omitempty"`
}

// QueryResponse is the backend's answer.
type QueryResponse struct {
	Answer   string `json:"answer"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// ReindexRequest asks the backend to rebuild a collection's index.
type ReindexRequest struct {
	Reset      bool   `json:"reset"`
	Collection string `json:"collection,omitempty"`
}

// ValidationSummary is the document-validation digest attached to a
// reindex result.
type ValidationSummary struct {
	SummaryText string `json:"summary_text"`
}

// ReindexResult is the /reindex response.
type ReindexResult struct {
	Docs          int                `json:"docs"`
	DocsTotal     int                `json:"docs_total"`
	Chunks        int                `json:"chunks"`
	Vectors       int                `json:"vectors"`
	Collection    string             `json:"collection"`
	CollectionKey string             `json:"collection_key"`
	Validation    *ValidationSummary `json:"validation,omitempty"`
}

// HealthStatus is the /health response.
type HealthStatus struct {
	Status          string `json:"status"`
	CollectionKey   string `json:"collection_key"`
	Collection      string `json:"collection"`
	Vectors         int    `json:"vectors"`
	AutoApprove     bool   `json:"auto_approve"`
	PendingRequests int    `json:"pending_requests"`
}
