package domain

// DocSummary is one entry of the /rag-docs listing.
type DocSummary struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// SizeKB returns the document size rounded to whole kilobytes, as shown
// in the document list.
func (d DocSummary) SizeKB() int64 {
	return (d.Size + 512) / 1024
}

// DocList is the /rag-docs response.
type DocList struct {
	Docs []DocSummary `json:"docs"`
}

// DocContent is the full Markdown body of a single indexed document.
type DocContent struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
