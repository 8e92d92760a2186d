package domain

// Document is a single Typesense document, passed through unchanged.
type Document = map[string]any

// DefaultQueryLimit is the page size used when a query does not set one.
const DefaultQueryLimit = 10

// SearchParams configures a document search against one collection.
type SearchParams struct {
	// Query is the search text; "*" matches everything.
	Query string

	// QueryBy lists the fields to search, comma separated.
	QueryBy string

	// FilterBy is an optional filter expression.
	FilterBy string

	// SortBy is an optional sort expression.
	SortBy string

	// PerPage is the number of hits to return.
	PerPage int

	// Prefix toggles prefix matching on the last token; nil leaves the server default.
	Prefix *bool

	// ExcludeFields lists document fields to omit from hits.
	ExcludeFields []string
}

// SearchResult is the raw result of a search.
type SearchResult struct {
	// Found is the total number of matching documents.
	Found int

	// Hits keeps each hit in the shape the server returned it
	// (document, highlights, text_match, ...).
	Hits []map[string]any
}

// Documents returns the document of every hit that carries one.
func (r SearchResult) Documents() []Document {
	docs := make([]Document, 0, len(r.Hits))
	for _, hit := range r.Hits {
		if doc, ok := hit["document"].(map[string]any); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// QueryRequest is a validated typesense_query invocation.
type QueryRequest struct {
	Query      string
	Collection string
	QueryBy    string
	FilterBy   string
	SortBy     string
	Limit      int
}

// EffectiveLimit returns Limit, or DefaultQueryLimit when unset.
func (q QueryRequest) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultQueryLimit
	}
	return q.Limit
}
