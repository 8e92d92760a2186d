package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// URI scheme and path used to address collections as MCP resources.
const (
	ResourceScheme     = "typesense"
	collectionsSegment = "collections"
	collectionsPrefix  = "/" + collectionsSegment + "/"
)

// MIME types served by the adapter.
const (
	MIMETypeJSON = "application/json"
	MIMETypeText = "text/plain"
)

// Collection is a transient projection of a Typesense collection.
// It is fetched per request and never cached.
type Collection struct {
	// Name is the collection name.
	Name string

	// NumDocuments is the document count; nil when the server omitted it.
	NumDocuments *int64

	// Fields holds the raw field definitions.
	Fields []map[string]any

	// Raw keeps every attribute the server returned.
	Raw map[string]any
}

// DocumentCount returns the document count, or 0 when unknown.
func (c Collection) DocumentCount() int64 {
	if c.NumDocuments == nil {
		return 0
	}
	return *c.NumDocuments
}

// CollectionResource is how a collection is listed to agents.
type CollectionResource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// NewCollectionResource builds the resource listing entry for c.
func NewCollectionResource(c Collection) CollectionResource {
	return CollectionResource{
		URI:         CollectionURI(c.Name),
		Name:        c.Name,
		Description: fmt.Sprintf("Collection with %d documents", c.DocumentCount()),
		MIMEType:    MIMETypeJSON,
	}
}

// CollectionDescription is the payload returned when a collection resource is read.
// Field order is part of the output format.
type CollectionDescription struct {
	Type   string           `json:"type"`
	Name   string           `json:"name"`
	Fields []map[string]any `json:"fields"`
	Sample Document         `json:"sample"`
}

// NewCollectionDescription describes c with an optional sample document.
// Fields default to an empty list so they never serialise as null.
func NewCollectionDescription(c Collection, sample Document) CollectionDescription {
	fields := c.Fields
	if fields == nil {
		fields = []map[string]any{}
	}
	return CollectionDescription{
		Type:   "collection",
		Name:   c.Name,
		Fields: fields,
		Sample: sample,
	}
}

// CollectionURI returns the resource URI for a collection name.
func CollectionURI(name string) string {
	return ResourceScheme + "://" + collectionsSegment + "/" + name
}

// CollectionNameFromURI extracts the collection name from a resource URI.
//
// Both typesense://collections/<name> (where "collections" parses as the
// authority) and typesense:///collections/<name> are accepted.
func CollectionNameFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}

	var name string
	if u.Host == collectionsSegment {
		name = strings.TrimPrefix(u.Path, "/")
	} else {
		name = strings.TrimPrefix(u.Path, collectionsPrefix)
		if name == u.Path {
			name = ""
		}
	}

	if name == "" {
		return "", ErrInvalidURI
	}
	return name, nil
}
