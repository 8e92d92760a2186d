package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

// Resource template URIs.
const (
	searchTemplateURI     = domain.ResourceScheme + "://collections/{collection}/search"
	collectionTemplateURI = domain.ResourceScheme + "://collections/{collection}"
)

const searchUsage = `To search Typesense collections, you can use these parameters:

Search parameters:
- q: The query text to search for in the documents
- query_by: Comma-separated list of fields to search against
- filter_by: Filter conditions for refining your search results
- sort_by: Fields to sort the results by
- per_page: Number of results to return per page (default: 10)
- page: Page number of results to return (starts at 1)

Example queries:
1. Basic search for "machine learning" in title and content fields:
{
  "q": "machine learning",
  "query_by": "title,content"
}

2. Search with filtering by category:
{
  "q": "neural networks",
  "query_by": "title,content",
  "filter_by": "category:AI"
}

3. Search with custom sorting:
{
  "q": "database",
  "query_by": "title,content",
  "sort_by": "published_date:desc"
}

Use these patterns to construct Typesense search queries.`

const collectionUsage = `This template is used to view details about a Typesense collection.

The URI format follows this pattern:
typesense://collections/{collection_name}

For example:
typesense://collections/products

This will return information about the collection including:
- Field definitions
- Number of documents
- Collection-specific settings
- Schema details`

// resourceTemplates returns the static template catalog.
func resourceTemplates() []*mcp.ResourceTemplate {
	return []*mcp.ResourceTemplate{
		{
			URITemplate: searchTemplateURI,
			Name:        "typesense_search",
			Description: "Template for constructing Typesense search queries\n\n" + searchUsage,
			MIMEType:    domain.MIMETypeText,
		},
		{
			URITemplate: collectionTemplateURI,
			Name:        "typesense_collection",
			Description: "Template for viewing Typesense collection details\n\n" + collectionUsage,
			MIMEType:    domain.MIMETypeJSON,
		},
	}
}

// registerResources registers the resource templates with the MCP server.
// Listing concrete resources is handled by resourceListMiddleware.
func (s *Server) registerResources() {
	templates := resourceTemplates()
	s.server.AddResourceTemplate(templates[0], s.handleSearchTemplate)
	s.server.AddResourceTemplate(templates[1], s.handleCollectionResource)
}

// listResources returns one resource per collection.
func (s *Server) listResources(ctx context.Context) (*mcp.ListResourcesResult, error) {
	collections, err := s.ports.Catalog.Resources(ctx)
	if err != nil {
		return nil, err
	}

	res := &mcp.ListResourcesResult{Resources: make([]*mcp.Resource, 0, len(collections))}
	for _, c := range collections {
		res.Resources = append(res.Resources, &mcp.Resource{
			URI:         c.URI,
			Name:        c.Name,
			Description: c.Description,
			MIMEType:    c.MIMEType,
		})
	}
	return res, nil
}

// handleCollectionResource returns the schema and a sample document of a collection.
func (s *Server) handleCollectionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return s.readCollection(ctx, req.Params.URI)
}

func (s *Server) readCollection(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	desc, err := s.ports.Catalog.Describe(ctx, uri)
	if err != nil {
		return nil, err
	}

	text, err := domain.PrettyJSON(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: domain.MIMETypeJSON,
			Text:     text,
		}},
	}, nil
}

// handleSearchTemplate returns the search usage text for any collection.
func (s *Server) handleSearchTemplate(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: domain.MIMETypeText,
			Text:     searchUsage,
		}},
	}, nil
}
