// Package typesensetest provides an in-process fake Typesense server for tests.
//
// It serves the read-only subset of the Typesense HTTP API the adapter uses:
// health, collection listing and retrieval, document retrieval and a naive
// document search. Every request must carry the configured API key.
package typesensetest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

// Server is a fake Typesense node backed by in-memory collections.
type Server struct {
	*httptest.Server

	apiKey string

	mu          sync.Mutex
	collections map[string]map[string]any
	documents   map[string][]map[string]any
	searches    []url.Values
	requests    int
	failures    map[string]int
	healthy     bool
}

// New starts a fake server that accepts apiKey. Callers must Close it.
func New(apiKey string) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		apiKey:      apiKey,
		collections: make(map[string]map[string]any),
		documents:   make(map[string][]map[string]any),
		failures:    make(map[string]int),
		healthy:     true,
	}

	r := gin.New()
	r.Use(s.requireAPIKey)
	r.GET("/health", s.health)
	r.GET("/collections", s.listCollections)
	r.GET("/collections/:name", s.retrieveCollection)
	// Search shares the document route; "search" is not a valid lookup.
	r.GET("/collections/:name/documents/:id", s.documentOrSearch)

	s.Server = httptest.NewServer(r)
	return s
}

// AddCollection registers a collection schema and its documents.
// The schema must carry a "name".
func (s *Server) AddCollection(schema map[string]any, docs ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, _ := schema["name"].(string)
	s.collections[name] = schema
	s.documents[name] = append(s.documents[name], docs...)
}

// Fail makes every request whose path starts with prefix fail with status.
func (s *Server) Fail(prefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[prefix] = status
}

// SetHealthy controls the /health response.
func (s *Server) SetHealthy(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = ok
}

// Requests returns the number of authenticated requests received so far.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Searches returns the query parameters of every search received so far.
func (s *Server) Searches() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]url.Values, len(s.searches))
	copy(out, s.searches)
	return out
}

func (s *Server) requireAPIKey(c *gin.Context) {
	if c.GetHeader("X-TYPESENSE-API-KEY") != s.apiKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "Forbidden - a valid `x-typesense-api-key` header must be sent.",
		})
		return
	}

	s.mu.Lock()
	s.requests++
	status := 0
	for prefix, code := range s.failures {
		if strings.HasPrefix(c.Request.URL.Path, prefix) {
			status = code
			break
		}
	}
	s.mu.Unlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": http.StatusText(status)})
		return
	}
	c.Next()
}

func (s *Server) health(c *gin.Context) {
	s.mu.Lock()
	ok := s.healthy
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listCollections(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		out = append(out, s.describe(name))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) retrieveCollection(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := c.Param("name")
	if _, ok := s.collections[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
		return
	}
	c.JSON(http.StatusOK, s.describe(name))
}

func (s *Server) documentOrSearch(c *gin.Context) {
	if c.Param("id") == "search" {
		s.search(c)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, id := c.Param("name"), c.Param("id")
	if _, ok := s.collections[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
		return
	}
	for _, doc := range s.documents[name] {
		if doc["id"] == id {
			c.JSON(http.StatusOK, doc)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Could not find a document with id: " + id})
}

// search matches documents whose query_by fields contain q, case-insensitively.
// A q of "*" matches every document.
func (s *Server) search(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	params := c.Request.URL.Query()
	s.searches = append(s.searches, params)

	name := c.Param("name")
	if _, ok := s.collections[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
		return
	}

	q := params.Get("q")
	queryBy := splitList(params.Get("query_by"))
	exclude := splitList(params.Get("exclude_fields"))
	perPage := 10
	if v, err := strconv.Atoi(params.Get("per_page")); err == nil && v > 0 {
		perPage = v
	}

	var matched []map[string]any
	for _, doc := range s.documents[name] {
		if q == "*" || matches(doc, queryBy, q) {
			matched = append(matched, doc)
		}
	}

	hits := make([]map[string]any, 0, perPage)
	for i, doc := range matched {
		if i == perPage {
			break
		}
		hits = append(hits, map[string]any{
			"document":   without(doc, exclude),
			"highlights": []any{},
			"text_match": 100,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"found":          len(matched),
		"hits":           hits,
		"out_of":         len(s.documents[name]),
		"page":           1,
		"search_time_ms": 0,
	})
}

// describe returns the collection schema with the live document count (caller holds lock).
func (s *Server) describe(name string) map[string]any {
	out := make(map[string]any, len(s.collections[name])+1)
	for k, v := range s.collections[name] {
		out[k] = v
	}
	if _, ok := out["num_documents"]; !ok {
		out["num_documents"] = len(s.documents[name])
	}
	return out
}

func matches(doc map[string]any, fields []string, q string) bool {
	q = strings.ToLower(q)
	for _, f := range fields {
		if v, ok := doc[f].(string); ok && strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func without(doc map[string]any, exclude []string) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	for _, f := range exclude {
		delete(out, f)
	}
	return out
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
