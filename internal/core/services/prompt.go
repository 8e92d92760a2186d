package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/typesense-mcp/internal/logger"
)

// Ensure PromptService implements the interface.
var _ driving.PromptService = (*PromptService)(nil)

// promptSampleSize is the number of sample documents embedded in a prompt.
const promptSampleSize = 5

// Fixed follow-up instructions appended to each prompt.
const (
	analyzeInstruction = "Provide insights about the collection's structure, data types, " +
		"and how to effectively search it."
	suggestionsInstruction = "Based on the collection schema and sample data, suggest effective " +
		"search queries and parameters that would yield useful results."
)

// PromptService renders prompt conversations about a collection.
type PromptService struct {
	engine driven.SearchEngine
}

// NewPromptService creates a new prompt service.
func NewPromptService(engine driven.SearchEngine) *PromptService {
	return &PromptService{engine: engine}
}

// Render builds the named prompt for collection. The collection schema is
// required; sample documents are best effort.
func (s *PromptService) Render(ctx context.Context, name, collection string) (domain.PromptResult, error) {
	description, ok := domain.PromptDescriptions[name]
	if !ok {
		return domain.PromptResult{}, fmt.Errorf("%w: %s", domain.ErrUnknownPrompt, name)
	}
	if collection == "" {
		return domain.PromptResult{}, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}

	c, err := s.engine.RetrieveCollection(ctx, collection)
	if err != nil {
		return domain.PromptResult{}, fmt.Errorf("failed to analyze collection %s: %w", collection, err)
	}

	samples, err := sampleDocuments(ctx, s.engine, collection, promptSampleSize)
	if err != nil {
		logger.Warn("No sample documents found for collection %s: %v", collection, err)
		samples = []domain.Document{}
	}

	var text string
	if name == domain.PromptAnalyzeCollection {
		text, err = analyzeText(c, collection, samples)
	} else {
		text, err = suggestionsText(c, collection, samples)
	}
	if err != nil {
		return domain.PromptResult{}, fmt.Errorf("failed to analyze collection %s: %w", collection, err)
	}

	instruction := analyzeInstruction
	if name == domain.PromptSearchSuggestions {
		instruction = suggestionsInstruction
	}

	return domain.PromptResult{
		Description: description,
		Messages: []domain.PromptMessage{
			{Role: domain.RoleUser, Text: text},
			{Role: domain.RoleUser, Text: instruction},
		},
	}, nil
}

func analyzeText(c domain.Collection, name string, samples []domain.Document) (string, error) {
	var schema any = c.Raw
	if c.Raw == nil {
		schema = map[string]any{"name": c.Name, "fields": c.Fields}
	}
	schemaJSON, err := domain.PrettyJSON(schema)
	if err != nil {
		return "", err
	}
	samplesJSON, err := domain.PrettyJSON(samples)
	if err != nil {
		return "", err
	}

	count := "unknown"
	if n := c.DocumentCount(); n != 0 {
		count = strconv.FormatInt(n, 10)
	}

	return fmt.Sprintf("Please analyze the following Typesense collection:\nCollection: %s\n\n"+
		"Schema:\n%s\n\nDocument count: %s\n\nSample documents:\n%s",
		name, schemaJSON, count, samplesJSON), nil
}

func suggestionsText(c domain.Collection, name string, samples []domain.Document) (string, error) {
	fieldsJSON, err := domain.PrettyJSON(c.Fields)
	if err != nil {
		return "", err
	}
	samplesJSON, err := domain.PrettyJSON(samples)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Please suggest effective search queries for the following Typesense collection:\n"+
		"Collection: %s\n\nFields:\n%s\n\nSample documents:\n%s",
		name, fieldsJSON, samplesJSON), nil
}
