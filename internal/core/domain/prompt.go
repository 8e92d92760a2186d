package domain

// Prompt names.
const (
	PromptAnalyzeCollection = "analyze_collection"
	PromptSearchSuggestions = "search_suggestions"
)

// PromptDescriptions maps each supported prompt to its description.
var PromptDescriptions = map[string]string{
	PromptAnalyzeCollection: "Analyze a Typesense collection structure and contents",
	PromptSearchSuggestions: "Get suggestions for effective search queries for a collection",
}

// RoleUser is the only role generated prompts use.
const RoleUser = "user"

// PromptMessage is one message of a generated prompt conversation.
type PromptMessage struct {
	Role string
	Text string
}

// PromptResult is a generated prompt.
type PromptResult struct {
	Description string
	Messages    []PromptMessage
}
