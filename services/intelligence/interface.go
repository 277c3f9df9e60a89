// File: services/intelligence/interface.go
package ai

import (
	"context"

	"tabletalk/models"
)

// AssistantService is the conversational boundary: one user message in, one
// natural-language reply out, with tool calls handled internally.
type AssistantService interface {
	Chat(ctx context.Context, sessionID, message string) (*models.ChatResponse, error)
}

// ChatModel is the language model boundary. Given the conversation so far it
// returns either plain text or one or more tool invocation requests.
type ChatModel interface {
	Generate(ctx context.Context, turns []models.Turn) (*ModelReply, error)
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ModelReply is a single model round: direct text, tool calls, or both.
type ModelReply struct {
	Text  string
	Calls []ToolCall
}
