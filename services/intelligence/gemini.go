// File: services/intelligence/gemini.go
package ai

import (
	"context"
	"fmt"
	"strings"

	"tabletalk/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModel is the ChatModel backed by Google Gemini function calling.
// The tool catalog is fixed at construction so the declarations the model
// reasons against stay stable across turns.
type GeminiModel struct {
	model *genai.GenerativeModel
}

func NewGeminiModel(ctx context.Context, apiKey, modelName, systemPrompt string, catalog []ToolSchema) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	model.Tools = buildGeminiTools(catalog)
	return &GeminiModel{model: model}, nil
}

// Generate sends the conversation so far and returns the model's text reply
// and/or requested tool calls.
func (g *GeminiModel) Generate(ctx context.Context, turns []models.Turn) (*ModelReply, error) {
	if len(turns) == 0 {
		return &ModelReply{}, nil
	}

	cs := g.model.StartChat()
	cs.History = contentsFromTurns(turns[:len(turns)-1])

	resp, err := cs.SendMessage(ctx, partsFromTurn(turns[len(turns)-1])...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}

	reply := &ModelReply{}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return reply, nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			reply.Calls = append(reply.Calls, ToolCall{Name: p.Name, Args: p.Args})
		}
	}
	reply.Text = sb.String()
	return reply, nil
}

func contentsFromTurns(turns []models.Turn) []*genai.Content {
	var contents []*genai.Content
	for _, t := range turns {
		contents = append(contents, &genai.Content{
			Role:  geminiRole(t.Role),
			Parts: partsFromTurn(t),
		})
	}
	return contents
}

func partsFromTurn(t models.Turn) []genai.Part {
	switch t.Role {
	case models.RoleTool:
		var response map[string]any
		if t.Envelope != nil {
			response = t.Envelope.Result
		}
		return []genai.Part{genai.FunctionResponse{Name: t.ToolName, Response: response}}
	case models.RoleAssistant:
		if t.ToolName != "" {
			parts := []genai.Part{genai.FunctionCall{Name: t.ToolName, Args: t.ToolArgs}}
			if t.Content != "" {
				parts = append([]genai.Part{genai.Text(t.Content)}, parts...)
			}
			return parts
		}
		return []genai.Part{genai.Text(t.Content)}
	default:
		return []genai.Part{genai.Text(t.Content)}
	}
}

func geminiRole(role string) string {
	switch role {
	case models.RoleAssistant:
		return "model"
	case models.RoleTool:
		return "function"
	default:
		return "user"
	}
}

func buildGeminiTools(catalog []ToolSchema) []*genai.Tool {
	var decls []*genai.FunctionDeclaration
	for _, schema := range catalog {
		properties := make(map[string]*genai.Schema, len(schema.Params))
		var required []string
		for _, p := range schema.Params {
			properties[p.Name] = &genai.Schema{
				Type:        geminiType(p.Type),
				Description: p.Description,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        schema.Name,
			Description: schema.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   required,
			},
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func geminiType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
