package llm

import (
	"context"
	"encoding/json"
)

// Message is a provider-neutral chat message.
type Message struct {
	Role       string // "user", "assistant", "tool"
	Content    string
	ToolCalls  []ToolCall
	ToolResult *ToolResult
}

// Tool describes a callable tool exposed to the model.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResult carries a tool's output back to the model.
type ToolResult struct {
	ToolCallID string
	Content    string
	IsError    bool
}

// ChatRequest is a single chat completion call.
type ChatRequest struct {
	Messages     []Message
	SystemPrompt string
	Tools        []Tool
	MaxTokens    int
}

// ChatResponse is the provider-neutral completion result.
type ChatResponse struct {
	Content      string
	ToolCalls    []ToolCall
	FinishReason string // "stop" or "tool_use"
}

// Provider is implemented by language model clients.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	ModelName() string
}

// Complete runs a single-prompt completion with no tools and returns the text.
func Complete(ctx context.Context, p Provider, prompt string) (string, error) {
	resp, err := p.Chat(ctx, ChatRequest{
		Messages: []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
