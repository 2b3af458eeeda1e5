package llm

import (
	"encoding/json"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestSanitizeToolName(t *testing.T) {
	cases := map[string]string{
		"naver_search":  "naver_search",
		"serpapi-tool":  "serpapi-tool",
		"도구 이름":         "tool",
		"tool name!":    "tool_name",
		" spaced ":      "spaced",
		"":              "tool",
	}
	for input, want := range cases {
		if got := sanitizeToolName(input); got != want {
			t.Errorf("sanitizeToolName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMessageToOpenAIToolResult(t *testing.T) {
	msg := Message{
		Role: "tool",
		ToolResult: &ToolResult{
			ToolCallID: "call-1",
			Content:    "관찰 결과",
		},
	}

	got := messageToOpenAI(msg)

	if got.Role != openai.ChatMessageRoleTool {
		t.Fatalf("role = %q", got.Role)
	}
	if got.ToolCallID != "call-1" || got.Content != "관찰 결과" {
		t.Fatalf("message = %+v", got)
	}
}

func TestMessageToOpenAIAssistantToolCalls(t *testing.T) {
	msg := Message{
		Role: "assistant",
		ToolCalls: []ToolCall{{
			ID:    "call-1",
			Name:  "naver_search",
			Input: json.RawMessage(`{"query":"쿼리"}`),
		}},
	}

	got := messageToOpenAI(msg)

	if len(got.ToolCalls) != 1 {
		t.Fatalf("tool calls = %+v", got.ToolCalls)
	}
	if got.ToolCalls[0].Function.Name != "naver_search" {
		t.Fatalf("function name = %q", got.ToolCalls[0].Function.Name)
	}
	if got.ToolCalls[0].Function.Arguments != `{"query":"쿼리"}` {
		t.Fatalf("arguments = %q", got.ToolCalls[0].Function.Arguments)
	}
}

func TestResponseFromOpenAIToolUse(t *testing.T) {
	resp := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			FinishReason: openai.FinishReasonToolCalls,
			Message: openai.ChatCompletionMessage{
				ToolCalls: []openai.ToolCall{{
					ID:       "call-1",
					Function: openai.FunctionCall{Name: "ces_search", Arguments: `{"query":"q"}`},
				}},
			},
		}},
	}

	got := responseFromOpenAI(resp)

	if got.FinishReason != "tool_use" {
		t.Fatalf("finish reason = %q", got.FinishReason)
	}
	if len(got.ToolCalls) != 1 || got.ToolCalls[0].Name != "ces_search" {
		t.Fatalf("tool calls = %+v", got.ToolCalls)
	}
}

func TestResponseFromOpenAIEmptyChoices(t *testing.T) {
	got := responseFromOpenAI(openai.ChatCompletionResponse{})

	if got.FinishReason != "stop" || got.Content != "" {
		t.Fatalf("response = %+v", got)
	}
}
