package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kayz/sonar/internal/llm"
	"github.com/kayz/sonar/internal/logger"
	"github.com/kayz/sonar/internal/search"
)

// toolDescriptions document each retrieval tool for the model.
var toolDescriptions = map[string]string{
	search.EngineSerpAPI: "주가, 날씨, 실시간 정보, 일반 웹 검색 등 다양한 최신 정보를 검색할 때 사용. 쿼리를 입력받아 검색 결과 '본문'과 '출처' URL이 포함된 텍스트를 반환.",
	search.EngineNaver:   "한국 관련 뉴스, 정부 기관, 블로그, 지식인, 쇼핑 등 한국 특화 정보 검색 시 사용. 쿼리를 입력받아 여러 결과의 '본문'과 '출처' URL을 통합하여 반환.",
	search.EngineCES:     "기술 블로그, 해외 논문, 특정 웹사이트 등 보다 정제된 일반 웹 검색이 필요할 때 사용. 쿼리를 입력받아 여러 결과의 '본문'과 '출처' URL을 통합하여 반환.",
}

var searchToolSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"query": {"type": "string", "description": "검색 쿼리"}
	},
	"required": ["query"]
}`)

// traceStep records one retrieval tool invocation inside the loop.
type traceStep struct {
	tool        string
	observation string
	links       []string
}

// agentResult is the outcome of the bounded reasoning loop.
type agentResult struct {
	final string
	trace []traceStep
}

type searchToolInput struct {
	Query string `json:"query"`
}

// toolNameFor derives the tool name exposed for an engine.
func toolNameFor(engineName string) string {
	return engineName + "_search"
}

// runAgent drives the bounded tool-calling loop with exactly one retrieval
// tool registered. Malformed tool calls get a corrective tool result and
// the loop continues; hitting the iteration cap ends with whatever text
// the model produced last.
func (p *Pipeline) runAgent(ctx context.Context, engine search.Engine, refined string) agentResult {
	toolName := toolNameFor(engine.Name())
	tools := []llm.Tool{{
		Name:        toolName,
		Description: toolDescriptions[engine.Name()],
		InputSchema: searchToolSchema,
	}}

	messages := []llm.Message{{
		Role:    "user",
		Content: fmt.Sprintf(agentTaskPrompt, refined, toolName),
	}}

	result := agentResult{}
	lastContent := ""

	for round := 0; round < p.cfg.MaxIterations; round++ {
		resp, err := p.provider.Chat(ctx, llm.ChatRequest{
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			logger.Error("[Agent] round %d failed: %v", round+1, err)
			result.final = fmt.Sprintf("Agent 실행 중 에러 발생: %v", err)
			return result
		}

		if resp.FinishReason != "tool_use" || len(resp.ToolCalls) == 0 {
			result.final = strings.TrimSpace(resp.Content)
			return result
		}

		if resp.Content != "" {
			lastContent = resp.Content
		}
		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			messages = append(messages, p.executeToolCall(ctx, engine, toolName, call, &result))
		}
	}

	logger.Warn("[Agent] iteration cap reached after %d rounds", p.cfg.MaxIterations)
	result.final = strings.TrimSpace(lastContent)
	return result
}

// executeToolCall runs one tool call and returns the tool result message.
// Wrong tool names and unparseable input produce a corrective result.
func (p *Pipeline) executeToolCall(ctx context.Context, engine search.Engine, toolName string, call llm.ToolCall, result *agentResult) llm.Message {
	var input searchToolInput
	badInput := json.Unmarshal(call.Input, &input) != nil || strings.TrimSpace(input.Query) == ""

	if call.Name != toolName || badInput {
		logger.Warn("[Agent] malformed tool call: name=%q input=%s", call.Name, string(call.Input))
		return llm.Message{
			Role: "tool",
			ToolResult: &llm.ToolResult{
				ToolCallID: call.ID,
				Content:    agentCorrection,
				IsError:    true,
			},
		}
	}

	step := p.retrieve(ctx, engine, input.Query)
	result.trace = append(result.trace, traceStep{
		tool:        toolName,
		observation: step.observation,
		links:       step.links,
	})
	logger.Info("[Agent] tool %s returned %d chars, %d links", toolName, len(step.observation), len(step.links))

	return llm.Message{
		Role: "tool",
		ToolResult: &llm.ToolResult{
			ToolCallID: call.ID,
			Content:    step.observation,
		},
	}
}

// lastRetrieval walks the trace newest to oldest and returns the most
// recent retrieval step. ok is false when no tool ran.
func lastRetrieval(trace []traceStep) (traceStep, bool) {
	for i := len(trace) - 1; i >= 0; i-- {
		if trace[i].observation != "" {
			return trace[i], true
		}
	}
	return traceStep{}, false
}
