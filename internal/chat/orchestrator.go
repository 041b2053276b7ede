package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightlinelabs/leadchat/internal/leads"
	"github.com/brightlinelabs/leadchat/internal/observability/metrics"
	"github.com/brightlinelabs/leadchat/pkg/logging"
)

var chatTracer = otel.Tracer("leadchat.internal.chat")

const (
	replyMaxTokens    = 150
	replyTemperature  = 0.6
	completionTimeout = 30 * time.Second
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// LeadCapturer persists and notifies new leads at most once per triple.
type LeadCapturer interface {
	Capture(ctx context.Context, cand leads.Candidate, source string) (*leads.Lead, bool, error)
}

// Orchestrator drives one conversation turn: pattern-based lead capture,
// the completion call with the extraction tool attached, the
// model-triggered capture branch, and the follow-up acknowledgment call.
// It holds no per-request state; requests are independent.
type Orchestrator struct {
	client   chatClient
	capturer LeadCapturer
	model    string
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewOrchestrator returns a conversation orchestrator.
func NewOrchestrator(client chatClient, capturer LeadCapturer, model string, m *metrics.LeadMetrics, logger *logging.Logger) *Orchestrator {
	if client == nil {
		panic("chat: completion client required")
	}
	if capturer == nil {
		panic("chat: lead capturer required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		client:   client,
		capturer: capturer,
		model:    model,
		metrics:  m,
		logger:   logger,
	}
}

// Respond produces the reply for one turn. Both capture paths run through
// the same sink, so a lead surfaced by the regex pass and again by the
// model results in exactly one record and one notification.
func (o *Orchestrator) Respond(ctx context.Context, history []Message) (string, error) {
	if len(history) == 0 {
		return "", ErrNoMessages
	}

	ctx, span := chatTracer.Start(ctx, "chat.respond")
	defer span.End()
	span.SetAttributes(attribute.Int("leadchat.messages", len(history)))

	// Pattern capture runs before the completion call, so a lead is
	// recorded even if the model never triggers extraction.
	if cand, ok := leads.ExtractCandidate(toLeadMessages(history)); ok {
		if _, _, err := o.capturer.Capture(ctx, cand, leads.SourcePattern); err != nil {
			span.RecordError(err)
			return "", err
		}
	}

	msgs := toOpenAIMessages(history)
	resp, err := o.complete(ctx, "reply", openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    msgs,
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
		Tools:       []openai.Tool{extractLeadTool},
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	choice := resp.Choices[0].Message
	if len(choice.ToolCalls) == 0 {
		return strings.TrimSpace(choice.Content), nil
	}

	toolCall := choice.ToolCalls[0]
	if toolCall.Function.Name != extractLeadFunctionName {
		err := fmt.Errorf("%w: unexpected function %q", ErrBadToolPayload, toolCall.Function.Name)
		span.RecordError(err)
		return "", err
	}

	cand, err := parseExtractLeadArgs(toolCall.Function.Arguments)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	if _, _, err := o.capturer.Capture(ctx, cand, leads.SourceModel); err != nil {
		span.RecordError(err)
		return "", err
	}

	// Feed the tool call and its result back so the model can produce a
	// natural-language acknowledgment. No tool schema on this call.
	msgs = append(msgs, choice)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		Content:    toolCall.Function.Arguments,
		ToolCallID: toolCall.ID,
	})

	ack, err := o.complete(ctx, "acknowledgment", openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    msgs,
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	return strings.TrimSpace(ack.Choices[0].Message.Content), nil
}

func (o *Orchestrator) complete(ctx context.Context, call string, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	ctx, span := chatTracer.Start(ctx, "chat.completion")
	defer span.End()
	span.SetAttributes(attribute.String("leadchat.completion.call", call))

	callCtx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(callCtx, req)
	o.metrics.ObserveCompletion(call, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return resp, fmt.Errorf("%w: %w", ErrCompletion, err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("%w: no choices returned", ErrCompletion)
		span.RecordError(err)
		return resp, err
	}
	return resp, nil
}
