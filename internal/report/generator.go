package report

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/routr/backend/internal/domain"
)

var tracer = otel.Tracer("github.com/routr/backend/internal/report")

// Sampling parameters sent with every report request.
const (
	temperature      = 0.3
	topP             = 0.5
	frequencyPenalty = 0.2
	presencePenalty  = 0.2
)

// Generator turns trip input into a structured Report via one completion call.
type Generator struct {
	client  Completer
	model   string
	logger  *slog.Logger
	metrics *Metrics
}

// NewGenerator wires a Generator. logger and metrics may be nil.
func NewGenerator(client Completer, model string, logger *slog.Logger, metrics *Metrics) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, model: model, logger: logger, metrics: metrics}
}

// Generate builds the prompt for in, calls the completion API once and
// returns the validated report with its cost.
//
// Returns domain.ErrValidation when in has no stops and domain.ErrUpstream
// when the call fails or the reply does not match the schema.
func (g *Generator) Generate(ctx context.Context, in Input) (domain.Report, error) {
	if len(in.Stops) == 0 {
		return domain.Report{}, fmt.Errorf("report.Generator.Generate: %w: trip has no stops", domain.ErrValidation)
	}

	prompt, err := BuildPrompt(in)
	if err != nil {
		return domain.Report{}, fmt.Errorf("report.Generator.Generate: %w", err)
	}

	ctx, span := tracer.Start(ctx, "report.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", g.model),
		attribute.Int("report.stops", len(in.Stops)),
	)

	resp, err := g.client.Complete(ctx, CompletionRequest{
		Model:            g.model,
		Temperature:      temperature,
		TopP:             topP,
		FrequencyPenalty: frequencyPenalty,
		PresencePenalty:  presencePenalty,
		JSONMode:         true,
		Messages: []Message{
			{Role: "system", Content: SystemMessage},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		g.metrics.observe("transport_error")
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return domain.Report{}, fmt.Errorf("report.Generator.Generate: %w: %w", domain.ErrUpstream, err)
	}

	cost := Cost(resp.Usage)
	g.metrics.usage(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, cost)
	span.SetAttributes(
		attribute.Int("llm.prompt_tokens", resp.Usage.PromptTokens),
		attribute.Int("llm.completion_tokens", resp.Usage.CompletionTokens),
	)
	g.logger.InfoContext(ctx, "report completion",
		slog.String("model", g.model),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
		slog.Float64("cost", cost),
	)

	rep, err := Parse(resp.Content)
	if err != nil {
		g.metrics.observe("invalid_reply")
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid reply")
		return domain.Report{}, fmt.Errorf("report.Generator.Generate: %w: %w", domain.ErrUpstream, err)
	}
	if len(rep.Journey) != len(in.Stops) {
		g.metrics.observe("invalid_reply")
		err := fmt.Errorf("%w: got %d journey entries for %d stops", ErrSchema, len(rep.Journey), len(in.Stops))
		span.RecordError(err)
		span.SetStatus(codes.Error, "journey count mismatch")
		return domain.Report{}, fmt.Errorf("report.Generator.Generate: %w: %w", domain.ErrUpstream, err)
	}

	g.metrics.observe("ok")
	rep.Usage = resp.Usage
	rep.Cost = cost
	return rep, nil
}
