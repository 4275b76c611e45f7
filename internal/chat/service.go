// Package chat delegates completion requests to the inference server's
// OpenAI-compatible endpoint. Non-streaming calls return one response
// object; streaming calls write NDJSON fragment lines followed by a
// terminal done line.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/ErrayDineri/LMStudioAPI/pkg/types"
)

// Options configures a chat Service.
type Options struct {
	BaseURL             string
	APIKey              string
	DefaultRegularModel string
	DefaultVisionModel  string
	// Upstream read timeout. Zero disables the client timeout.
	Timeout time.Duration
}

// Service wraps the OpenAI-compatible completion client.
type Service struct {
	client         *openai.Client
	defaultRegular string
	defaultVision  string
	log            zerolog.Logger
}

// NewService builds a Service with a client pointed at the configured
// inference endpoint.
func NewService(opts Options, log zerolog.Logger) *Service {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	return &Service{
		client:         openai.NewClientWithConfig(cfg),
		defaultRegular: opts.DefaultRegularModel,
		defaultVision:  opts.DefaultVisionModel,
		log:            log,
	}
}

// resolveModel picks the request model or the configured default.
func (s *Service) resolveModel(modelKey, fallback string) (string, error) {
	if modelKey != "" {
		return modelKey, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrNoModel("no model loaded: request has no model_key and no default model is configured")
}

// Respond performs a non-streaming completion with the explicit model
// key, falling back to the default regular model.
func (s *Service) Respond(ctx context.Context, modelKey string, messages []types.ChatMessage, cfg *types.ChatConfig) (types.ChatResponse, error) {
	model, err := s.resolveModel(modelKey, s.defaultRegular)
	if err != nil {
		return types.ChatResponse{}, err
	}
	return s.respond(ctx, model, messages, cfg)
}

// RespondRegular always uses the default regular model.
func (s *Service) RespondRegular(ctx context.Context, messages []types.ChatMessage, cfg *types.ChatConfig) (types.ChatResponse, error) {
	model, err := s.resolveModel("", s.defaultRegular)
	if err != nil {
		return types.ChatResponse{}, err
	}
	return s.respond(ctx, model, messages, cfg)
}

// RespondVision always uses the default vision model.
func (s *Service) RespondVision(ctx context.Context, messages []types.ChatMessage, cfg *types.ChatConfig) (types.ChatResponse, error) {
	model, err := s.resolveModel("", s.defaultVision)
	if err != nil {
		return types.ChatResponse{}, err
	}
	return s.respond(ctx, model, messages, cfg)
}

// StreamRespond performs a streaming completion with the explicit model
// key, falling back to the default regular model. NDJSON lines are
// written to w and flushed as they arrive.
func (s *Service) StreamRespond(ctx context.Context, modelKey string, messages []types.ChatMessage, cfg *types.ChatConfig, w io.Writer, flush func()) error {
	model, err := s.resolveModel(modelKey, s.defaultRegular)
	if err != nil {
		return err
	}
	return s.stream(ctx, model, messages, cfg, w, flush)
}

// StreamRegular always uses the default regular model.
func (s *Service) StreamRegular(ctx context.Context, messages []types.ChatMessage, cfg *types.ChatConfig, w io.Writer, flush func()) error {
	model, err := s.resolveModel("", s.defaultRegular)
	if err != nil {
		return err
	}
	return s.stream(ctx, model, messages, cfg, w, flush)
}

// StreamVision always uses the default vision model.
func (s *Service) StreamVision(ctx context.Context, messages []types.ChatMessage, cfg *types.ChatConfig, w io.Writer, flush func()) error {
	model, err := s.resolveModel("", s.defaultVision)
	if err != nil {
		return err
	}
	return s.stream(ctx, model, messages, cfg, w, flush)
}

func (s *Service) buildRequest(model string, messages []types.ChatMessage, cfg *types.ChatConfig) (openai.ChatCompletionRequest, error) {
	formatted, err := buildMessages(messages)
	if err != nil {
		return openai.ChatCompletionRequest{}, err
	}
	req := openai.ChatCompletionRequest{Model: model, Messages: formatted}
	applyConfig(&req, cfg)
	return req, nil
}

func (s *Service) respond(ctx context.Context, model string, messages []types.ChatMessage, cfg *types.ChatConfig) (types.ChatResponse, error) {
	req, err := s.buildRequest(model, messages, cfg)
	if err != nil {
		return types.ChatResponse{}, err
	}

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return types.ChatResponse{}, ErrUpstream(fmt.Sprintf("chat completion failed: %v", err))
	}
	if len(resp.Choices) == 0 {
		return types.ChatResponse{}, ErrUpstream("chat completion returned no choices")
	}
	s.log.Debug().Str("model", resp.Model).Dur("dur", time.Since(start)).Msg("completion finished")

	out := types.ChatResponse{
		Model:      resp.Model,
		Content:    resp.Choices[0].Message.Content,
		StopReason: string(resp.Choices[0].FinishReason),
	}
	if resp.Usage.CompletionTokens > 0 {
		n := resp.Usage.CompletionTokens
		out.PredictedTokens = &n
	}
	return out, nil
}

func (s *Service) stream(ctx context.Context, model string, messages []types.ChatMessage, cfg *types.ChatConfig, w io.Writer, flush func()) error {
	req, err := s.buildRequest(model, messages, cfg)
	if err != nil {
		return err
	}
	req.Stream = true

	stream, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return ErrUpstream(fmt.Sprintf("chat completion stream failed: %v", err))
	}
	defer stream.Close()

	enc := json.NewEncoder(w)
	modelName := ""
	stopReason := ""
	fragments := 0

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Client disconnects surface as context errors; stop quietly.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return ErrUpstream(fmt.Sprintf("reading chat stream: %v", err))
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		if modelName == "" && chunk.Model != "" {
			modelName = chunk.Model
		}
		if choice.Delta.Content != "" {
			frag := types.StreamFragment{Type: types.StreamTypeFragment, Content: choice.Delta.Content}
			if err := enc.Encode(frag); err != nil {
				return err
			}
			if flush != nil {
				flush()
			}
			fragments++
		}
		if choice.FinishReason != "" {
			stopReason = string(choice.FinishReason)
		}
	}

	done := types.StreamDone{Type: types.StreamTypeDone, Model: modelName, StopReason: stopReason}
	if done.Model == "" {
		done.Model = model
	}
	if fragments > 0 {
		n := fragments
		done.PredictedTokens = &n
	}
	if err := enc.Encode(done); err != nil {
		return err
	}
	if flush != nil {
		flush()
	}
	return nil
}
