package types

// ChatRequest is the payload for POST /chat and /chat/stream.
type ChatRequest struct {
	// Optional model key. If empty, the configured default regular model is used.
	// example: qwen/qwen3-4b-2507
	ModelKey string `json:"model_key,omitempty" example:"qwen/qwen3-4b-2507"`
	// Conversation messages in order.
	Messages []ChatMessage `json:"messages"`
	// Optional generation parameters. Unset fields are defaulted by the server.
	Config *ChatConfig `json:"config,omitempty"`
}

// RegularChatRequest is the payload for POST /chat/regular(/stream).
// The configured default regular model is always used.
type RegularChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Config   *ChatConfig   `json:"config,omitempty"`
}

// VisionChatRequest is the payload for POST /chat/vision(/stream).
// The configured default vision model is always used.
type VisionChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Config   *ChatConfig   `json:"config,omitempty"`
}

// ChatConfig carries optional sampling parameters. Every field is
// independently optional; nil means "let the inference server decide".
type ChatConfig struct {
	// Sampling temperature (higher = more random).
	// example: 0.7
	Temperature *float32 `json:"temperature,omitempty" example:"0.7"`
	// Maximum number of new tokens to generate.
	// example: 1024
	MaxTokens *int `json:"maxTokens,omitempty" example:"1024"`
	// Nucleus sampling probability.
	// example: 0.9
	TopP *float32 `json:"topP,omitempty" example:"0.9"`
	// Presence penalty.
	// example: 0.5
	PresencePenalty *float32 `json:"presencePenalty,omitempty" example:"0.5"`
	// Frequency penalty.
	// example: 0.5
	FrequencyPenalty *float32 `json:"frequencyPenalty,omitempty" example:"0.5"`
}

// ChatResponse is the non-streaming completion result.
type ChatResponse struct {
	// Model that produced the completion.
	// example: qwen/qwen3-4b-2507
	Model string `json:"model" example:"qwen/qwen3-4b-2507"`
	// Generated text.
	Content string `json:"content"`
	// Why generation stopped (stop, length, ...).
	// example: stop
	StopReason string `json:"stop_reason,omitempty" example:"stop"`
	// Number of completion tokens, when reported upstream.
	// example: 42
	PredictedTokens *int `json:"predicted_tokens,omitempty" example:"42"`
}

// LoadModelRequest is the payload for POST /models/load.
type LoadModelRequest struct {
	// Model key to load.
	// example: qwen/qwen3-4b-2507
	ModelKey string `json:"model_key" example:"qwen/qwen3-4b-2507"`
	// If true, unload all other models before loading this one.
	// example: true
	Exclusive bool `json:"exclusive,omitempty" example:"true"`
}

// LoadModelResponse reports the outcome of a load request. Failures are
// reported in-body with Loaded=false rather than as an HTTP error status.
type LoadModelResponse struct {
	Loaded bool       `json:"loaded"`
	Model  *ModelInfo `json:"model,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// UnloadModelRequest is the payload for POST /models/unload. Either
// ModelKey or UnloadAll must be set.
type UnloadModelRequest struct {
	// Model key to unload.
	// example: qwen/qwen3-4b-2507
	ModelKey string `json:"model_key,omitempty" example:"qwen/qwen3-4b-2507"`
	// If true, unload every loaded model.
	UnloadAll bool `json:"unload_all,omitempty"`
}

// UnloadModelResponse reports which models were unloaded.
type UnloadModelResponse struct {
	Success      bool     `json:"success"`
	UnloadedKeys []string `json:"unloaded_keys"`
	Error        string   `json:"error,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	// example: ok
	Status string `json:"status" example:"ok"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
