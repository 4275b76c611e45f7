package types

// Message roles accepted by the chat endpoints.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Image MIME types accepted for vision input.
const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"
	MimeWebP = "image/webp"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	// One of system|user|assistant.
	// example: user
	Role string `json:"role" example:"user"`
	// Text content of the message.
	Content string `json:"content"`
	// Optional inline images for vision models.
	Images []ChatImage `json:"images,omitempty"`
}

// ChatImage is a base64-encoded inline image attachment.
type ChatImage struct {
	// Base64-encoded image bytes (no data: prefix).
	DataBase64 string `json:"data_base64"`
	// MIME type; defaults to image/jpeg when empty.
	// example: image/png
	MimeType string `json:"mime_type,omitempty" example:"image/png"`
}

// ModelInfo describes one model known to the inference server.
type ModelInfo struct {
	// Stable model key.
	// example: qwen/qwen3-4b-2507
	Key string `json:"key" example:"qwen/qwen3-4b-2507"`
	// Human-friendly name, if the server reports one.
	// example: Qwen3 4B
	DisplayName string `json:"display_name,omitempty" example:"Qwen3 4B"`
}

// Stream line type tags.
const (
	StreamTypeFragment = "fragment"
	StreamTypeDone     = "done"
)

// StreamFragment is one incremental NDJSON line of a streaming response.
type StreamFragment struct {
	// Always "fragment".
	// example: fragment
	Type string `json:"type" example:"fragment"`
	// Incremental text piece.
	Content string `json:"content"`
}

// StreamDone is the terminal NDJSON line of a streaming response.
type StreamDone struct {
	// Always "done".
	// example: done
	Type string `json:"type" example:"done"`
	// Model that produced the completion.
	// example: qwen/qwen3-4b-2507
	Model string `json:"model" example:"qwen/qwen3-4b-2507"`
	// Number of fragments emitted; omitted when zero.
	// example: 42
	PredictedTokens *int `json:"predicted_tokens,omitempty" example:"42"`
	// Why generation stopped.
	// example: stop
	StopReason string `json:"stop_reason,omitempty" example:"stop"`
}
