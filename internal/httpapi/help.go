package httpapi

// helpRoute describes one endpoint in the GET /help catalog.
type helpRoute struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type helpPayload struct {
	Summary string      `json:"summary"`
	Routes  []helpRoute `json:"routes"`
	Notes   []string    `json:"notes"`
}

var helpText = helpPayload{
	Summary: "LM Studio HTTP bridge (OpenAI-compatible endpoint for chat + lifecycle API for model management)",
	Routes: []helpRoute{
		{Method: "GET", Path: "/health", Description: "Health check"},
		{Method: "GET", Path: "/models", Description: "List loaded models from LM Studio"},
		{Method: "POST", Path: "/models/load", Description: "Load a model. Body: { model_key: string, exclusive?: boolean }"},
		{Method: "POST", Path: "/models/unload", Description: "Unload model(s). Body: { model_key?: string, unload_all?: boolean }"},
		{Method: "POST", Path: "/chat", Description: "Non-streaming chat with custom model. Body: { model_key?, messages: [{role, content, images?}], config? }"},
		{Method: "POST", Path: "/chat/stream", Description: "Streaming chat with custom model (NDJSON). Body: { model_key?, messages: [{role, content, images?}], config? }"},
		{Method: "POST", Path: "/chat/regular", Description: "Non-streaming text-only chat using default regular model. Body: { messages: [{role, content}], config? }"},
		{Method: "POST", Path: "/chat/regular/stream", Description: "Streaming text-only chat using default regular model (NDJSON). Body: { messages: [{role, content}], config? }"},
		{Method: "POST", Path: "/chat/vision", Description: "Non-streaming vision chat using default vision model. Body: { messages: [{role, content, images?}], config? }"},
		{Method: "POST", Path: "/chat/vision/stream", Description: "Streaming vision chat using default vision model (NDJSON). Body: { messages: [{role, content, images?}], config? }"},
	},
	Notes: []string{
		"Model management (load/unload) uses the LM Studio lifecycle API",
		"Chat operations use the OpenAI-compatible endpoint (default http://localhost:1234/v1)",
		"messages[].role is one of system|user|assistant",
		"messages[].images[] accepts { data_base64, mime_type? } for vision models",
		"Images use data URL format: data:image/jpeg;base64,{base64_string}",
		"Supported image formats: JPEG, PNG, WebP",
		"config supports: temperature, maxTokens, topP, presencePenalty, frequencyPenalty",
		"Default models come from DEFAULT_REGULAR_MODEL and DEFAULT_VISION_MODEL",
		"Streaming returns application/x-ndjson with one JSON object per line",
		"Use exclusive=true when loading to unload other models first",
	},
}
