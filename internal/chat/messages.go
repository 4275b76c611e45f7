package chat

import (
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ErrayDineri/LMStudioAPI/pkg/types"
)

// buildMessages converts API chat messages into OpenAI-compatible ones.
// Text-only messages keep plain string content; messages carrying images
// become multi-part with one image_url part per attachment, using
// data:<mime>;base64,<data> URLs.
func buildMessages(messages []types.ChatMessage) ([]openai.ChatCompletionMessage, error) {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := msg.Role
		if role == "" {
			role = types.RoleUser
		}
		if len(msg.Images) == 0 {
			out = append(out, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
			continue
		}

		parts := make([]openai.ChatMessagePart, 0, len(msg.Images)+1)
		if msg.Content != "" {
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: msg.Content,
			})
		}
		for _, img := range msg.Images {
			url, err := imageDataURL(img)
			if err != nil {
				return nil, err
			}
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: url},
			})
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, MultiContent: parts})
	}
	return out, nil
}

// imageDataURL validates the attachment and renders it as a data URL.
// The MIME type defaults to image/jpeg when empty.
func imageDataURL(img types.ChatImage) (string, error) {
	if img.DataBase64 == "" {
		return "", ErrBadImage("image attachment has empty data_base64")
	}
	mime := img.MimeType
	if mime == "" {
		mime = types.MimeJPEG
	}
	switch mime {
	case types.MimeJPEG, types.MimePNG, types.MimeWebP:
	default:
		return "", ErrBadImage(fmt.Sprintf("unsupported image mime_type: %s", mime))
	}
	return "data:" + mime + ";base64," + img.DataBase64, nil
}

// applyConfig maps set ChatConfig fields onto the outgoing request.
// Unset fields stay zero so the server applies its own defaults.
func applyConfig(req *openai.ChatCompletionRequest, cfg *types.ChatConfig) {
	if cfg == nil {
		return
	}
	if cfg.Temperature != nil {
		req.Temperature = nonZeroFloat(*cfg.Temperature)
	}
	if cfg.MaxTokens != nil {
		req.MaxTokens = *cfg.MaxTokens
	}
	if cfg.TopP != nil {
		req.TopP = nonZeroFloat(*cfg.TopP)
	}
	if cfg.PresencePenalty != nil {
		req.PresencePenalty = nonZeroFloat(*cfg.PresencePenalty)
	}
	if cfg.FrequencyPenalty != nil {
		req.FrequencyPenalty = nonZeroFloat(*cfg.FrequencyPenalty)
	}
}

// nonZeroFloat keeps an explicit 0 on the wire: go-openai marshals these
// fields with omitempty, so a true zero would vanish from the request and
// the server would substitute its own default. The smallest subnormal is
// indistinguishable from 0 for sampling purposes.
func nonZeroFloat(v float32) float32 {
	if v == 0 {
		return math.SmallestNonzeroFloat32
	}
	return v
}
