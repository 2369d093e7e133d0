package docgen

import (
	"fmt"
	"strings"
)

const (
	maxTitleLen   = 500
	maxContentLen = 1 << 20 // 1 MiB of source text is plenty
	maxTokensCap  = 128000
)

// validateRequest checks a generation request after defaults were applied.
func validateRequest(req *GenerateRequest) error {
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if len(req.Content) > maxContentLen {
		return fmt.Errorf("%w: content exceeds %d bytes", ErrInvalidInput, maxContentLen)
	}
	if strings.TrimSpace(req.DocType) == "" {
		return fmt.Errorf("%w: doc_type is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(req.Title) > maxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLen)
	}
	return validateTuning(req.MaxTokens, req.Temperature)
}

// validateTransform checks a transformation request after defaults were applied.
func validateTransform(req *TransformRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len(req.Text) > maxContentLen {
		return fmt.Errorf("%w: text exceeds %d bytes", ErrInvalidInput, maxContentLen)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	return validateTuning(req.MaxTokens, req.Temperature)
}

func validateTuning(maxTokens int, temperature *float64) error {
	if maxTokens < 0 || maxTokens > maxTokensCap {
		return fmt.Errorf("%w: max_tokens must be between 1 and %d", ErrInvalidInput, maxTokensCap)
	}
	if temperature != nil && (*temperature < 0 || *temperature > 2) {
		return fmt.Errorf("%w: temperature must be between 0 and 2", ErrInvalidInput)
	}
	return nil
}
