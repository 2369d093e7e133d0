package provider

import (
	"github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding is used when the model has no registered tokenizer
// (Anthropic and OpenRouter model names are unknown to tiktoken).
const fallbackEncoding = "cl100k_base"

// estimateUsage computes token usage locally for responses that carry no
// usage block. Counts are approximate and flagged as Estimated.
func estimateUsage(model, prompt, completion string) Usage {
	u := Usage{
		PromptTokens:     countTokens(model, prompt),
		CompletionTokens: countTokens(model, completion),
		Estimated:        true,
	}
	u.TotalTokens = u.PromptTokens + u.CompletionTokens
	return u
}

func countTokens(model, text string) int {
	if text == "" {
		return 0
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err != nil {
		return approxTokens(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// approxTokens is the last-resort estimate: one token per four characters.
func approxTokens(text string) int {
	n := len(text) / 4
	if n == 0 {
		n = 1
	}
	return n
}
