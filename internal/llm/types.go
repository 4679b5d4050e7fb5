package llm

import "context"

//go:generate mockgen -source=types.go -destination=mocks/mocks.go -package=mocks

// GenerateParams tunes a single completion call.
type GenerateParams struct {
	Temperature float32
	MaxTokens   int
}

// Generator produces text completions.
type Generator interface {
	// Generate returns a free-form completion for the prompt.
	Generate(ctx context.Context, prompt string, params GenerateParams) (string, error)
	// GenerateJSON requests a completion constrained to a JSON object
	// response. The raw completion text is returned unparsed.
	GenerateJSON(ctx context.Context, prompt string, params GenerateParams) (string, error)
}

// Embedder converts text into dense vectors.
type Embedder interface {
	// EmbedText embeds a single string.
	EmbedText(ctx context.Context, text string) ([]float32, error)
	// EmbedTexts embeds a batch, one vector per input, in order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
