package rag

// Options tunes one lesson-content generation run.
type Options struct {
	// ReferenceResources pins resource point IDs that are always placed
	// ahead of similarity matches in the assembled context.
	ReferenceResources []string
	// Extra key/value pairs are appended verbatim to the prompt as
	// additional requirements.
	Extra map[string]string
}

// ContextSource is one piece of assembled generation context.
type ContextSource struct {
	Title      string  `json:"title"`
	Similarity float32 `json:"similarity"`
	Pinned     bool    `json:"pinned"`
}

// Result is generated lesson content plus the context that grounded it.
type Result struct {
	HTML    string          `json:"html"`
	Sources []ContextSource `json:"sources"`
}
