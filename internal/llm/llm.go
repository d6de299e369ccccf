package llm

import llmclient "neuropath/internal/llmClient"

// Client is the provider surface the middleware chain decorates.
type Client = llmclient.ContentGenerator
