// Package llm classifies claim denial notes with a hosted chat-completion model.
// It builds the prompt, calls the endpoint with retry and backoff, and validates
// the model's JSON reply against the fixed denial schema.
package llm
