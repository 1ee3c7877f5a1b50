// Package translate calls a hosted large-language-model endpoint to
// translate text between a configured language pair. It supports AWS
// Bedrock and OpenAI backends behind a common Engine interface, with
// optional persistent caching and circuit breaking.
package translate
