// Package vision describes captured images so the voice agent can talk
// about what the user photographed.
//
// Three analyzers are available: Studio (delegates to the Studio
// backend), OpenAI (GPT-4o vision) and Gemini. They all implement the
// same one-method interface, so the capture relay does not care which
// provider is wired in.
package vision
