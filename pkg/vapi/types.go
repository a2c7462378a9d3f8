package vapi

// AssistantOptions selects the assistant for a call: either a
// pre-provisioned assistant by ID, or an inline definition.
type AssistantOptions struct {
	// AssistantID references an assistant provisioned on the platform.
	// When set, Assistant is ignored.
	AssistantID string

	// Assistant is an inline assistant definition.
	Assistant *AssistantConfig
}

// AssistantConfig is an inline assistant definition.
type AssistantConfig struct {
	// Model configures the conversational model.
	Model *ModelConfig `json:"model,omitzero"`

	// Voice configures speech synthesis.
	Voice *VoiceConfig `json:"voice,omitzero"`

	// Transcriber configures speech recognition.
	Transcriber *TranscriberConfig `json:"transcriber,omitzero"`

	// FirstMessage is spoken by the assistant when the call starts.
	FirstMessage string `json:"firstMessage,omitzero"`
}

// ModelConfig configures the conversational model of an inline assistant.
type ModelConfig struct {
	Provider string    `json:"provider"`
	Model    string    `json:"model"`
	Messages []Message `json:"messages,omitzero"`
}

// VoiceConfig configures speech synthesis.
type VoiceConfig struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
}

// TranscriberConfig configures speech recognition.
type TranscriberConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitzero"`
	Language string `json:"language,omitzero"`
}

// DefaultSystemPrompt is the assistant system prompt used when the caller
// supplies none.
const DefaultSystemPrompt = `あなたは親切なAIアシスタントです。
ユーザーの質問に丁寧に日本語で答えてください。

【特殊コマンド】
- ユーザーが「撮影して」「写真撮って」と言ったら、カメラ機能が起動することを伝えてください。
- ユーザーが「録音して」「録音開始」と言ったら、録音機能が起動することを伝えてください。

自然な会話を心がけ、簡潔に応答してください。`

// DefaultFirstMessage greets the user at call start.
const DefaultFirstMessage = "こんにちは！何かお手伝いできることはありますか？"

// DefaultVoiceID is the default synthesis voice.
const DefaultVoiceID = "pFZP5JQG7iQjIQuC4Bku"

// DefaultAssistant returns an inline assistant definition with the stock
// Japanese voice-agent configuration. Empty systemPrompt or voiceID fall
// back to the package defaults.
func DefaultAssistant(systemPrompt, voiceID string) *AssistantConfig {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	return &AssistantConfig{
		Model: &ModelConfig{
			Provider: "openai",
			Model:    "gpt-4o",
			Messages: []Message{
				{Role: RoleSystem, Content: systemPrompt},
			},
		},
		Voice: &VoiceConfig{
			Provider: "11labs",
			VoiceID:  voiceID,
		},
		Transcriber: &TranscriberConfig{
			Provider: "deepgram",
			Model:    "nova-2",
			Language: "ja",
		},
		FirstMessage: DefaultFirstMessage,
	}
}
