package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Analyzer turns a captured image into a textual description.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error)
}

// RelayError wraps a failed capture-result delivery. The relay makes
// exactly one attempt; a failure is reported to the conversation as a
// system note and to the caller through this error, never retried.
type RelayError struct {
	Err error
}

// Error implements the error interface.
func (e *RelayError) Error() string {
	return fmt.Sprintf("session: relay: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *RelayError) Unwrap() error { return e.Err }

// DefaultImagePrompt is the analysis prompt used when none is given.
const DefaultImagePrompt = "この画像に写っているものを日本語で簡潔に説明してください。"

// Relay delivers capture results back into the conversation.
type Relay struct {
	session  *Session
	analyzer Analyzer
	logger   *slog.Logger
}

// NewRelay creates a relay for session. analyzer may be nil, in which
// case image submissions fail immediately.
func NewRelay(session *Session, analyzer Analyzer) *Relay {
	return &Relay{
		session:  session,
		analyzer: analyzer,
		logger:   slog.Default(),
	}
}

// SubmitImage analyzes a captured image and injects the description into
// the conversation so the agent can talk about it. The analysis is
// attempted once; on failure the transcript gets a system note and the
// error is returned wrapped in a *RelayError.
func (r *Relay) SubmitImage(ctx context.Context, image []byte, prompt string) error {
	if prompt == "" {
		prompt = DefaultImagePrompt
	}
	if r.analyzer == nil {
		r.session.AddSystemNote("画像の解析に失敗しました。")
		return &RelayError{Err: fmt.Errorf("no image analyzer is configured")}
	}

	desc, err := r.analyzer.AnalyzeImage(ctx, image, prompt)
	if err != nil {
		r.logger.Warn("session: image analysis failed", "error", err)
		r.session.AddSystemNote("画像の解析に失敗しました。")
		return &RelayError{Err: err}
	}

	note := fmt.Sprintf("ユーザーが撮影した画像の内容: %s", desc)
	r.session.AddSystemNote(note)
	if err := r.session.InjectContext(note); err != nil {
		return &RelayError{Err: err}
	}
	return nil
}

// SubmitAudio acknowledges a finished recording. The audio itself stays
// local; only the duration is reported to the transcript.
func (r *Relay) SubmitAudio(d time.Duration) {
	r.session.AddSystemNote(fmt.Sprintf("音声を%.1f秒録音しました。", d.Seconds()))
}
