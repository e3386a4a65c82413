// ============================================================================
// promokit - Custodiet promo media tooling
// ============================================================================
//
// Package:     narration
// Description: Text-to-speech narration for promo videos
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package narration

import (
	"context"
	"net/http"
	"strings"
	"time"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
	"github.com/custodiet/promokit/pkg/core/config"
)

// Provider names
const (
	ProviderGTranslate = "gtranslate"
	ProviderOpenAI     = "openai"
)

// DefaultTimeout bounds a synthesis when the caller sets no deadline
const DefaultTimeout = 90 * time.Second

// Request is the text to speak
type Request struct {
	Text     string
	Language string
	Slow     bool
}

// Audio is encoded speech
type Audio struct {
	Data   []byte
	Format string // e.g. "mp3"
}

// Synthesizer is the interface for text-to-speech engines
type Synthesizer interface {
	// Name identifies the provider in logs
	Name() string

	// Synthesize converts text to audio
	Synthesize(ctx context.Context, req Request) (*Audio, error)
}

// LanguageChecker is implemented by synthesizers with a fixed language set
type LanguageChecker interface {
	SupportsLanguage(lang string) bool
}

// NewSynthesizer creates the provider selected in cfg. A nil client uses a
// client with cfg's timeout.
func NewSynthesizer(cfg config.TTSConfig, client *http.Client) (Synthesizer, error) {
	if client == nil {
		timeout := cfg.Timeout.Duration
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGTranslate:
		return NewGTranslate(cfg.GTranslate.BaseURL, client), nil
	case ProviderOpenAI:
		s, err := NewOpenAI(OpenAIConfig{
			APIKey:         cfg.OpenAI.APIKey,
			BaseURL:        cfg.OpenAI.BaseURL,
			Model:          cfg.OpenAI.Model,
			Voice:          cfg.OpenAI.Voice,
			Speed:          cfg.OpenAI.Speed,
			ResponseFormat: cfg.OpenAI.ResponseFormat,
		}, client)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, mdwerror.Newf("unknown tts provider %q", cfg.Provider).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("narration.NewSynthesizer")
	}
}
