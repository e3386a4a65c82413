package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
)

// openaiMaxRunes is the input limit of the speech endpoint
const openaiMaxRunes = 4096

// OpenAIConfig configures the OpenAI speech endpoint
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Voice          string
	Speed          float64
	ResponseFormat string
}

// OpenAI implements Synthesizer using the OpenAI TTS endpoint
type OpenAI struct {
	cfg    OpenAIConfig
	client *http.Client
}

// NewOpenAI creates an OpenAI synthesizer. If the key is empty, it falls back
// to OPENAI_API_KEY.
func NewOpenAI(cfg OpenAIConfig, client *http.Client) (*OpenAI, error) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, mdwerror.New("openai api key is required").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("narration.NewOpenAI")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "tts-1"
	}
	if cfg.Voice == "" {
		cfg.Voice = "alloy"
	}
	if cfg.Speed <= 0 {
		cfg.Speed = 1.0
	}
	if cfg.ResponseFormat == "" {
		cfg.ResponseFormat = "mp3"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &OpenAI{cfg: cfg, client: client}, nil
}

// Name implements Synthesizer
func (s *OpenAI) Name() string {
	return ProviderOpenAI
}

// Synthesize implements Synthesizer. The voice infers the language from the
// text, so req.Language is not sent.
func (s *OpenAI) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	chunks := SplitText(req.Text, openaiMaxRunes)
	if len(chunks) == 0 {
		return nil, mdwerror.New("nothing to speak").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("narration.OpenAI")
	}

	speed := s.cfg.Speed
	if req.Slow {
		speed *= 0.75
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := s.speech(ctx, chunk, speed)
		if err != nil {
			return nil, mdwerror.Wrap(err, "speech request failed").
				WithOperation("narration.OpenAI").
				WithDetail("chunk", i+1).
				WithDetail("chunks", len(chunks))
		}
		audio.Write(data)
	}

	return &Audio{Data: audio.Bytes(), Format: s.cfg.ResponseFormat}, nil
}

func (s *OpenAI) speech(ctx context.Context, text string, speed float64) ([]byte, error) {
	payload := map[string]interface{}{
		"model":           s.cfg.Model,
		"input":           text,
		"voice":           s.cfg.Voice,
		"speed":           speed,
		"response_format": s.cfg.ResponseFormat,
	}
	body, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to build request").WithCode(mdwerror.CodeInternal)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, mdwerror.Wrap(err, "tts service unreachable").WithCode(mdwerror.CodeExternalServiceError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, mdwerror.Newf("openai error %d: %s", resp.StatusCode, strings.TrimSpace(string(b))).
			WithCode(mdwerror.CodeExternalServiceError).
			WithDetail("status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read audio").WithCode(mdwerror.CodeExternalServiceError)
	}
	return data, nil
}
