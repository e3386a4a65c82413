package narration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
)

const (
	// DefaultGTranslateURL is the public Translate web frontend
	DefaultGTranslateURL = "https://translate.google.com"

	// gtranslateMaxRunes is the longest text the endpoint accepts per call
	gtranslateMaxRunes = 100

	gtranslateRPC  = "jQ1olc"
	batchexecute   = "/_/TranslateWebserverUi/data/batchexecute"
	gtranslateUA   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	formURLEncoded = "application/x-www-form-urlencoded;charset=utf-8"
)

var audioPayload = regexp.MustCompile(`jQ1olc","\[\\"(.*)\\"]`)

// GTranslate speaks through the Google Translate web TTS endpoint. Long
// text is sent in chunks and the mp3 parts are joined.
type GTranslate struct {
	baseURL string
	client  *http.Client
}

// NewGTranslate creates a Google Translate synthesizer
func NewGTranslate(baseURL string, client *http.Client) *GTranslate {
	if baseURL == "" {
		baseURL = DefaultGTranslateURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &GTranslate{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Name implements Synthesizer
func (g *GTranslate) Name() string {
	return ProviderGTranslate
}

// SupportsLanguage implements LanguageChecker
func (g *GTranslate) SupportsLanguage(lang string) bool {
	_, ok := gtranslateLanguages[strings.ToLower(lang)]
	return ok
}

// Synthesize implements Synthesizer
func (g *GTranslate) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	chunks := SplitText(req.Text, gtranslateMaxRunes)
	if len(chunks) == 0 {
		return nil, mdwerror.New("nothing to speak").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("narration.GTranslate")
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := g.synthesizeChunk(ctx, chunk, req.Language, req.Slow)
		if err != nil {
			return nil, mdwerror.Wrap(err, "speech request failed").
				WithOperation("narration.GTranslate").
				WithDetail("chunk", i+1).
				WithDetail("chunks", len(chunks))
		}
		audio.Write(data)
	}

	return &Audio{Data: audio.Bytes(), Format: "mp3"}, nil
}

func (g *GTranslate) synthesizeChunk(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	body, err := rpcBody(text, lang, slow)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+batchexecute, strings.NewReader(body))
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to build request").WithCode(mdwerror.CodeInternal)
	}
	httpReq.Header.Set("Content-Type", formURLEncoded)
	httpReq.Header.Set("Referer", g.baseURL+"/")
	httpReq.Header.Set("User-Agent", gtranslateUA)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, mdwerror.Wrap(err, "tts service unreachable").WithCode(mdwerror.CodeExternalServiceError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, mdwerror.Newf("gtranslate error %d: %s", resp.StatusCode, strings.TrimSpace(string(b))).
			WithCode(mdwerror.CodeExternalServiceError).
			WithDetail("status", resp.StatusCode)
	}

	return decodeAudio(resp.Body)
}

// rpcBody encodes the batchexecute form for one chunk
func rpcBody(text, lang string, slow bool) (string, error) {
	var speed interface{}
	if slow {
		speed = true
	}

	params, err := json.Marshal([]interface{}{text, lang, speed, "null"})
	if err != nil {
		return "", mdwerror.Wrap(err, "failed to encode request").WithCode(mdwerror.CodeInternal)
	}
	rpc, err := json.Marshal([]interface{}{
		[]interface{}{
			[]interface{}{gtranslateRPC, string(params), nil, "generic"},
		},
	})
	if err != nil {
		return "", mdwerror.Wrap(err, "failed to encode request").WithCode(mdwerror.CodeInternal)
	}

	return "f.req=" + url.QueryEscape(string(rpc)) + "&", nil
}

// decodeAudio finds the base64 mp3 in the batchexecute response lines
func decodeAudio(r io.Reader) ([]byte, error) {
	var audio []byte
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, gtranslateRPC) {
			continue
		}
		match := audioPayload.FindStringSubmatch(line)
		if match == nil {
			return nil, mdwerror.New("tts response carries no audio").
				WithCode(mdwerror.CodeExternalServiceError)
		}
		data, err := base64.StdEncoding.DecodeString(match[1])
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to decode tts audio").
				WithCode(mdwerror.CodeExternalServiceError)
		}
		audio = append(audio, data...)
	}
	if err := scanner.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "failed to read tts response").
			WithCode(mdwerror.CodeExternalServiceError)
	}

	if len(audio) == 0 {
		return nil, mdwerror.Newf("tts response has no %s payload", gtranslateRPC).
			WithCode(mdwerror.CodeExternalServiceError)
	}
	return audio, nil
}
