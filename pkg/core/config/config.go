// ============================================================================
// promokit - Custodiet promo media tooling
// ============================================================================
//
// Package:     config
// Description: Typed configuration for the promokit commands (TOML or YAML)
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/custodiet/promokit/foundation/core/error"
)

// EnvConfigPath names the environment variable pointing at a config file
const EnvConfigPath = "PROMOKIT_CONFIG"

// Config holds the complete application configuration
type Config struct {
	Log       LogConfig       `toml:"log" yaml:"log"`
	Narration NarrationConfig `toml:"narration" yaml:"narration"`
	TTS       TTSConfig       `toml:"tts" yaml:"tts"`
	FFmpeg    FFmpegConfig    `toml:"ffmpeg" yaml:"ffmpeg"`
	Video     VideoConfig     `toml:"video" yaml:"video"`
	Slideshow SlideshowConfig `toml:"slideshow" yaml:"slideshow"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// NarrationConfig holds the narration text and where the audio goes
type NarrationConfig struct {
	Text     string `toml:"text" yaml:"text"`
	TextFile string `toml:"text_file" yaml:"text_file"`
	Language string `toml:"language" yaml:"language"`
	Slow     bool   `toml:"slow" yaml:"slow"`
	Output   string `toml:"output" yaml:"output"`
}

// TTSConfig selects and configures the speech synthesis provider
type TTSConfig struct {
	Provider   string           `toml:"provider" yaml:"provider"`
	Timeout    Duration         `toml:"timeout" yaml:"timeout"`
	GTranslate GTranslateConfig `toml:"gtranslate" yaml:"gtranslate"`
	OpenAI     OpenAIConfig     `toml:"openai" yaml:"openai"`
}

// GTranslateConfig holds Google Translate TTS settings
type GTranslateConfig struct {
	BaseURL string `toml:"base_url" yaml:"base_url"`
}

// OpenAIConfig holds OpenAI speech settings
type OpenAIConfig struct {
	APIKey         string  `toml:"api_key" yaml:"api_key"`
	BaseURL        string  `toml:"base_url" yaml:"base_url"`
	Model          string  `toml:"model" yaml:"model"`
	Voice          string  `toml:"voice" yaml:"voice"`
	Speed          float64 `toml:"speed" yaml:"speed"`
	ResponseFormat string  `toml:"response_format" yaml:"response_format"`
}

// FFmpegConfig locates the encoder binaries
type FFmpegConfig struct {
	Binary      string `toml:"binary" yaml:"binary"`
	ProbeBinary string `toml:"probe_binary" yaml:"probe_binary"`
}

// VideoConfig holds the single-image video paths
type VideoConfig struct {
	Image  string `toml:"image" yaml:"image"`
	Audio  string `toml:"audio" yaml:"audio"`
	Output string `toml:"output" yaml:"output"`
}

// SlideshowConfig holds the slideshow paths. AudioDuration is in seconds;
// zero means the duration is probed from the audio file.
type SlideshowConfig struct {
	ImageDir      string   `toml:"image_dir" yaml:"image_dir"`
	Patterns      []string `toml:"patterns" yaml:"patterns"`
	Audio         string   `toml:"audio" yaml:"audio"`
	AudioDuration float64  `toml:"audio_duration" yaml:"audio_duration"`
	Playlist      string   `toml:"playlist" yaml:"playlist"`
	Output        string   `toml:"output" yaml:"output"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Load loads configuration from a TOML or YAML file, picked by extension.
// A .env file in the working directory is loaded first so secrets can be
// referenced as ${VAR}.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, cfg)
	default:
		_, err = toml.Decode(string(content), cfg)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg, nil
}

// Default returns the compiled-in configuration
func Default() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Discover resolves the config file to use: the explicit path if given,
// then PROMOKIT_CONFIG, then the default locations. It returns the path that
// was loaded, or "" when the compiled-in defaults are used.
func Discover(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		cfg, err := Load(env)
		return cfg, env, err
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			cfg, err := Load(p)
			return cfg, p, err
		}
	}
	return Default(), "", nil
}

// SearchPaths lists the default config locations in priority order
func SearchPaths() []string {
	paths := []string{
		filepath.Join("configs", "promokit.toml"),
		"promokit.toml",
		"promokit.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "promokit", "config.toml"))
	}
	return paths
}

// ResolveText returns the narration text, reading TextFile when set
func (n NarrationConfig) ResolveText() (string, error) {
	if n.TextFile == "" {
		return n.Text, nil
	}
	data, err := os.ReadFile(n.TextFile)
	if err != nil {
		return "", mdwerror.Wrap(err, "failed to read narration text file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.ResolveText").
			WithDetail("path", n.TextFile)
	}
	return string(data), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// Narration
	if c.Narration.Text == "" && c.Narration.TextFile == "" {
		c.Narration.Text = DefaultNarrationText
	}
	if c.Narration.Language == "" {
		c.Narration.Language = "ar"
	}
	if c.Narration.Output == "" {
		c.Narration.Output = defaultNarrationAudio
	}

	// TTS
	if c.TTS.Provider == "" {
		c.TTS.Provider = "gtranslate"
	}
	if c.TTS.Timeout.Duration == 0 {
		c.TTS.Timeout.Duration = 90 * time.Second
	}
	if c.TTS.GTranslate.BaseURL == "" {
		c.TTS.GTranslate.BaseURL = "https://translate.google.com"
	}
	if c.TTS.OpenAI.BaseURL == "" {
		c.TTS.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.TTS.OpenAI.Model == "" {
		c.TTS.OpenAI.Model = "tts-1"
	}
	if c.TTS.OpenAI.Voice == "" {
		c.TTS.OpenAI.Voice = "alloy"
	}
	if c.TTS.OpenAI.Speed == 0 {
		c.TTS.OpenAI.Speed = 1.0
	}
	if c.TTS.OpenAI.ResponseFormat == "" {
		c.TTS.OpenAI.ResponseFormat = "mp3"
	}

	// FFmpeg
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}

	// Video
	if c.Video.Image == "" {
		c.Video.Image = filepath.Join("assets", "custodiet_promo_v1.png")
	}
	if c.Video.Audio == "" {
		c.Video.Audio = c.Narration.Output
	}
	if c.Video.Output == "" {
		c.Video.Output = filepath.Join("output", "custodiet_promo_video.mp4")
	}

	// Slideshow
	if c.Slideshow.ImageDir == "" {
		c.Slideshow.ImageDir = "assets"
	}
	if len(c.Slideshow.Patterns) == 0 {
		c.Slideshow.Patterns = []string{"*.png"}
	}
	if c.Slideshow.Audio == "" {
		c.Slideshow.Audio = c.Narration.Output
	}
	if c.Slideshow.Playlist == "" {
		c.Slideshow.Playlist = filepath.Join("output", "slideshow_input.txt")
	}
	if c.Slideshow.Output == "" {
		c.Slideshow.Output = filepath.Join("output", "custodiet_promo_slideshow.mp4")
	}
}

// expandEnvVars expands environment variables in paths and secrets
func (c *Config) expandEnvVars() {
	c.TTS.OpenAI.APIKey = os.ExpandEnv(c.TTS.OpenAI.APIKey)
	if c.TTS.OpenAI.APIKey == "" {
		c.TTS.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	c.Narration.TextFile = os.ExpandEnv(c.Narration.TextFile)
	c.Narration.Output = os.ExpandEnv(c.Narration.Output)
	c.FFmpeg.Binary = os.ExpandEnv(c.FFmpeg.Binary)
	c.FFmpeg.ProbeBinary = os.ExpandEnv(c.FFmpeg.ProbeBinary)
	c.Video.Image = os.ExpandEnv(c.Video.Image)
	c.Video.Audio = os.ExpandEnv(c.Video.Audio)
	c.Video.Output = os.ExpandEnv(c.Video.Output)
	c.Slideshow.ImageDir = os.ExpandEnv(c.Slideshow.ImageDir)
	c.Slideshow.Audio = os.ExpandEnv(c.Slideshow.Audio)
	c.Slideshow.Playlist = os.ExpandEnv(c.Slideshow.Playlist)
	c.Slideshow.Output = os.ExpandEnv(c.Slideshow.Output)
}
