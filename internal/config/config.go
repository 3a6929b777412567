// Package config builds the immutable service configuration from the
// environment (optionally preloaded from .env) and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

const (
	ProviderAIMLAPI = "aimlapi"
	ProviderGemini  = "gemini"

	StoreParse = "parse"
	StoreS3    = "s3"
)

type Config struct {
	Port        string        `env:"PORT" default:"8080" help:"HTTP listen port."`
	LogLevel    string        `env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" default:"30s" help:"Timeout for every outbound request."`
	CORSEnabled bool          `env:"CORS_ENABLED" default:"true" negatable:"" help:"Send permissive CORS headers."`

	// language model
	LLMProvider  string `env:"LLM_PROVIDER" default:"aimlapi" enum:"aimlapi,gemini" help:"Completion backend."`
	AIMLAPIKey   string `env:"AIMLAPI_KEY" help:"AI/ML API key."`
	AIMLAPIURL   string `env:"AIMLAPI_URL" default:"https://api.aimlapi.com/v1/chat/completions" help:"Chat completions endpoint."`
	AIMLAPIModel string `env:"AIMLAPI_MODEL" default:"meta-llama/Llama-3.2-3B-Instruct-Turbo" help:"Chat completions model."`
	GeminiAPIKey string `env:"GEMINI_API_KEY" help:"Google GenAI key."`
	GeminiModel  string `env:"GEMINI_MODEL" default:"gemini-2.0-flash" help:"Google GenAI model."`

	// parse server
	ParseServerURL string `env:"PARSE_SERVER_URL" help:"Parse server base URL."`
	ParseAppID     string `env:"PARSE_APP_ID" help:"Parse application id."`
	ParseAPIKey    string `env:"PARSE_API_KEY" help:"Parse REST API key."`
	ParseClass     string `env:"PARSE_CLASS" default:"aRM_ReelsData" help:"Class that receives reel records."`

	// thumbnails
	ThumbnailStore   string `env:"THUMBNAIL_STORE" default:"parse" enum:"parse,s3" help:"Where resized thumbnails are uploaded."`
	S3Endpoint       string `env:"S3_ENDPOINT" help:"Custom S3 endpoint (MinIO, Spaces)."`
	S3Region         string `env:"S3_REGION" help:"S3 region."`
	S3Bucket         string `env:"S3_BUCKET" help:"S3 bucket."`
	S3AccessKeyID    string `env:"S3_ACCESS_KEY_ID" help:"S3 access key id."`
	S3SecretKey      string `env:"S3_SECRET_ACCESS_KEY" help:"S3 secret access key."`
	S3UsePathStyle   bool   `env:"S3_USE_PATH_STYLE" help:"Use path-style S3 addressing."`
	S3PublicBaseURL  string `env:"S3_PUBLIC_BASE_URL" help:"Public URL prefix for uploaded objects."`
	MediaURLPrefix   string `env:"MEDIA_URL_PREFIX" default:"https://scontent.cdninstagram.com/" help:"Only media URLs with this prefix are stored."`
	MaxImageBytes    int64  `env:"MAX_IMAGE_BYTES" default:"10485760" help:"Largest thumbnail download accepted."`
	MaxImagePixels   int64  `env:"MAX_IMAGE_PIXELS" default:"50000000" help:"Largest thumbnail width*height decoded."`
	MaxThumbnailSide int    `env:"MAX_THUMBNAIL_SIDE" default:"1024" help:"Longest side of a stored thumbnail."`

	// optional extras
	DatabaseURL  string `env:"DATABASE_URL" help:"Postgres DSN for the save journal. Empty disables it."`
	AuthSecret   string `env:"AUTH_SECRET" help:"HMAC secret for X-Auth tokens. Empty disables auth."`
	AuthPassword string `env:"AUTH_PASSWORD" help:"Password accepted by /api/login."`
}

// Load reads .env if present, then parses args with environment fallbacks.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	parser, err := kong.New(&cfg,
		kong.Name("reels-analyzer"),
		kong.Description("Analyze social media reels and store them in Parse."),
	)
	if err != nil {
		return nil, fmt.Errorf("build config parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.ParseServerURL == "" {
		errs = append(errs, errors.New("PARSE_SERVER_URL is required"))
	}
	if c.ParseAppID == "" {
		errs = append(errs, errors.New("PARSE_APP_ID is required"))
	}

	switch c.LLMProvider {
	case ProviderAIMLAPI:
		if c.AIMLAPIKey == "" {
			errs = append(errs, errors.New("AIMLAPI_KEY is required for the aimlapi provider"))
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the gemini provider"))
		}
	}

	if c.ThumbnailStore == StoreS3 {
		if c.S3Bucket == "" || c.S3Region == "" {
			errs = append(errs, errors.New("S3_BUCKET and S3_REGION are required for the s3 thumbnail store"))
		}
		if c.S3AccessKeyID == "" || c.S3SecretKey == "" {
			errs = append(errs, errors.New("S3 credentials are required for the s3 thumbnail store"))
		}
	}

	if c.AuthSecret != "" && c.AuthPassword == "" {
		errs = append(errs, errors.New("AUTH_PASSWORD is required when AUTH_SECRET is set"))
	}
	if c.MaxThumbnailSide <= 0 {
		errs = append(errs, fmt.Errorf("MAX_THUMBNAIL_SIDE must be positive, got %d", c.MaxThumbnailSide))
	}

	return errors.Join(errs...)
}

// ParseBaseURL is the server URL without a trailing slash.
func (c *Config) ParseBaseURL() string {
	return strings.TrimRight(c.ParseServerURL, "/")
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
