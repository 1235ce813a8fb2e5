package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Timeout for individual analysis completion requests.
const openAIRequestTimeout = 60 * time.Second

var (
	openAIClientInstance *openai.Client
	openAIOnce           sync.Once
)

var ErrOpenAINotConfigured = errors.New("[OpenAIClient] missing OPENAI_API_KEY in environment")

// InitOpenAI builds the process-wide OpenAI client. Missing credentials are
// a configuration error: the pipeline must not run without them.
func InitOpenAI() error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return ErrOpenAINotConfigured
	}
	openAIOnce.Do(func() {
		cfg := openai.DefaultConfig(apiKey)
		cfg.HTTPClient = &http.Client{
			Timeout: openAIRequestTimeout,
		}

		openAIClientInstance = openai.NewClientWithConfig(cfg)
		slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
			slog.Duration("timeout", openAIRequestTimeout))
	})
	return nil
}

func GetOpenAIClient() *openai.Client {
	if openAIClientInstance == nil {
		panic("[OpenAIClient] Error: OpenAI client is not initialized")
	}
	return openAIClientInstance
}
