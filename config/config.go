package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	DBPath    string
	UploadDir string

	EmbedEndpoint string
	EmbedAPIKey   string
	EmbedModel    string

	GenEndpoint string
	GenAPIKey   string
	GenModel    string

	ChunkSize    int
	ChunkOverlap int
	TopK         int

	// Per-session question limit over a trailing window.
	QuestionLimit  int
	QuestionWindow time.Duration

	// Per-client limit on the /chat page.
	ChatPageLimit  int
	ChatPageWindow time.Duration

	// Consecutive answer failures before a session is closed.
	MaxFailures int

	// MockAI swaps both collaborators for in-process fakes. Local dev only.
	MockAI bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Printf("[cfg] %s=%q is not an integer, using %d", k, v, def)
		}
		return def
	}
	getDur := func(k string, def time.Duration) time.Duration {
		if v := os.Getenv(k); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				return d
			}
			log.Printf("[cfg] %s=%q is not a duration, using %s", k, v, def)
		}
		return def
	}

	cfg := AppConfig{
		Port:      get("PORT", "8000"),
		DBPath:    get("DB_PATH", "docchat.db"),
		UploadDir: get("UPLOAD_DIR", "static/uploaded_pdfs"),

		EmbedEndpoint: get("EMB_ENDPOINT", "https://api.together.xyz"),
		EmbedAPIKey:   get("EMB_API_KEY", ""),
		EmbedModel:    get("EMB_MODEL", "togethercomputer/m2-bert-80M-8k-retrieval"),

		GenEndpoint: get("GEN_ENDPOINT", "https://api.groq.com/openai"),
		GenAPIKey:   get("GEN_API_KEY", ""),
		GenModel:    get("GEN_MODEL", "mixtral-8x7b-32768"),

		ChunkSize:    getInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getInt("CHUNK_OVERLAP", 150),
		TopK:         getInt("TOP_K", 4),

		QuestionLimit:  getInt("QUESTION_LIMIT", 5),
		QuestionWindow: getDur("QUESTION_WINDOW", 30*time.Second),

		ChatPageLimit:  getInt("CHAT_PAGE_LIMIT", 8),
		ChatPageWindow: getDur("CHAT_PAGE_WINDOW", 10*time.Second),

		MaxFailures: getInt("MAX_FAILURES", 3),

		MockAI: get("AI_MOCK", "false") == "true",
	}
	return cfg
}

// Validate fails fast on an unusable configuration. A server process must
// never fall back to prompting for credentials.
func (c AppConfig) Validate() error {
	if !c.MockAI {
		if c.EmbedAPIKey == "" {
			return fmt.Errorf("EMB_API_KEY is required (or set AI_MOCK=true)")
		}
		if c.GenAPIKey == "" {
			return fmt.Errorf("GEN_API_KEY is required (or set AI_MOCK=true)")
		}
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", c.ChunkOverlap)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	if c.QuestionLimit <= 0 || c.QuestionWindow <= 0 {
		return fmt.Errorf("question rate limit must be positive")
	}
	return nil
}
