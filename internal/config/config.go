package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr   string
	Production bool
	StaticDir  string

	DataDir         string
	VariantsFile    string // optional YAML override of the embedded variants
	DefaultTestType string

	// Dynamic question refresh
	RefreshEnabled      bool
	RefreshIntervalDays int
	RefreshOnStartup    bool
	RefreshCheckEvery   time.Duration // scheduler sleep between sweeps
	RefreshConcurrency  int

	FetchTimeout time.Duration
	LLMTimeout   time.Duration

	GeminiAPIKey string
	GroqAPIKey   string
	ExtractModel string
	GradeModel   string

	GradeExactMatch bool

	DBDriver string // sqlite|postgres
	DBDSN    string

	CORSOrigins []string
}

// RefreshInterval is the age after which a dynamic answer is considered stale.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalDays) * 24 * time.Hour
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	days := envInt("DYNAMIC_REFRESH_INTERVAL_DAYS", 7)
	if days <= 0 {
		days = 7
	}
	conc := envInt("REFRESH_CONCURRENCY", 1)
	if conc < 1 {
		conc = 1
	}
	return Config{
		HTTPAddr:   envOr("HTTP_ADDR", ":8000"),
		Production: envBool("PRODUCTION", false),
		StaticDir:  envOr("STATIC_DIR", "client/dist"),

		DataDir:         envOr("DATA_DIR", "./db"),
		VariantsFile:    os.Getenv("VARIANTS_FILE"),
		DefaultTestType: envOr("DEFAULT_TEST_TYPE", "2008"),

		RefreshEnabled:      envBool("DYNAMIC_REFRESH_ENABLED", true),
		RefreshIntervalDays: days,
		RefreshOnStartup:    envBool("DYNAMIC_REFRESH_ON_STARTUP", false),
		RefreshCheckEvery:   envDuration("REFRESH_CHECK_INTERVAL", 24*time.Hour),
		RefreshConcurrency:  conc,

		FetchTimeout: envDuration("FETCH_TIMEOUT", 30*time.Second),
		LLMTimeout:   envDuration("LLM_TIMEOUT", 60*time.Second),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		ExtractModel: envOr("EXTRACT_MODEL", "gemini-1.5-flash"),
		GradeModel:   envOr("GRADE_MODEL", "llama-3.3-70b-versatile"),

		GradeExactMatch: envBool("GRADE_EXACT_MATCH", false),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		CORSOrigins: csvOr("CORS_ORIGINS", "*"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES":
		return true
	case "0", "false", "FALSE", "False", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", k, v, def)
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: %s=%q is not a positive duration, using %s", k, v, def)
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
