package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// AppConfig is the full configuration surface. Every tunable the pipeline
// uses lives here so nothing is hard-coded in logic; cmd wiring reads it
// once and passes explicit values into constructors.
type AppConfig struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Mongo    MongoConfig    `yaml:"mongo"`
	LLM      LLMConfig      `yaml:"llm"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	API      APIConfig      `yaml:"api"`

	// TaxonomyFile optionally replaces the built-in category framework.
	TaxonomyFile string `yaml:"taxonomy_file"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// LLMConfig configures the refinement stage. The API key comes from the
// GEMINI_API_KEY environment variable, not the file.
type LLMConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// DelayMillis is the pause between consecutive LLM calls, a courtesy to
	// provider rate limits.
	DelayMillis int `yaml:"delay_millis"`
}

// AnalysisConfig holds the batch windows and confirmation thresholds.
type AnalysisConfig struct {
	// ArticleWindowDays bounds how far back unanalyzed articles are picked up.
	ArticleWindowDays int `yaml:"article_window_days"`
	// BatchLimit caps articles per run.
	BatchLimit int `yaml:"batch_limit"`
	// PersistenceLookbackDays bounds the prior-event lookup for streaks.
	PersistenceLookbackDays int `yaml:"persistence_lookback_days"`
	// SummaryPeriodDays is the rolling window the summary counts over.
	SummaryPeriodDays int `yaml:"summary_period_days"`

	// Confirmation durations per severity, in days.
	YellowConfirmDays int `yaml:"yellow_confirm_days"`
	OrangeConfirmDays int `yaml:"orange_confirm_days"`
	RedConfirmDays    int `yaml:"red_confirm_days"`

	// Alert thresholds: distinct confirmed categories required to move the
	// overall status.
	OrangeThreshold int `yaml:"orange_threshold"`
	RedThreshold    int `yaml:"red_threshold"`

	// RapidEscalationDays is the window for the green-to-orange/red jump
	// that counts as an extra effective orange.
	RapidEscalationDays int `yaml:"rapid_escalation_days"`
}

type KafkaConfig struct {
	// Brokers empty disables notification publishing.
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

var config *AppConfig

// InitApp loads .env and config.yaml from the nearest ancestor directory
// that contains config.yaml, then applies defaults for anything unset.
func InitApp() {
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c := AppConfig{}
	if data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE)); err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			panic(err)
		}
	}
	c.applyDefaults()
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}
	return *config
}

// GeminiAPIKey returns the refinement API key from the environment.
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Mongo.URI == "" {
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "newsmonitor"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.0-flash"
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.LLM.DelayMillis < 0 {
		c.LLM.DelayMillis = 0
	}
	if c.Analysis.ArticleWindowDays <= 0 {
		c.Analysis.ArticleWindowDays = 1
	}
	if c.Analysis.BatchLimit <= 0 {
		c.Analysis.BatchLimit = 20
	}
	if c.Analysis.PersistenceLookbackDays <= 0 {
		c.Analysis.PersistenceLookbackDays = 180
	}
	if c.Analysis.SummaryPeriodDays <= 0 {
		c.Analysis.SummaryPeriodDays = 7
	}
	if c.Analysis.YellowConfirmDays <= 0 {
		c.Analysis.YellowConfirmDays = 30
	}
	if c.Analysis.OrangeConfirmDays <= 0 {
		c.Analysis.OrangeConfirmDays = 14
	}
	if c.Analysis.RedConfirmDays < 0 {
		c.Analysis.RedConfirmDays = 0
	}
	if c.Analysis.OrangeThreshold <= 0 {
		c.Analysis.OrangeThreshold = 3
	}
	if c.Analysis.RedThreshold <= 0 {
		c.Analysis.RedThreshold = 1
	}
	if c.Analysis.RapidEscalationDays <= 0 {
		c.Analysis.RapidEscalationDays = 60
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "risk-monitor.notifications"
	}
	if c.API.Addr == "" {
		c.API.Addr = ":8080"
	}
}

// LLMTimeout returns the configured refinement timeout as a duration.
func (c AppConfig) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// LLMDelay returns the inter-call pause as a duration.
func (c AppConfig) LLMDelay() time.Duration {
	return time.Duration(c.LLM.DelayMillis) * time.Millisecond
}

// GetBasePath walks up from the working directory to the first directory
// containing config.yaml.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
