package configuration

import (
	"time"
)

type Config struct {
	Service      ServiceConfig            `yaml:"service"`
	Telegram     TelegramConfig           `yaml:"telegram"`
	AI           AIConfig                 `yaml:"ai"`
	Governance   GovernanceConfig         `yaml:"governance"`
	Payments     PaymentsConfig           `yaml:"payments"`
	Packages     map[string]PackageConfig `yaml:"packages"`
	Memory       MemoryConfig             `yaml:"memory"`
	Redis        RedisConfig              `yaml:"redis"`
	Database     DatabaseConfig           `yaml:"database"`
	Proxy        ProxyConfig              `yaml:"proxy"`
	Features     FeaturesConfig           `yaml:"features"`
	Localization LocalizationConfig       `yaml:"localization"`
}

type ServiceConfig struct {
	StartupPort            int `yaml:"startup_port"`
	SystemMetricsPort      int `yaml:"system_metrics_port"`
	ApplicationMetricsPort int `yaml:"application_metrics_port"`
}

type TelegramConfig struct {
	BotToken       string   `yaml:"bot_token"`
	AdminID        int64    `yaml:"admin_id"`
	APIEndpoint    string   `yaml:"api_endpoint"`
	PollerTimeout  int      `yaml:"poller_timeout"`
	AllowedUpdates []string `yaml:"allowed_updates"`
	ChunkSize      int      `yaml:"chunk_size"`
	Workers        int      `yaml:"workers"`
}

type AIConfig struct {
	Provider        string        `yaml:"provider"`
	OpenAIToken     string        `yaml:"openai_token"`
	OpenRouterToken string        `yaml:"open_router_token"`
	Model           string        `yaml:"model"`
	FallbackModels  []string      `yaml:"fallback_models"`
	SystemPrompt    string        `yaml:"system_prompt"`
	Timeout         time.Duration `yaml:"timeout"`
	Encoding        string        `yaml:"encoding"`
}

type GovernanceConfig struct {
	TimeZone          string `yaml:"time_zone"`
	PerMinute         int    `yaml:"per_minute"`
	DefaultDailyLimit int    `yaml:"default_daily_limit"`
	StandardHistory   int    `yaml:"standard_history"`
	PremiumHistory    int    `yaml:"premium_history"`
}

type PaymentsConfig struct {
	Instructions  string        `yaml:"instructions"`
	Currency      string        `yaml:"currency"`
	PendingTTL    time.Duration `yaml:"pending_ttl"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type PackageConfig struct {
	DailyLimit   int      `yaml:"daily_limit"`
	Price        int64    `yaml:"price"`
	Features     []string `yaml:"features"`
	DurationDays int      `yaml:"duration_days"`
}

type MemoryConfig struct {
	Backend string        `yaml:"backend"`
	IdleTTL time.Duration `yaml:"idle_ttl"`
}

type RedisConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"ssl_mode"`
	TimeZone string `yaml:"time_zone"`
}

type ProxyConfig struct {
	URL            string `yaml:"url"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type FeaturesConfig struct {
	UnleashAPIURL     string `yaml:"unleash_api_url"`
	UnleashAppName    string `yaml:"unleash_app_name"`
	UnleashInstanceID string `yaml:"unleash_instance_id"`
	RefreshInterval   int    `yaml:"refresh_interval"`
}

type LocalizationConfig struct {
	DefaultLanguage    string   `yaml:"default_language"`
	SupportedLanguages []string `yaml:"supported_languages"`
}
