package configuration

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"relaybot/sources/platform"
	"relaybot/sources/tracing"
	"time"

	"gopkg.in/yaml.v3"
)

var envPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::([^}]*))?\}`)

// NewYaml reads the configuration from CONFIG_PATH (default: config.yaml), after
// loading .env, and returns a normalized and validated Config.
func NewYaml(log *tracing.Logger) (*Config, error) {
	defer tracing.ProfilePoint(log, "Configuration loaded", "configuration.load")()

	if err := platform.LoadDotenv(platform.Get("DOTENV_PATH", ".env")); err != nil {
		log.W("failed to load .env file", tracing.InnerError, err)
	}

	filePath := platform.Get("CONFIG_PATH", "config.yaml")
	log.I("reading configuration", "path", filePath)

	content, err := os.ReadFile(filePath)
	if err != nil {
		log.E("failed to read configuration file", tracing.InnerError, err, "path", filePath)
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	config, err := Parse(content)
	if err != nil {
		log.E("failed to parse configuration file", tracing.InnerError, err, "path", filePath)
		return nil, err
	}

	if err := config.Validate(); err != nil {
		log.E("configuration is invalid", tracing.InnerError, err, "path", filePath)
		return nil, err
	}

	log.I("configuration ready", "packages", len(config.Packages), "provider", config.AI.Provider, "memory_backend", config.Memory.Backend)
	return config, nil
}

// Parse expands environment references, decodes YAML and applies defaults.
func Parse(content []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(expandEnv(string(content))), &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	config.Normalize()
	return &config, nil
}

// expandEnv replaces ${VAR} or ${VAR:default} with environment values.
func expandEnv(content string) string {
	return envPattern.ReplaceAllStringFunc(content, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if value, exists := os.LookupEnv(matches[1]); exists {
			return value
		}
		return matches[2]
	})
}

func (c *Config) Normalize() {
	withDefault(&c.Service.StartupPort, 10000)
	withDefault(&c.Service.SystemMetricsPort, 10001)
	withDefault(&c.Service.ApplicationMetricsPort, 10002)

	withDefault(&c.Telegram.PollerTimeout, 60)
	withDefault(&c.Telegram.ChunkSize, 4096)
	withDefault(&c.Telegram.Workers, 8)
	if len(c.Telegram.AllowedUpdates) == 0 {
		c.Telegram.AllowedUpdates = []string{"message", "callback_query"}
	}

	withDefault(&c.AI.Provider, "openai")
	withDefault(&c.AI.Model, "gpt-4o-mini")
	withDefault(&c.AI.SystemPrompt, "You are a helpful Telegram chatbot. The current year is {{year}}.")
	withDefault(&c.AI.Timeout, 60*time.Second)
	withDefault(&c.AI.Encoding, "cl100k_base")

	withDefault(&c.Governance.TimeZone, "UTC")
	withDefault(&c.Governance.PerMinute, 3)
	withDefault(&c.Governance.DefaultDailyLimit, 30)
	withDefault(&c.Governance.StandardHistory, 20)
	withDefault(&c.Governance.PremiumHistory, 50)

	withDefault(&c.Payments.Currency, "UZS")
	withDefault(&c.Payments.Instructions, "Transfer the amount to the card shown by the administrator, then press /paid and send a screenshot of the receipt.")
	withDefault(&c.Payments.PendingTTL, 24*time.Hour)
	withDefault(&c.Payments.SweepInterval, 10*time.Minute)

	if c.Packages == nil {
		c.Packages = map[string]PackageConfig{
			"basic": {DailyLimit: 100, Price: 15000, Features: []string{"100 messages a day", "longer memory"}, DurationDays: 30},
			"pro":   {DailyLimit: 300, Price: 30000, Features: []string{"300 messages a day", "longer memory", "priority support"}, DurationDays: 30},
		}
	}

	withDefault(&c.Memory.Backend, "local")
	withDefault(&c.Memory.IdleTTL, 24*time.Hour)

	withDefault(&c.Redis.Host, "localhost")
	withDefault(&c.Redis.Port, 6379)
	withDefault(&c.Redis.MaxRetries, 3)
	withDefault(&c.Redis.DialTimeout, 5*time.Second)

	withDefault(&c.Database.Host, "localhost")
	withDefault(&c.Database.Port, "5432")
	withDefault(&c.Database.SSLMode, "disable")
	withDefault(&c.Database.TimeZone, "UTC")

	withDefault(&c.Proxy.TimeoutSeconds, 90)

	withDefault(&c.Features.UnleashAppName, "relaybot")
	withDefault(&c.Features.UnleashInstanceID, "relaybot")
	withDefault(&c.Features.RefreshInterval, 15)

	withDefault(&c.Localization.DefaultLanguage, "en")
	if len(c.Localization.SupportedLanguages) == 0 {
		c.Localization.SupportedLanguages = []string{"en", "uz"}
	}
}

func (c *Config) Validate() error {
	var errs []error

	if err := platform.ValidateTelegramBotToken(c.Telegram.BotToken); err != nil {
		errs = append(errs, err)
	}
	if c.Telegram.AdminID == 0 {
		errs = append(errs, errors.New("telegram.admin_id is required"))
	}

	switch c.AI.Provider {
	case "openai":
		if err := platform.ValidateOpenAIToken(c.AI.OpenAIToken); err != nil {
			errs = append(errs, fmt.Errorf("ai.openai_token: %w", err))
		}
	case "openrouter":
		errs = append(errs, platform.ValidateNotEmpty(c.AI.OpenRouterToken, "ai.open_router_token"))
	default:
		errs = append(errs, fmt.Errorf("unknown ai.provider %q", c.AI.Provider))
	}

	if _, err := time.LoadLocation(c.Governance.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("governance.time_zone: %w", err))
	}
	if c.Governance.PerMinute < 1 || c.Governance.DefaultDailyLimit < 1 {
		errs = append(errs, errors.New("governance limits must be positive"))
	}
	if c.Governance.StandardHistory < 2 || c.Governance.PremiumHistory < 2 {
		errs = append(errs, errors.New("history bounds must hold at least one exchange"))
	}

	for name, pkg := range c.Packages {
		if pkg.DailyLimit < 1 || pkg.Price < 0 || pkg.DurationDays < 0 {
			errs = append(errs, fmt.Errorf("package %q has invalid limits", name))
		}
	}

	if c.Memory.Backend != "local" && c.Memory.Backend != "redis" {
		errs = append(errs, fmt.Errorf("unknown memory.backend %q", c.Memory.Backend))
	}

	return errors.Join(errs...)
}

func withDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
