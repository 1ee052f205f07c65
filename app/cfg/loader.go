package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Research provider configuration
	PerplexityAPIKey string `long:"perplexity-api-key" env:"PERPLEXITY_API_KEY" description:"Perplexity API key for research queries"`
	PerplexityURL    string `long:"perplexity-url" env:"PERPLEXITY_URL" default:"https://api.perplexity.ai" description:"Perplexity API base URL"`
	OpenAIAPIKey     string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key for digest formatting (optional, fallback template used when unset)"`

	// Email configuration
	ResendAPIKey string `long:"resend-api-key" env:"RESEND_API_KEY" description:"Resend API key for outbound email"`
	EmailFrom    string `long:"email-from" env:"EMAIL_FROM" default:"Marina Research <noreply@marina-ramirez.com>" description:"From address for digest emails"`
	EmailTo      string `long:"email-to" env:"EMAIL_TO" default:"info@marina-ramirez.com" description:"Recipient address for digest emails"`

	// Storage configuration
	ValkeyAddress  string `long:"valkey-address" env:"VALKEY_ADDRESS" description:"Valkey address for ledger storage (in-memory fallback used when unset)"`
	ValkeyPassword string `long:"valkey-password" env:"VALKEY_PASSWORD" description:"Valkey password"`
	ValkeyTLS      bool   `long:"valkey-tls" env:"VALKEY_TLS" description:"Enable TLS for Valkey connection"`

	// Application configuration
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	CronSecret  string `long:"cron-secret" env:"CRON_SECRET" description:"Shared secret for cron endpoints (open when unset)"`
	QueriesFile string `long:"queries-file" env:"QUERIES_FILE" default:"./queries.yml" description:"YAML file with research query sets"`
	BlogURL     string `long:"blog-url" env:"BLOG_URL" default:"https://www.marina-ramirez.com/en/blog" description:"Blog URL used in status reporting"`
	BlogFeedURL string `long:"blog-feed-url" env:"BLOG_FEED_URL" default:"https://www.marina-ramirez.com/en/blog/rss.xml" description:"RSS feed URL for existing blog posts"`
	MorningAt   string `long:"morning-at" env:"MORNING_SCHEDULE" default:"07:00" description:"Local time (HH:MM) for the morning digest job"`
	EveningAt   string `long:"evening-at" env:"EVENING_SCHEDULE" default:"18:00" description:"Local time (HH:MM) for the evening catchup job"`
	Scheduler   bool   `long:"scheduler" env:"SCHEDULER" description:"Run the built-in job scheduler (off when jobs are triggered by external cron)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Research Digest/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"America/Denver" description:"Timezone for job scheduling and date keys"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		PerplexityAPIKey: raw.PerplexityAPIKey,
		PerplexityURL:    raw.PerplexityURL,
		OpenAIAPIKey:     raw.OpenAIAPIKey,
		ResendAPIKey:     raw.ResendAPIKey,
		EmailFrom:        raw.EmailFrom,
		EmailTo:          raw.EmailTo,
		ValkeyAddress:    raw.ValkeyAddress,
		ValkeyPassword:   raw.ValkeyPassword,
		ValkeyTLS:        raw.ValkeyTLS,
		Port:             raw.Port,
		CronSecret:       raw.CronSecret,
		QueriesFile:      raw.QueriesFile,
		BlogURL:          raw.BlogURL,
		BlogFeedURL:      raw.BlogFeedURL,
		MorningAt:        raw.MorningAt,
		EveningAt:        raw.EveningAt,
		Scheduler:        raw.Scheduler,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
