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
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"nyack_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"nyack_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"nyack_events" description:"Database name"`

	// Application configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	ScrapeInterval    int    `long:"scrape-interval" env:"SCRAPE_INTERVAL" default:"3600" description:"Interval between scheduled scraper runs in seconds (0 disables the scheduler)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers for task processing"`
	SourcesFile       string `long:"sources-file" env:"SOURCES_FILE" description:"Optional YAML file with per-source settings overrides"`
	ScraperAPIKey     string `long:"scraper-api-key" env:"SCRAPER_API_KEY" description:"API key for automated scrape triggers (optional)"`
	AdminPassword     string `long:"admin-password" env:"ADMIN_PASSWORD" description:"Password for the admin API (optional)"`
	DiscordWebhookURL string `long:"discord-webhook-url" env:"DISCORD_WEBHOOK_URL" description:"Discord webhook for scraper notifications (optional)"`
	SlackWebhookURL   string `long:"slack-webhook-url" env:"SLACK_WEBHOOK_URL" description:"Slack webhook for scraper notifications (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NyackToday/1.0 (Events Aggregator)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"America/New_York" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
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
		DBHost:            raw.DBHost,
		DBPort:            raw.DBPort,
		DBUser:            raw.DBUser,
		DBPassword:        raw.DBPassword,
		DBName:            raw.DBName,
		Port:              raw.Port,
		ScrapeInterval:    raw.ScrapeInterval,
		WorkerCount:       raw.WorkerCount,
		SourcesFile:       raw.SourcesFile,
		ScraperAPIKey:     raw.ScraperAPIKey,
		AdminPassword:     raw.AdminPassword,
		DiscordWebhookURL: raw.DiscordWebhookURL,
		SlackWebhookURL:   raw.SlackWebhookURL,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
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
