package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	Port              string
	ScrapeInterval    int
	WorkerCount       int
	SourcesFile       string
	ScraperAPIKey     string
	AdminPassword     string
	DiscordWebhookURL string
	SlackWebhookURL   string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
