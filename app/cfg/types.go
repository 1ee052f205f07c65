package cfg

type Cfg struct {
	// Research provider configuration
	PerplexityAPIKey string
	PerplexityURL    string
	OpenAIAPIKey     string

	// Email configuration
	ResendAPIKey string
	EmailFrom    string
	EmailTo      string

	// Storage configuration
	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool

	// Application configuration
	Port        string
	CronSecret  string
	QueriesFile string
	BlogURL     string
	BlogFeedURL string
	MorningAt   string
	EveningAt   string
	Scheduler   bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
