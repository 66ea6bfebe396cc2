package cfg

type Cfg struct {
	// User store configuration
	DBPath string

	// Cache configuration
	RedisAddr string

	// Article provider configuration
	NewsAPIKey     string
	NewsAPIBaseURL string

	// Summarization configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// Application configuration
	Port           string
	TuningFile     string
	APIAccessKey   string
	FreeDailyLimit int
	WarmTopics     []string
	WarmInterval   int
	WorkerCount    int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
