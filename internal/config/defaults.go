package config

const (
	// ConfigFileName is the name of the config file within the config directory.
	ConfigFileName = "config.yml"

	// DBFileName is the name of the primary SQLite store within the config directory.
	DBFileName = "tasks.db"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1

	// Week start options for report windows.
	WeekStartMonday = "monday"
	WeekStartSunday = "sunday"

	// DefaultWeekStart is the default first day of the reporting week.
	DefaultWeekStart = WeekStartMonday

	// DefaultLLMBaseURL is the default OpenAI-compatible endpoint for reports.
	DefaultLLMBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	// DefaultLLMModel is the default text-generation model.
	DefaultLLMModel = "qwen-max"

	// DefaultAPIKeyEnv is the environment variable consulted for the API key.
	DefaultAPIKeyEnv = "TODO_API_KEY"
)
