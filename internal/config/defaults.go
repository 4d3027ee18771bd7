package config

// Default value constants.
const (
	DefaultModel       = "gpt-4o"
	DefaultOutputFile  = "README.md"
	DefaultTemperature = 0.7
	DefaultTimeout     = 60

	MinTemperature = 0.0
	MaxTemperature = 2.0

	// EnvPrefix is prepended to the upper-cased option key to form its
	// environment variable name.
	EnvPrefix = "AI_README_"

	// AppDirName is the directory under os.UserConfigDir holding the config file.
	AppDirName = "ai-readme"

	// FileName is the config file name.
	FileName = "config.yaml"
)

// NewDefaultSettings returns the built-in defaults. The api_key default is
// empty, so resolution fails unless another layer supplies it.
func NewDefaultSettings() Settings {
	return Settings{
		Model:       DefaultModel,
		OutputFile:  DefaultOutputFile,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
	}
}
