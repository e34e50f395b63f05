package config

type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Log     LogConfig
	Storage StorageConfig
	Auth    AuthConfig
}

type ServerConfig struct {
	Port       int
	MCPEnabled bool
}

// SessionConfig bounds the in-memory assessment registry.
type SessionConfig struct {
	TTL       string // time.ParseDuration format
	MaxActive int
}

type LogConfig struct {
	Level string
}

type StorageConfig struct {
	DataDir string
}

// AuthConfig is only populated from the environment; see GetAPIToken.
type AuthConfig struct {
	APIToken string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:       4100,
			MCPEnabled: true,
		},
		Session: SessionConfig{
			TTL:       "30m",
			MaxActive: 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
	}
}

// Load reads configuration from the platform-native backend and
// environment variables.
//
// On macOS the backend is UserDefaults (domain: com.tizhi.app).
// On Linux the backend is a JSON file at $XDG_CONFIG_HOME/tizhi/config.json.
//
// Environment variables (TIZHI_*) override backend values on all platforms.
func Load() (Config, error) {
	return loadWith(newPlatformBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}
