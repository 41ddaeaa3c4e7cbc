package config

const (
	defaultCacheDir              = "~/.local/share/bricksort/cache"
	defaultStagingDir            = "~/.local/share/bricksort/staging"
	defaultLogDir                = "~/.local/share/bricksort/logs"
	defaultRebrickableBaseURL    = "https://rebrickable.com"
	defaultBrickArchitectBaseURL = "https://brickarchitect.com"
	defaultRemoteTimeoutSeconds  = 30
	defaultFetchWorkers          = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir:   defaultCacheDir,
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Rebrickable: Rebrickable{
			BaseURL:        defaultRebrickableBaseURL,
			TimeoutSeconds: defaultRemoteTimeoutSeconds,
		},
		BrickArchitect: BrickArchitect{
			BaseURL:        defaultBrickArchitectBaseURL,
			TimeoutSeconds: defaultRemoteTimeoutSeconds,
		},
		Fetch: Fetch{
			Workers: defaultFetchWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
