package config

const (
	defaultDownloadDir       = "~/Downloads"
	defaultDataDir           = "~/higal/data"
	defaultLogDir            = "~/.local/share/higalfetch/logs"
	defaultServiceURL        = "http://tools.asdc.asi.it/HiGAL.jsp"
	defaultPartialSuffix     = ".part"
	defaultResultPageTimeout = 60
	defaultControlTimeout    = 60
	defaultPollIntervalMS    = 500
	defaultSettleGrace       = 3
	defaultLogLevel          = "info"
	defaultLogFormat         = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir: defaultDownloadDir,
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
		},
		Service: Service{
			URL: defaultServiceURL,
		},
		Browser: Browser{
			Headless:      true,
			PartialSuffix: defaultPartialSuffix,
		},
		Timing: Timing{
			ResultPageTimeout: defaultResultPageTimeout,
			ControlTimeout:    defaultControlTimeout,
			PollIntervalMS:    defaultPollIntervalMS,
			SettleGrace:       defaultSettleGrace,
			// SettleTimeout and CompletionTimeout default to zero: the
			// soft-infinite ceiling. Override for strict bounds.
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
