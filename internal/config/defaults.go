package config

// DefaultConfig returns a Config populated with all default values.
// The endpoint and credentials have no sensible defaults and must come
// from the config file, the environment, or CLI flags.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint:       "",
			Email:          "",
			Password:       "",
			TimeoutSeconds: 30,
		},
		Report: ReportConfig{
			IntervalPerson:  1,
			CountUnassigned: false,
			Prefetch:        false,
		},
		Output: OutputConfig{
			Path:     "",
			Detailed: false,
			Workbook: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
