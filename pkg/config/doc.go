// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for struct tag parsing. Each config type is
// parsed once and cached for the lifetime of the process, so packages can
// call Load for their own config struct without coordinating:
//
//	type Config struct {
//	    StrictFields  bool   `env:"VALIDATION_STRICT_FIELDS" envDefault:"false"`
//	    TemplatesFile string `env:"VALIDATION_TEMPLATES_FILE"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// The default .env in the working directory is read before the first parse
// when present. LoadEnv loads other files explicitly. ResetCache clears the
// cache, which tests use after changing the environment.
//
// Errors are sentinels usable with errors.Is: ErrParsingConfig,
// ErrInvalidConfigType, ErrNilPointer and ErrLoadingEnvFile.
package config
