// Package config loads application configuration from environment variables
// into annotated structs, reading a .env file first when one exists.
//
// Each configuration type is parsed once per process and cached, so every
// component can call Load for its own Config struct without coordinating
// startup order.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// MustLoad panics on failure, for configuration the process cannot start
// without. Sentinel errors (ErrParsingConfig, ErrNilPointer,
// ErrConfigNotLoaded) compare with errors.Is.
package config
