package main

import (
	"github.com/spf13/viper"
)

// cliConfig holds the defaults that flags fall back to when left unset,
// loaded from JPEGXSCODEC_* environment variables or a jpegxscodec.yaml in
// the working directory, following the config-layering shape of
// other_examples' viper-based daemon configuration.
type cliConfig struct {
	quality float64
	profile string
	level   int
	logPath string
}

func loadConfig() cliConfig {
	v := viper.New()
	v.SetConfigName("jpegxscodec")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("JPEGXSCODEC")
	v.AutomaticEnv()

	v.SetDefault("quality", 0.85)
	v.SetDefault("profile", "Main")
	v.SetDefault("level", 2)
	v.SetDefault("logpath", "")

	// A missing config file is not fatal: the defaults above stand in for
	// it, so the error is deliberately discarded here.
	_ = v.ReadInConfig()

	return cliConfig{
		quality: v.GetFloat64("quality"),
		profile: v.GetString("profile"),
		level:   v.GetInt("level"),
		logPath: v.GetString("logpath"),
	}
}
