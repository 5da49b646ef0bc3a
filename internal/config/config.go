// README: Config loader with env defaults for logging and rollback settings.
package config

import "github.com/spf13/viper"

// Config holds all tunable parameters for a simulation instance. Fare
// constants are business rules and live in the pricing package, not here.
type Config struct {
	LogLevel         string
	RollbackCapacity int
	HistoryWindow    int
}

// Load reads configuration from environment variables and an optional .env
// file. Missing keys fall back to defaults so the binary runs without
// setup.
func Load() (Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("RIDESHARE_LOG_LEVEL", "info")
	viper.SetDefault("RIDESHARE_ROLLBACK_CAPACITY", 100)
	viper.SetDefault("RIDESHARE_HISTORY_WINDOW", 10)

	// Env vars injected by the environment are used when no .env exists.
	_ = viper.ReadInConfig()

	return Config{
		LogLevel:         viper.GetString("RIDESHARE_LOG_LEVEL"),
		RollbackCapacity: viper.GetInt("RIDESHARE_ROLLBACK_CAPACITY"),
		HistoryWindow:    viper.GetInt("RIDESHARE_HISTORY_WINDOW"),
	}, nil
}
