package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/taskmanager/task-api/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to load env config")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Msg("loaded env config")

	config.SetGlobal(cfg)
}
