package main

import (
	"carcassonne/experiments"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	path := "experiment.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	config, err := experiments.LoadConfig(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load experiment")
	}

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("invalid log level %q", config.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	if _, err := experiments.Run(config); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
