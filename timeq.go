package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := mainErr(); err != nil {
		log.Fatal().Err(err).Msg("timeq")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mainErr() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	conf := DefaultConfig()

	var (
		serve      bool
		configPath string
	)
	flag.BoolVar(&serve, "serve", false, "server mode")
	flag.StringVar(&configPath, "config", envOr("TIMEQ_CONFIG", ""), "path to YAML config file")
	flag.StringVar(&conf.Endpoint, "ep", envOr("TIMEQ_ENDPOINT", conf.Endpoint), "endpoint to connect to or local endpoint in server mode")
	flag.IntVar(&conf.Iterations, "iterations", conf.Iterations, "samples per delay/RTT estimation")
	flag.IntVar(&conf.RecvTimeoutMs, "recv-timeout", conf.RecvTimeoutMs, "client receive timeout (ms), 0 blocks forever")
	flag.IntVar(&conf.LapExpirySec, "lap-expiry", conf.LapExpirySec, "lap timer expiry (seconds)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"})

	if configPath != "" {
		flagged := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { flagged[f.Name] = true })
		fromFlags := conf
		if err := conf.ApplyFile(configPath); err != nil {
			return err
		}
		// explicit flags win over the file
		if flagged["ep"] {
			conf.Endpoint = fromFlags.Endpoint
		}
		if flagged["iterations"] {
			conf.Iterations = fromFlags.Iterations
		}
		if flagged["recv-timeout"] {
			conf.RecvTimeoutMs = fromFlags.RecvTimeoutMs
		}
		if flagged["lap-expiry"] {
			conf.LapExpirySec = fromFlags.LapExpirySec
		}
	}

	if serve {
		return Server(conf)
	}

	return Client(conf)
}
