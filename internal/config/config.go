package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Mode string

const (
	ModeRead   Mode = "read"
	ModeStream Mode = "stream"
)

type Config struct {
	Mode         Mode
	Input        string
	Source       string
	Capacity     int
	Symbol       string
	Feed         string
	PriceScale   int
	MinSamples   int
	MaxStdev     int64
	MaxVariation int64
	ReportsPath  string
	MetricsAddr  string
	LogLevel     slog.Level
	APIKey       string
	APISecret    string
}

func Load() (Config, error) {
	var cfg Config
	var mode string
	var logLevel string

	loadDotEnvIfPresent(".env")

	flag.StringVar(&mode, "mode", string(ModeRead), "run mode: read or stream")
	flag.StringVar(&cfg.Input, "input", "-", "sample file for read mode, - for stdin")
	flag.StringVar(&cfg.Source, "source", "", "source label for read mode samples")
	flag.IntVar(&cfg.Capacity, "capacity", 20, "number of samples kept in the window")
	flag.StringVar(&cfg.Symbol, "symbol", "", "symbol to stream bars for")
	flag.StringVar(&cfg.Feed, "feed", "iex", "market data feed: iex or sip")
	flag.IntVar(&cfg.PriceScale, "price-scale", 2, "decimal digits kept when converting prices to samples")
	flag.IntVar(&cfg.MinSamples, "min-samples", 1, "samples required before the gate can accept")
	flag.Int64Var(&cfg.MaxStdev, "max-stdev", 0, "reject windows with a larger stdev, 0 disables")
	flag.Int64Var(&cfg.MaxVariation, "max-variation", 0, "reject noisy windows with a larger signal percentage, 0 disables")
	flag.StringVar(&cfg.ReportsPath, "reports-path", "reports.ndjson", "path to reports log")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "address for the /metrics endpoint, empty disables")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	cfg.Mode = Mode(mode)
	cfg.APIKey = os.Getenv("APCA_API_KEY_ID")
	cfg.APISecret = os.Getenv("APCA_API_SECRET_KEY")

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return cfg, fmt.Errorf("invalid log-level: %s", logLevel)
	}

	if cfg.Source == "" {
		cfg.Source = "stdin"
		if cfg.Input != "-" {
			cfg.Source = cfg.Input
		}
	}
	if cfg.Mode == ModeStream {
		cfg.Symbol = strings.ToUpper(cfg.Symbol)
		if cfg.Symbol == "" {
			cfg.Symbol = "AAPL"
		}
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Mode != ModeRead && cfg.Mode != ModeStream {
		return fmt.Errorf("invalid mode: %s", cfg.Mode)
	}
	if cfg.Mode == ModeStream && (cfg.APIKey == "" || cfg.APISecret == "") {
		return fmt.Errorf("APCA_API_KEY_ID and APCA_API_SECRET_KEY are required in stream mode")
	}
	if cfg.Feed != "iex" && cfg.Feed != "sip" {
		return fmt.Errorf("invalid feed: %s", cfg.Feed)
	}
	if cfg.Capacity <= 0 {
		return fmt.Errorf("capacity must be > 0")
	}
	if cfg.MinSamples < 1 || cfg.MinSamples > cfg.Capacity {
		return fmt.Errorf("min-samples must be between 1 and capacity")
	}
	if cfg.PriceScale < 0 || cfg.PriceScale > 6 {
		return fmt.Errorf("price-scale must be between 0 and 6")
	}
	if cfg.MaxStdev < 0 {
		return fmt.Errorf("max-stdev must be >= 0")
	}
	if cfg.MaxVariation < 0 {
		return fmt.Errorf("max-variation must be >= 0")
	}
	return nil
}
