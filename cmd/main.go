package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/maddsua/loginprobe/config"
	"github.com/maddsua/loginprobe/probes"
)

type CliFlags struct {
	Cfg      *string
	Url      *string
	Debug    *bool
	JsonLogs *bool
}

func main() {

	godotenv.Load()

	cli := CliFlags{
		Cfg:      flag.String("cfg", "", "config file location"),
		Url:      flag.String("url", "", "login endpoint url override"),
		Debug:    flag.Bool("debug", false, "enable debug logging"),
		JsonLogs: flag.Bool("json_logs", false, "log in json format"),
	}
	flag.Parse()

	debug := os.Getenv("DEBUG") == "true" || *cli.Debug

	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	if os.Getenv("LOGFMT") == "json" || *cli.JsonLogs {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
	} else {
		slog.SetLogLoggerLevel(logLevel)
	}

	cfg, err := loadConfig(*cli.Cfg)
	if err != nil {
		slog.Error("Failed to load config",
			slog.String("err", err.Error()))
		os.Exit(1)
	}

	if val := os.Getenv("LOGINPROBE_URL"); val != "" {
		cfg.Target.Url = val
	}

	if *cli.Url != "" {
		cfg.Target.Url = *cli.Url
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Failed to validate config",
			slog.String("err", err.Error()))
		os.Exit(1)
	}

	probe, err := probes.NewLoginProbe(cfg.Target, cfg.Proxies)
	if err != nil {
		slog.Error("Failed to set up login probe",
			slog.String("err", err.Error()))
		os.Exit(1)
	}

	slog.Debug("Login probe ready",
		slog.String("url", probe.Target()),
		slog.Int("attempts", len(cfg.Attempts)),
		slog.Duration("timeout", cfg.Target.Timeout()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {

		exitCh := make(chan os.Signal, 2)
		signal.Notify(exitCh, syscall.SIGINT, syscall.SIGTERM)

		<-exitCh
		slog.Warn("Shutting down...")
		cancel()
	}()

	writer := newReportWriter(os.Stdout, debug)

	if err := probes.RunAll(ctx, probe, probes.AttemptsFromConfig(cfg.Attempts), writer); err != nil {
		slog.Debug("Run finished with errors",
			slog.String("err", err.Error()))
	}
}

// loadConfig falls back to the built-in target and attempts when there's no config file around
func loadConfig(path string) (*config.RootConfig, error) {

	if path == "" {
		if loc, has := config.FindConfig([]string{
			"./loginprobe.yml",
			"./loginprobe.json",
			"/etc/loginprobe/loginprobe.yml",
		}); has {
			path = loc
		}
	}

	if path == "" {
		slog.Debug("No config file found, using defaults")
		return config.Default(), nil
	}

	slog.Debug("Config file located",
		slog.String("at", path))

	return config.LoadConfigFile(path)
}
