package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"netrepro/internal/config"
	"netrepro/internal/lib/logger/slogpretty"
	"netrepro/internal/probe"
	"netrepro/internal/sampler"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := setupLogger(cfg.Env)

	local := cfg.LocalTarget()
	internet := cfg.InternetTarget()

	logger.Info("starting sampler",
		"env", cfg.Env,
		"local", local.Addr(),
		"internet", internet.Addr(),
		"interval", cfg.GetInterval(),
	)

	// Report stream on stdout, operational logging on stderr. Only the
	// report is meant for the log viewer comparing cycles over time.
	rep := sampler.NewReporter(os.Stdout)
	rep.Banner(local, internet)

	s := sampler.New(
		sampler.Config{
			Interval:     cfg.GetInterval(),
			GracePeriod:  cfg.GetGracePeriod(),
			GraceEnabled: cfg.Sampler.GraceEnabled,
		},
		buildEntries(cfg),
		rep,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Runs until externally killed; there is no normal-exit path.
	if err := s.Run(ctx); err != nil {
		logger.Error("sampler failed", "error", err)
		os.Exit(1)
	}

	logger.Info("sampler stopped gracefully")
}

// buildEntries assembles the check battery in its fixed cycle order. Order
// is part of the contract: the report is read by comparing the same lines
// across cycles.
func buildEntries(cfg *config.Config) []sampler.Entry {
	local := cfg.LocalTarget()
	internet := cfg.InternetTarget()
	runner := probe.ExecRunner{}

	entries := []sampler.Entry{
		// The post-failure grace sleep applies to the local raw connect only.
		{Check: probe.NewTCPCheck("tcp local", local, cfg.GetDialTimeout()), GraceOnFailure: true},
		{Check: probe.NewTCPCheck("tcp internet", internet, cfg.GetDialTimeout())},
	}

	if cfg.Checks.SystemPing {
		entries = append(entries, sampler.Entry{
			Check: probe.NewSystemPingCheck(runner, local.Host, cfg.GetPingTimeout()),
		})
	}

	if cfg.Checks.Netcat {
		entries = append(entries, sampler.Entry{
			Check: probe.NewNetcatCheck(runner, local, cfg.GetPingTimeout()),
		})
	}

	if cfg.Checks.Redis {
		client := probe.NewRedisClient(cfg.RedisAddr(), cfg.GetDialTimeout())
		entries = append(entries,
			sampler.Entry{Check: probe.NewRedisPingCheck(client, cfg.RedisAddr(), cfg.GetDialTimeout())},
			sampler.Entry{Check: probe.NewRedisRoundTripCheck(client, cfg.RedisAddr(), cfg.GetDialTimeout())},
		)
	}

	if cfg.Checks.ICMP {
		entries = append(entries, sampler.Entry{
			Check: probe.NewICMPCheck(local.Host, cfg.GetPingTimeout(), cfg.Checks.ICMPPrivileged),
		})
	}

	if cfg.Checks.BoundDial && cfg.Sampler.BindInterface != "" {
		entries = append(entries, sampler.Entry{
			Check: probe.NewBoundDialCheck("tcp bound "+cfg.Sampler.BindInterface, local, cfg.Sampler.BindInterface, cfg.GetDialTimeout()),
		})
	}

	if cfg.Checks.RouteTable {
		entries = append(entries, sampler.Entry{Check: probe.NewRouteCheck(runner, local.Host)})
	}

	if cfg.Checks.ARPTable {
		entries = append(entries, sampler.Entry{Check: probe.NewARPCheck(runner, local.Host)})
	}

	return entries
}

func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = setupPrettySlog()
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		logger = setupPrettySlog()
	}

	return logger
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stderr)

	return slog.New(handler)
}
