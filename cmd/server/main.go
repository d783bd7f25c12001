package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/akaashdash/simulated-exchange/config"
	"github.com/akaashdash/simulated-exchange/service"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath  string
		port        int
		metricsAddr string
		instruments []string
	)

	cmd := &cobra.Command{
		Use:   "server",
		Short: "FIX matching-engine exchange",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}
			cfg.Instruments = append(cfg.Instruments, instruments...)

			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file")
	cmd.Flags().IntVar(&port, "port", 5000, "FIX listen port")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on")
	cmd.Flags().StringArrayVar(&instruments, "instrument", nil, "instrument ticker to register (repeatable)")
	return cmd
}

func run(cfg config.Config) error {
	log, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	exchange := service.NewExchange(log)
	for _, ticker := range cfg.Instruments {
		if err := exchange.AddInstrument(ticker); err != nil {
			return err
		}
		log.Info("instrument registered", zap.String("ticker", ticker))
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", exchange.Metrics().Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Warn("metrics listener exited", zap.Error(err))
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info("shutting down")
		exchange.Stop()
	}()

	return exchange.Start(cfg.Port)
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		var err error
		lvl, err = zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
