// Основной пакет сервиса редактора блоков. Отвечает за чтение конфигурации, подключение к базе данных, миграцию моделей и запуск HTTP сервера.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/config"
	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/dao"
)

var version string = "DEV"

// Пример запуска: go run main.go --noMigration --trace
func main() {
	paramQueries := flag.Bool("paramQueries", true, "Mask queries params in log")
	noMigration := flag.Bool("noMigration", false, "Turn off DB migration")
	trace := flag.Bool("trace", false, "Verbose logs and sql trace")
	listen := flag.String("listen", "", "API listen address, overrides LISTEN_ADDR")
	metricsListen := flag.String("metrics", "", "Metrics listen address, overrides METRICS_ADDR")
	flag.Parse()

	PrintBanner()

	cfg := config.ReadConfig()
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *metricsListen != "" {
		cfg.MetricsAddr = *metricsListen
	}

	level := cfg.Level()
	if *trace {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogJSON {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, opts)))
	}

	slog.Info("RichBlocks start.", "version", version)

	db, err := dao.Open(cfg, *paramQueries)
	if err != nil {
		slog.Error("Fail init DB connection", "err", err)
		os.Exit(1)
	}

	if !*noMigration {
		if err := dao.Migrate(db); err != nil {
			slog.Error("Migrate models", "err", err)
			os.Exit(1)
		}
	}

	srv, err := richblocks.NewServer(db, cfg, version)
	if err != nil {
		slog.Error("Init server", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}

func PrintBanner() {
	banner := `
 ____  _      _     ____  _            _
|  _ \(_) ___| |__ | __ )| | ___   ___| | _____
| |_) | |/ __| '_ \|  _ \| |/ _ \ / __| |/ / __|
|  _ <| | (__| | | | |_) | | (_) | (__|   <\__ \
|_| \_\_|\___|_| |_|____/|_|\___/ \___|_|\_\___/ %s
Headless rich-text blocks editor
----------------------------------------------------
`
	colorReset := "\033[0m"
	colorYellow := "\033[33m"

	formattedVersion := version
	if version == "DEV" {
		formattedVersion = colorYellow + version + colorReset
	}

	fmt.Printf(banner, formattedVersion)
}
