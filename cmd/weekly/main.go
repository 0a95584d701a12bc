package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vitos/crypto_market_radar/internal/config"
	"github.com/vitos/crypto_market_radar/internal/infrastructure/logger"
	"github.com/vitos/crypto_market_radar/internal/infrastructure/storage"
	"github.com/vitos/crypto_market_radar/internal/render"
	"github.com/vitos/crypto_market_radar/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	snapStore := storage.NewSnapshotStore(cfg.Output.DataDir)

	ctx := context.Background()
	snaps, err := snapStore.LoadRecentSnapshots(ctx, cfg.Weekly.Days)
	if err != nil {
		log.Fatal("Failed to load snapshots", zap.Error(err))
	}

	svc := usecase.NewWeeklyService(cfg.Weekly.TopK)
	rep := svc.Aggregate(snaps)
	if rep == nil {
		// Valid terminal state: nothing to aggregate, nothing written.
		log.Info("No snapshot data found, nothing to aggregate")
		return
	}

	report := render.BuildWeeklyReport(rep, cfg.Site.SiteURL)
	announce := render.BuildWeeklyAnnounce(rep, cfg.Site.SiteURL)

	if err := os.MkdirAll(cfg.Output.OutDir, 0o755); err != nil {
		log.Fatal("Failed to create output dir", zap.Error(err))
	}

	reportPath := filepath.Join(cfg.Output.OutDir, "weekly_note_draft.md")
	if err := os.WriteFile(reportPath, []byte(report), 0o644); err != nil {
		log.Fatal("Failed to write weekly report", zap.Error(err))
	}
	announcePath := filepath.Join(cfg.Output.OutDir, "weekly_summary.txt")
	if err := os.WriteFile(announcePath, []byte(announce), 0o644); err != nil {
		log.Fatal("Failed to write weekly announce", zap.Error(err))
	}

	log.Info("Weekly report written",
		zap.Int("days", rep.Days),
		zap.String("start", rep.StartDate),
		zap.String("end", rep.EndDate),
		zap.String("report", reportPath))
}
