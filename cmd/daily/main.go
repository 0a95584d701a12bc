package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vitos/crypto_market_radar/internal/config"
	"github.com/vitos/crypto_market_radar/internal/domain"
	"github.com/vitos/crypto_market_radar/internal/infrastructure/logger"
	"github.com/vitos/crypto_market_radar/internal/infrastructure/marketdata"
	"github.com/vitos/crypto_market_radar/internal/infrastructure/storage"
	"github.com/vitos/crypto_market_radar/internal/render"
	"github.com/vitos/crypto_market_radar/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	log, err := logger.NewLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Storage
	snapStore := storage.NewSnapshotStore(cfg.Output.DataDir)
	runStore, err := storage.NewSQLiteStore(cfg.Output.DBPath)
	if err != nil {
		// The archive is best-effort; the snapshot file is the contract.
		log.Warn("Failed to init run archive, continuing without it", zap.Error(err))
		runStore = nil
	} else {
		defer runStore.Close()
	}

	// 4. Init Feeds
	market := marketdata.NewCoinGeckoClient(
		cfg.API.BaseURL, cfg.API.Key, cfg.Ranking.VsCurrency, cfg.Ranking.MarketsTop, cfg.Timeout())
	sentiment := marketdata.NewFearGreedClient(cfg.API.SentimentURL, cfg.Timeout())

	// 5. Init Service
	ranker := usecase.NewRanker(cfg.RankingConfig())
	var runs domain.RunRepository
	if runStore != nil {
		runs = runStore
	}
	svc := usecase.NewDailyService(
		market, sentiment, snapStore, runs, ranker,
		cfg.Ranking.VsCurrency, cfg.Location(), log)

	// 6. Run one cycle
	ctx := context.Background()
	snap, err := svc.Run(ctx)
	if err != nil {
		log.Fatal("Daily run failed", zap.Error(err))
	}

	// 7. Render outputs
	dateCompact := strings.ReplaceAll(snap.Date, "-", "")
	page := render.BuildSharePage(cfg.Site.BaseURL, dateCompact, snap.Date)

	link := page.URL
	if !cfg.Site.UseShareURLInPost {
		link = cfg.Site.SiteURL
	}
	post := render.BuildDailyPost(snap, link)

	for _, dir := range []string{cfg.Output.ShareDir, cfg.Output.OutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal("Failed to create output dir", zap.String("dir", dir), zap.Error(err))
		}
	}
	outputs := []struct {
		path    string
		content string
	}{
		{filepath.Join(cfg.Output.ShareDir, page.FileName), page.HTML},
		{filepath.Join(cfg.Output.OutDir, "daily_post_full.txt"), post.Long},
		{filepath.Join(cfg.Output.OutDir, "daily_post_short.txt"), post.Short},
		{filepath.Join(cfg.Output.OutDir, "daily_share_url.txt"), page.URL},
	}
	for _, out := range outputs {
		if err := os.WriteFile(out.path, []byte(out.content), 0o644); err != nil {
			log.Fatal("Failed to write output", zap.String("path", out.path), zap.Error(err))
		}
	}

	log.Info("Daily run complete",
		zap.String("date", snap.Date),
		zap.Int("gainers", len(snap.Gainers)),
		zap.Int("vol_alt", len(snap.VolAlt)),
		zap.Int("trend", len(snap.Trend)),
		zap.String("share_url", page.URL))

	fmt.Println(page.URL)
}
