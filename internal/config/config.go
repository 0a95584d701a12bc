package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitos/crypto_market_radar/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config is assembled in three layers: built-in defaults, the optional
// YAML file, then environment variables (a .env file is honored when
// present). Environment wins.
type Config struct {
	Site struct {
		BaseURL           string `yaml:"base_url"`
		SiteURL           string `yaml:"site_url"`
		UseShareURLInPost bool   `yaml:"use_share_url_in_post"`
	} `yaml:"site"`
	API struct {
		BaseURL      string `yaml:"base_url"`
		Key          string `yaml:"key"`
		SentimentURL string `yaml:"sentiment_url"`
		TimeoutSec   int    `yaml:"timeout_sec"`
	} `yaml:"api"`
	Ranking struct {
		VsCurrency            string  `yaml:"vs_currency"`
		MarketsTop            int     `yaml:"markets_top"`
		TopN                  int     `yaml:"top_n"`
		MinVolume             float64 `yaml:"min_volume"`
		FilterTrending        bool    `yaml:"filter_trending"`
		AltVolumeKeywords     bool    `yaml:"alt_volume_keywords"`
		BreadthExcludeStables bool    `yaml:"breadth_exclude_stables"`
	} `yaml:"ranking"`
	Weekly struct {
		Days int `yaml:"days"`
		TopK int `yaml:"top_k"`
	} `yaml:"weekly"`
	Output struct {
		DataDir  string `yaml:"data_dir"`
		ShareDir string `yaml:"share_dir"`
		OutDir   string `yaml:"out_dir"`
		DBPath   string `yaml:"db_path"`
	} `yaml:"output"`
	Time struct {
		OffsetHours int `yaml:"offset_hours"`
	} `yaml:"time"`
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func defaults() *Config {
	var cfg Config
	cfg.Site.BaseURL = "https://coinradar.example.net"
	cfg.Site.SiteURL = ""
	cfg.Site.UseShareURLInPost = true
	cfg.API.BaseURL = "https://api.coingecko.com/api/v3"
	cfg.API.SentimentURL = "https://api.alternative.me"
	cfg.API.TimeoutSec = 30
	cfg.Ranking.VsCurrency = "jpy"
	cfg.Ranking.MarketsTop = 250
	cfg.Ranking.TopN = 3
	cfg.Ranking.MinVolume = 500_000_000
	cfg.Ranking.AltVolumeKeywords = true
	cfg.Weekly.Days = 7
	cfg.Weekly.TopK = 5
	cfg.Output.DataDir = "data/daily"
	cfg.Output.ShareDir = "share"
	cfg.Output.OutDir = "."
	cfg.Output.DBPath = "radar.db"
	cfg.Time.OffsetHours = 9
	cfg.Logging.Level = "info"
	return &cfg
}

// Load reads the YAML file at path (skipped when missing) and applies the
// environment on top. An unreadable or malformed file is an error, not a
// silent fallback.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		f, err := os.Open(path)
		if err == nil {
			decoder := yaml.NewDecoder(f)
			decodeErr := decoder.Decode(cfg)
			f.Close()
			if decodeErr != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, decodeErr)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// .env is optional; real environment still wins below.
	_ = godotenv.Load()
	cfg.applyEnv()

	if cfg.Site.SiteURL == "" {
		cfg.Site.SiteURL = strings.TrimRight(cfg.Site.BaseURL, "/") + "/"
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Site.BaseURL = getEnvString("BASE_URL", c.Site.BaseURL)
	c.Site.SiteURL = getEnvString("SITE_URL", c.Site.SiteURL)
	c.Site.UseShareURLInPost = getEnvBool("USE_SHARE_URL_IN_POST", c.Site.UseShareURLInPost)
	c.API.BaseURL = getEnvString("CG_API_URL", c.API.BaseURL)
	c.API.Key = getEnvString("CG_DEMO_KEY", c.API.Key)
	c.API.SentimentURL = getEnvString("SENTIMENT_API_URL", c.API.SentimentURL)
	c.Ranking.VsCurrency = getEnvString("VS_CURRENCY", c.Ranking.VsCurrency)
	c.Ranking.MarketsTop = getEnvInt("MARKETS_TOP", c.Ranking.MarketsTop)
	c.Ranking.TopN = getEnvInt("TOP_N", c.Ranking.TopN)
	c.Ranking.MinVolume = getEnvFloat("MIN_GAINERS_24H_VOLUME", c.Ranking.MinVolume)
	c.Ranking.FilterTrending = getEnvBool("FILTER_TRENDING", c.Ranking.FilterTrending)
	c.Ranking.AltVolumeKeywords = getEnvBool("ALT_VOLUME_KEYWORDS", c.Ranking.AltVolumeKeywords)
	c.Ranking.BreadthExcludeStables = getEnvBool("BREADTH_EXCLUDE_STABLES", c.Ranking.BreadthExcludeStables)
	c.Weekly.Days = getEnvInt("WEEK_DAYS", c.Weekly.Days)
	c.Weekly.TopK = getEnvInt("WEEK_TOP_K", c.Weekly.TopK)
	c.Output.DataDir = getEnvString("DATA_DIR", c.Output.DataDir)
	c.Output.ShareDir = getEnvString("SHARE_DIR", c.Output.ShareDir)
	c.Output.OutDir = getEnvString("OUT_DIR", c.Output.OutDir)
	c.Output.DBPath = getEnvString("DB_PATH", c.Output.DBPath)
	c.Time.OffsetHours = getEnvInt("TZ_OFFSET_HOURS", c.Time.OffsetHours)
	c.Logging.Level = getEnvString("LOG_LEVEL", c.Logging.Level)
}

// RankingConfig maps the loaded options onto the engine's rule set. The
// stable and exclusion sets stay at their defaults; variants only ever
// disagreed on the flags and thresholds.
func (c *Config) RankingConfig() domain.RankingConfig {
	rc := domain.DefaultRankingConfig()
	rc.TopN = c.Ranking.TopN
	rc.MinVolume = c.Ranking.MinVolume
	rc.FilterTrending = c.Ranking.FilterTrending
	rc.ApplyKeywordsToAltVolume = c.Ranking.AltVolumeKeywords
	rc.BreadthExcludeStables = c.Ranking.BreadthExcludeStables
	return rc
}

// Location is the fixed zone snapshots are dated in.
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.Time.OffsetHours), c.Time.OffsetHours*3600)
}

// Timeout is the single HTTP timeout applied to every external call.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return fallback
}
