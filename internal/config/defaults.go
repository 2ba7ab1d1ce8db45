package config

import "github.com/hyperjump/fitscout/internal/ranking"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8787
	}
	if cfg.Server.CORSOrigins == nil {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = 30
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = SourceFiles
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "./data"
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./fitscout.db"
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "onnx"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "./models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 128
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 1000
	}
	if cfg.Search.Mode == "" {
		cfg.Search.Mode = ModeRelaxed
	}
	if cfg.Search.Ranking == (ranking.RankingConfig{}) {
		cfg.Search.Ranking = *ranking.DefaultRankingConfig()
	}
	cfg.Search.Ranking.ApplyDefaults()
	if cfg.Sizing.ShoeRegion == "" {
		cfg.Sizing.ShoeRegion = "US"
	}
	if cfg.Sizing.DefaultLabel == "" {
		cfg.Sizing.DefaultLabel = "M"
	}
	if cfg.Sizing.AcceptThreshold == 0 {
		cfg.Sizing.AcceptThreshold = 0.7
	}
}
