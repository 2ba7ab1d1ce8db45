// Package main is the FitScout CLI entry point.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hyperjump/fitscout/internal/catalog"
	"github.com/hyperjump/fitscout/internal/cli"
	"github.com/hyperjump/fitscout/internal/config"
	"github.com/hyperjump/fitscout/internal/embedding"
	"github.com/hyperjump/fitscout/internal/metrics"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/internal/ranking"
	"github.com/hyperjump/fitscout/internal/search"
	"github.com/hyperjump/fitscout/internal/server"
	"github.com/hyperjump/fitscout/internal/sizing"
	"github.com/hyperjump/fitscout/internal/storage"
	"github.com/hyperjump/fitscout/internal/validation"
	"github.com/hyperjump/fitscout/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/fitscout/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in the
// current directory wins if present, and built-in defaults are used when neither
// file exists. Returns the config and the path that was loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "suggest":
		runSuggest()
	case "find":
		runFind()
	case "import":
		runImport()
	case "embed":
		runEmbed()
	case "version", "--version", "-v":
		fmt.Printf("fitscout version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// setup loads config and creates the logger, exiting on failure.
func setup(configPath string, debugFlag bool) (*config.Config, *zap.Logger) {
	cfg, resolvedConfigPath, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || debugFlag
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)
	return cfg, logger
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := setup(*configPath, *debug)
	defer logger.Sync()

	components, err := initializeComponents(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	srv := server.NewServer(components.Sizer, components.Finder, components.Store, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// argsReorder moves any flags (and their values) that appear after positional
// arguments to the front so flag.Parse sees them. Go's flag package stops at the
// first non-flag argument.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// buildQuery joins positional args with spaces so multi-word text works with or
// without shell quoting.
func buildQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// measurementFlags registers one flag per measurement. Unset flags stay nil.
type measurementFlags struct {
	chest, waist, shoulder, inseam, hip, foot *float64
}

func registerMeasurementFlags(fs *flag.FlagSet) *measurementFlags {
	return &measurementFlags{
		chest:    fs.Float64("chest", 0, "chest circumference in cm"),
		waist:    fs.Float64("waist", 0, "waist circumference in cm"),
		shoulder: fs.Float64("shoulder", 0, "shoulder width in cm"),
		inseam:   fs.Float64("inseam", 0, "inseam length in cm"),
		hip:      fs.Float64("hip", 0, "hip circumference in cm"),
		foot:     fs.Float64("foot", 0, "foot length in mm"),
	}
}

func (f *measurementFlags) measurements() models.Measurements {
	opt := func(v *float64) *float64 {
		if v == nil || *v <= 0 {
			return nil
		}
		return models.Float(*v)
	}
	return models.Measurements{
		ChestCM:    opt(f.chest),
		WaistCM:    opt(f.waist),
		ShoulderCM: opt(f.shoulder),
		InseamCM:   opt(f.inseam),
		HipCM:      opt(f.hip),
		FootMM:     opt(f.foot),
	}
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = evaluate locally)")
	brand := fs.String("brand", "", "brand id (required)")
	category := fs.String("category", "", "category, e.g. shoes or clothing (required)")
	fit := fs.String("fit", "", "fit preference: slim, regular or loose (aliases: snug, relaxed)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	mf := registerMeasurementFlags(fs)
	_ = fs.Parse(os.Args[2:])

	req := &models.SizeRequest{
		Brand:         strings.TrimSpace(*brand),
		Category:      strings.TrimSpace(*category),
		FitPreference: *fit,
		Measurements:  mf.measurements(),
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		fmt.Fprintf(os.Stderr, "Invalid request: %v\n", verr)
		os.Exit(1)
	}
	format := cli.ParseOutputFormat(*outputFormat)

	var suggestion *models.SizeSuggestion
	if *serverURL != "" {
		suggestion = &models.SizeSuggestion{}
		if err := postJSON(*serverURL+"/v1/size/suggest", req, suggestion); err != nil {
			fmt.Fprintf(os.Stderr, "Suggest failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, logger := setup(*configPath, false)
		defer logger.Sync()
		components, err := initializeComponents(context.Background(), cfg, logger)
		if err != nil {
			logger.Fatal("Failed to initialize", zap.Error(err))
		}
		defer components.Close()
		suggestion, err = components.Sizer.Suggest(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Suggest failed: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cli.WriteSuggestion(os.Stdout, suggestion, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func printFindUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: fitscout find [flags] <text>\n\n")
	fmt.Fprintf(fs.Output(), "Text is all remaining arguments joined by spaces. Use --url or --caption instead of text for those cues.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  fitscout find running shoes nike
  fitscout find --caption "white linen summer shirt"
  fitscout find --url https://shop.example.com/uniqlo/leather-belt
  fitscout find --output json leather belt
`)
}

func runFind() {
	findArgs := argsReorder(os.Args[2:])
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "", "server URL (empty = rank locally)")
	url := fs.String("url", "", "product page URL used as the query cue")
	caption := fs.String("caption", "", "image caption used as the query cue")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() { printFindUsage(fs) }
	_ = fs.Parse(findArgs)

	req := &models.FindRequest{URL: *url, Caption: *caption, Text: buildQuery(fs.Args())}
	if _, err := req.Cue(); err != nil {
		printFindUsage(fs)
		os.Exit(1)
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		fmt.Fprintf(os.Stderr, "Invalid request: %v\n", verr)
		os.Exit(1)
	}
	format := cli.ParseOutputFormat(*outputFormat)

	var response *models.FindResponse
	if *serverURL != "" {
		response = &models.FindResponse{}
		if err := postJSON(*serverURL+"/v1/find", req, response); err != nil {
			fmt.Fprintf(os.Stderr, "Find failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, logger := setup(*configPath, false)
		defer logger.Sync()
		components, err := initializeComponents(context.Background(), cfg, logger)
		if err != nil {
			logger.Fatal("Failed to initialize", zap.Error(err))
		}
		defer components.Close()
		response, err = components.Finder.Find(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Find failed: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cli.WriteFindResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// postJSON posts body to url and decodes a 200 response into out.
func postJSON(url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	dir := fs.String("dir", "", "seed directory (default: data.dir from config)")
	dbPath := fs.String("db", "", "catalog database path (default: storage.database_path from config)")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := setup(*configPath, false)
	defer logger.Sync()
	if *dir != "" {
		cfg.Data.Dir = *dir
	}
	if *dbPath != "" {
		cfg.Storage.DatabasePath = *dbPath
	}

	summary, err := importCatalog(context.Background(), cfg.Data.Dir, cfg.Storage.DatabasePath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d brands and %d products (%d with embeddings) into %s (%s)\n",
		summary.Brands, summary.Products, summary.Embedded, cfg.Storage.DatabasePath, cli.FormatBytes(summary.DiskBytes))
}

// importSummary reports what importCatalog stored.
type importSummary struct {
	Brands    int
	Products  int
	Embedded  int
	DiskBytes int64
}

// importCatalog loads the seed files in dir and replaces the catalog stored at dbPath.
func importCatalog(ctx context.Context, dir, dbPath string, logger *zap.Logger) (*importSummary, error) {
	data, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, w := range data.Check() {
		logger.Warn("catalog check", zap.String("warning", w))
	}
	// Reject data the server would refuse to load.
	if _, err := catalog.NewMemoryStore(data); err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	if err := store.SaveCatalog(ctx, data); err != nil {
		return nil, err
	}

	size, err := storage.DatabaseSize(dbPath)
	if err != nil {
		logger.Warn("database size unavailable", zap.Error(err))
	}
	return &importSummary{
		Brands:    len(data.Brands),
		Products:  len(data.Products),
		Embedded:  data.EmbeddedCount(),
		DiskBytes: size,
	}, nil
}

func runEmbed() {
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	batchSize := fs.Int("batch", 32, "products per embedding batch")
	force := fs.Bool("force", false, "recompute embeddings that already exist")
	_ = fs.Parse(os.Args[2:])

	cfg, logger := setup(*configPath, false)
	defer logger.Sync()

	embedder, err := embedding.New(embeddingOptions(cfg), logger)
	if err != nil {
		logger.Fatal("Failed to create embedder", zap.Error(err))
	}
	if embedder == nil {
		fmt.Fprintln(os.Stderr, "Embedding provider is \"none\"; set embedding.provider to onnx or hash")
		os.Exit(1)
	}
	defer embedder.Close()

	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open catalog database", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	n, err := embedProducts(ctx, store, embedder, *batchSize, *force, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Embed failed after %d products: %v\n", n, err)
		os.Exit(1)
	}
	total, _ := store.CountProducts(ctx)
	embedded, _ := store.CountEmbeddedProducts(ctx)
	fmt.Printf("Embedded %d products (%d of %d have embeddings)\n", n, embedded, total)
}

// embedProducts computes embeddings of title and tags for stored products, batch by
// batch, and returns how many products were updated.
func embedProducts(ctx context.Context, store storage.Storage, embedder embedding.Embedder, batchSize int, force bool, logger *zap.Logger) (int, error) {
	if batchSize <= 0 {
		batchSize = 32
	}
	updated := 0
	for offset := 0; ; offset += batchSize {
		products, err := store.ListProducts(ctx, offset, batchSize)
		if err != nil {
			return updated, err
		}
		if len(products) == 0 {
			return updated, nil
		}

		var ids, texts []string
		for _, p := range products {
			if p.HasEmbedding() && !force {
				continue
			}
			ids = append(ids, p.ID)
			texts = append(texts, p.EmbeddingText())
		}
		if len(texts) > 0 {
			vectors, err := embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return updated, err
			}
			batch := make(map[string][]float32, len(ids))
			for i, id := range ids {
				batch[id] = vectors[i]
			}
			if err := store.UpdateEmbeddings(ctx, batch); err != nil {
				return updated, err
			}
			updated += len(ids)
			logger.Debug("embedded batch", zap.Int("offset", offset), zap.Int("count", len(ids)))
		}
		if len(products) < batchSize {
			return updated, nil
		}
	}
}

// Components holds initialized services.
type Components struct {
	Storage  storage.Storage
	Store    *catalog.MemoryStore
	Embedder embedding.Embedder
	Sizer    *sizing.Engine
	Finder   *search.Service
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

// loadCatalogData reads reference data from the configured source. The returned
// Storage is nil for the files source.
func loadCatalogData(ctx context.Context, cfg *config.Config) (*catalog.Data, storage.Storage, error) {
	if cfg.Data.Source != config.SourceSQLite {
		data, err := catalog.LoadDir(cfg.Data.Dir)
		return data, nil, err
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	data, err := store.LoadCatalog(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return data, store, nil
}

func embeddingOptions(cfg *config.Config) embedding.Options {
	return embedding.Options{
		Provider:   cfg.Embedding.Provider,
		ModelPath:  cfg.Embedding.ModelPath,
		OutputName: cfg.Embedding.OutputName,
		Dimensions: cfg.Embedding.Dimensions,
		MaxTokens:  cfg.Embedding.MaxTokens,
		CacheSize:  cfg.Embedding.CacheSize,
	}
}

func initializeComponents(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Components, error) {
	data, db, err := loadCatalogData(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	c := &Components{Storage: db}

	for _, w := range data.Check() {
		logger.Warn("catalog check", zap.String("warning", w))
	}
	store, err := catalog.NewMemoryStore(data)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Store = store
	metrics.SetCatalogSize(len(data.Products), data.EmbeddedCount())
	logger.Info("catalog loaded",
		zap.String("source", cfg.Data.Source),
		zap.Int("brands", len(data.Brands)),
		zap.Int("products", len(data.Products)),
		zap.Int("embedded_products", data.EmbeddedCount()))

	c.Embedder, err = embedding.New(embeddingOptions(cfg), logger)
	if err != nil {
		c.Close()
		return nil, err
	}

	ranker := ranking.NewRanker(&cfg.Search.Ranking, c.Embedder, logger)
	c.Finder = search.NewService(store, ranker, cfg.Search.Limit())
	c.Sizer = sizing.NewEngine(store, sizing.Config{
		ShoeRegion:      cfg.Sizing.ShoeRegion,
		DefaultLabel:    cfg.Sizing.DefaultLabel,
		AcceptThreshold: cfg.Sizing.AcceptThreshold,
	}, logger)
	return c, nil
}

func printUsage() {
	fmt.Println(`fitscout - Size suggestions and similar-product ranking

Usage:
  fitscout server [flags]          Start the HTTP server
  fitscout suggest [flags]         Suggest a size from measurements
  fitscout find [flags] <text>     Rank catalog products by similarity
  fitscout import [flags]          Import seed files into the catalog database
  fitscout embed [flags]           Compute product embeddings in the catalog database
  fitscout version                 Show version
  fitscout help                    Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/fitscout/config.yaml)
  --debug            Enable debug logging

Suggest Flags:
  --brand string     Brand id
  --category string  Category (shoes, clothing, accessories, ...)
  --fit string       slim, regular or loose (default: regular)
  --chest, --waist, --shoulder, --inseam, --hip float   Body measurements in cm
  --foot float       Foot length in mm
  --server string    Server URL; empty evaluates locally
  --output string    text or json

Find Flags:
  --url string       Product page URL cue
  --caption string   Image caption cue
  --server string    Server URL; empty ranks locally
  --output string    text or json

Import Flags:
  --dir string       Seed directory (brands.json, sizeCharts.json, products.json or products.xlsx)
  --db string        Catalog database path

Embed Flags:
  --batch int        Products per batch (default: 32)
  --force            Recompute existing embeddings

Examples:
  fitscout server
  fitscout suggest --brand nike --category shoes --foot 270
  fitscout suggest --brand nike --category clothing --chest 96 --waist 81 --fit slim
  fitscout find running shoes nike
  fitscout import --dir ./data
  fitscout embed`)
}
