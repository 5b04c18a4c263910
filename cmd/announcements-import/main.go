// announcements-import - разовая загрузка объявлений пачками.
//
// Источники:
//
//	-source file   -path dump.ndjson   NDJSON-файл (одна запись CreateInput на строку)
//	-source s3     -key dumps/x.ndjson объект в MinIO/S3 (секция s3 конфига)
//	-source legacy                     коллекции jobs/results/admitcards
//
// Итог (importer.Report по всем пачкам) печатается в stdout как JSON.
// Флаг -encrypt печатает значение для fetcher.token_enc и завершает работу.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pribylovaa/go-govjobs/internal/config"
	"github.com/pribylovaa/go-govjobs/internal/importer"
	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	"github.com/pribylovaa/go-govjobs/internal/secret"
	"github.com/pribylovaa/go-govjobs/internal/service"
	gjmongo "github.com/pribylovaa/go-govjobs/internal/storage/mongo"
)

const (
	sourceFile   = "file"
	sourceS3     = "s3"
	sourceLegacy = "legacy"
)

var errUsage = errors.New("usage")

type options struct {
	config  string
	source  string
	path    string
	key     string
	mode    string
	batch   int
	encrypt string
}

func main() {
	var opts options
	flag.StringVar(&opts.config, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.StringVar(&opts.source, "source", sourceFile, "file | s3 | legacy")
	flag.StringVar(&opts.path, "path", "", "NDJSON file for -source file")
	flag.StringVar(&opts.key, "key", "", "object key for -source s3")
	flag.StringVar(&opts.mode, "mode", importer.ModeUpsert, "insert | upsert")
	flag.IntVar(&opts.batch, "batch", 0, "batch size (default: limits.batch)")
	flag.StringVar(&opts.encrypt, "encrypt", "", "encrypt a value with secret.passphrase and exit")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = log.Into(ctx, logger)

	if err := run(ctx, opts, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			os.Exit(2)
		}
		logger.Error("import_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}

	if opts.encrypt != "" {
		return encrypt(cfg, opts.encrypt, out)
	}

	if opts.mode != importer.ModeInsert && opts.mode != importer.ModeUpsert {
		return fmt.Errorf("%w: -mode must be insert or upsert", errUsage)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := gjmongo.New(dbCtx, cfg)
	dbCancel()
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	items, lineErrs, err := load(ctx, cfg, store, opts)
	if err != nil {
		return err
	}

	log.From(ctx).Info("import_loaded",
		slog.String("source", opts.source),
		slog.Int("items", len(items)),
		slog.Int("line_errors", len(lineErrs)),
	)

	batch := opts.batch
	if batch <= 0 || (cfg.Limits.Batch > 0 && batch > cfg.Limits.Batch) {
		batch = cfg.Limits.Batch
	}

	svc := service.New(store, nil, *cfg)

	report, err := importer.New(svc, batch).Run(ctx, items, opts.mode)
	if err != nil {
		return err
	}
	report.LineErrors = lineErrs

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(report)
}

func load(ctx context.Context, cfg *config.Config, store *gjmongo.Mongo, opts options) ([]models.CreateInput, []importer.LineError, error) {
	switch opts.source {
	case sourceFile:
		if opts.path == "" {
			return nil, nil, fmt.Errorf("%w: -path is required for -source file", errUsage)
		}

		f, err := os.Open(opts.path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		return importer.ReadNDJSON(f)

	case sourceS3:
		if opts.key == "" {
			return nil, nil, fmt.Errorf("%w: -key is required for -source s3", errUsage)
		}
		if !cfg.S3.Enabled() {
			return nil, nil, fmt.Errorf("%w: s3 endpoint is not configured", errUsage)
		}

		src, err := importer.NewS3Source(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}

		rc, err := src.Open(ctx, opts.key)
		if err != nil {
			return nil, nil, err
		}
		defer rc.Close()

		return importer.ReadNDJSON(rc)

	case sourceLegacy:
		items, err := importer.FromLegacy(ctx, store)
		return items, nil, err

	default:
		return nil, nil, fmt.Errorf("%w: unknown -source %q", errUsage, opts.source)
	}
}

func encrypt(cfg *config.Config, plain string, out io.Writer) error {
	box, err := secret.New(cfg.Secret.Passphrase)
	if err != nil {
		return err
	}

	payload, err := box.Encrypt(plain)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, payload)
	return err
}
