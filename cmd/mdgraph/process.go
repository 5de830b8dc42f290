package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inful/mdgraph/internal/config"
	"github.com/inful/mdgraph/internal/engine"
	"github.com/inful/mdgraph/internal/engine/markdown"
	"github.com/inful/mdgraph/internal/handler"
	"github.com/inful/mdgraph/internal/linkstore"
	"github.com/inful/mdgraph/internal/logfields"
	"github.com/inful/mdgraph/internal/metrics"
	"github.com/inful/mdgraph/internal/model"
	"github.com/inful/mdgraph/internal/transform"
)

// processor bundles the long-lived pieces shared by every run: the walker
// (with its dispatch-plan cache), the markup engine, metrics, and the
// optional link store.
type processor struct {
	cfg      *config.Config
	walker   *handler.Walker
	eng      engine.Engine
	recorder metrics.Recorder
	store    *linkstore.Store
}

func runProcess(cfg *config.Config) error {
	rec := metrics.Recorder(metrics.NoopRecorder{})
	if CLI.Process.MetricsListen != "" {
		registry := prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(registry)
		go serveMetrics(CLI.Process.MetricsListen, registry)
	}

	p := &processor{
		cfg:      cfg,
		walker:   handler.New(handler.WithRecorder(rec)),
		eng:      markdown.New(),
		recorder: rec,
	}

	if cfg.LinkDB != "" {
		store, err := linkstore.Open(cfg.LinkDB)
		if err != nil {
			return err
		}
		defer store.Close()
		p.store = store
	}

	if err := p.runOnce(context.Background()); err != nil {
		return err
	}
	if CLI.Process.Watch {
		return p.watch()
	}
	return nil
}

// runOnce processes every page model under the input directory.
func (p *processor) runOnce(ctx context.Context) error {
	runID := uuid.NewString()
	start := time.Now()

	files, err := collectModelFiles(p.cfg.Input)
	if err != nil {
		return err
	}

	for _, rel := range files {
		if err := p.processFile(ctx, runID, rel); err != nil {
			slog.Error("Document failed", logfields.RunID(runID), logfields.File(rel), logfields.Error(err))
			return err
		}
	}

	slog.Info("Processing run complete",
		logfields.RunID(runID),
		logfields.Documents(len(files)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

func (p *processor) processFile(ctx context.Context, runID, rel string) error {
	start := time.Now()

	page, err := model.Load(filepath.Join(p.cfg.Input, rel))
	if err != nil {
		p.recorder.IncDocumentOutcome(metrics.OutcomeFailed)
		return err
	}

	tctx := transform.NewContext(p.eng, engine.FileContext{Path: rel})
	tctx.Disabled = CLI.Process.DisableMarkup
	tctx.EnablePlaceholder = p.cfg.Placeholder.Enabled
	tctx.PlaceholderContent = p.cfg.Placeholder.Content
	tctx.Metrics = p.recorder

	if _, err := p.walker.Handle(page, tctx); err != nil {
		p.recorder.IncDocumentOutcome(metrics.OutcomeFailed)
		return err
	}

	if err := model.Save(filepath.Join(p.cfg.Output, rel), page); err != nil {
		p.recorder.IncDocumentOutcome(metrics.OutcomeFailed)
		return err
	}

	if p.store != nil {
		if err := p.store.RecordRun(ctx, runID, tctx); err != nil {
			p.recorder.IncDocumentOutcome(metrics.OutcomeFailed)
			return err
		}
	}

	p.recorder.IncDocumentOutcome(metrics.OutcomeSuccess)
	p.recorder.ObserveDocumentDuration(time.Since(start))

	slog.Debug("Document processed",
		logfields.RunID(runID),
		logfields.File(rel),
		logfields.UID(page.UID),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

// collectModelFiles returns input-relative YAML paths in lexical order, so a
// run over a fixed tree is deterministic.
func collectModelFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func serveMetrics(addr string, registry *prom.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Metrics server stopped", logfields.Error(err))
	}
}

// waitForShutdown blocks until SIGINT/SIGTERM.
func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
