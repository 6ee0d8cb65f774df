// Package scan analyzes the images found on a page: it fetches each one,
// runs provenance analysis, caches recent results and summarizes them.
package scan

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/BrunoKrugel/c2pafinder/internal/config"
	"github.com/BrunoKrugel/c2pafinder/internal/model"
	"github.com/BrunoKrugel/c2pafinder/internal/provenance"
)

// Fetcher acquires the complete bytes of one image
type Fetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Manager fetches and analyzes images and keeps recent results
type Manager struct {
	Cache    *ResultCache
	Fetcher  Fetcher
	Analyzer *provenance.Analyzer

	concurrency  int
	minDimension int
	useCache     bool
	log          *slog.Logger
}

func NewManager(cfg *config.Config, fetcher Fetcher, analyzer *provenance.Analyzer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		Cache:        NewResultCache(cfg.Scan.HistorySize),
		Fetcher:      fetcher,
		Analyzer:     analyzer,
		concurrency:  max(cfg.Scan.Concurrency, 1),
		minDimension: cfg.Scan.MinDimension,
		useCache:     cfg.Server.UseCache,
		log:          logger,
	}
}

// AnalyzeURL fetches and analyzes one image. A fetch failure yields an
// error-shaped result with an unknown AI verdict.
func (m *Manager) AnalyzeURL(ctx context.Context, url string) model.ImageResult {
	if m.useCache {
		if r, ok := m.Cache.Lookup(url); ok {
			m.log.Debug("cache hit", "url", url)
			return r
		}
	}

	data, err := m.Fetcher.FetchImage(ctx, url)
	if err != nil {
		m.log.Warn("fetch failed", "url", url, "err", err)
		r := model.FailedResult(url, err)
		m.Cache.Add(r)
		return r
	}

	r := model.ImageResult{URL: url, AnalysisResult: m.Analyzer.Analyze(data)}
	m.log.Info("analyzed",
		"url", url,
		"bytes", len(data),
		"format", provenance.DetectFormat(data),
		"status", r.Status())
	m.Cache.Add(r)
	return r
}

// Keep reports whether img is large enough to be worth analyzing.
// A zero dimension is unknown and does not exclude the image.
func (m *Manager) Keep(img model.PageImage) bool {
	if img.URL == "" {
		return false
	}
	if img.Width > 0 && img.Width < m.minDimension {
		return false
	}
	if img.Height > 0 && img.Height < m.minDimension {
		return false
	}
	return true
}

// Scan analyzes the qualifying images concurrently. Results keep the order
// of first appearance; duplicate URLs are analyzed once.
func (m *Manager) Scan(ctx context.Context, images []model.PageImage) model.ScanReport {
	urls := make([]string, 0, len(images))
	seen := make(map[string]bool, len(images))
	for _, img := range images {
		if !m.Keep(img) || seen[img.URL] {
			continue
		}
		seen[img.URL] = true
		urls = append(urls, img.URL)
	}

	results := make([]model.ImageResult, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, url := range urls {
		g.Go(func() error {
			results[i] = m.AnalyzeURL(gctx, url)
			return nil
		})
	}
	_ = g.Wait()

	m.log.Info("scan finished", "images", len(images), "analyzed", len(urls))
	return model.ScanReport{
		Results: results,
		Summary: Summarize(results, len(images)-len(urls)),
	}
}

// Summarize counts verdicts over results
func Summarize(results []model.ImageResult, skipped int) model.ScanSummary {
	s := model.ScanSummary{
		Total:   len(results) + skipped,
		Skipped: skipped,
	}
	for _, r := range results {
		if r.Failed() {
			s.Failed++
			continue
		}
		s.Analyzed++
		if r.HasProvenance {
			s.Provenance++
		}
		switch r.Status() {
		case model.StatusAIGenerated:
			s.AIGenerated++
		case model.StatusAuthentic:
			s.Authentic++
		}
	}
	return s
}
