package scan

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrunoKrugel/c2pafinder/internal/config"
	"github.com/BrunoKrugel/c2pafinder/internal/model"
	"github.com/BrunoKrugel/c2pafinder/internal/provenance"
)

type fakeFetcher struct {
	mu     sync.Mutex
	images map[string][]byte
	calls  map[string]int
}

func (f *fakeFetcher) FetchImage(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[url]++
	data, ok := f.images[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func pngWith(typ string, payload string) []byte {
	out := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	out = binary.BigEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, typ...)
	out = append(out, payload...)
	return append(out, 0, 0, 0, 0)
}

func newTestManager(useCache bool) (*Manager, *fakeFetcher) {
	fetcher := &fakeFetcher{images: map[string][]byte{
		"https://x/ai.png":    pngWith("caBX", "trainedAlgorithmicMedia"),
		"https://x/photo.png": pngWith("tEXt", `c2pa "claim_generator": "Leica M11"`),
		"https://x/plain.png": pngWith("tEXt", "Software\x00GIMP"),
	}}
	cfg := &config.Config{
		Scan:   config.Scan{Concurrency: 2, MinDimension: 50, HistorySize: 8},
		Server: config.Server{UseCache: useCache},
	}
	return NewManager(cfg, fetcher, provenance.NewAnalyzer(nil), nil), fetcher
}

func TestAnalyzeURL(t *testing.T) {
	m, _ := newTestManager(false)
	ctx := context.Background()

	ai := m.AnalyzeURL(ctx, "https://x/ai.png")
	assert.True(t, ai.HasProvenance)
	assert.Equal(t, model.AIYes, ai.IsAIGenerated)

	photo := m.AnalyzeURL(ctx, "https://x/photo.png")
	assert.Equal(t, model.StatusAuthentic, photo.Status())
	require.NotNil(t, photo.Metadata)
	assert.Equal(t, "Leica M11", photo.Metadata.Software)

	missing := m.AnalyzeURL(ctx, "https://x/missing.png")
	assert.True(t, missing.Failed())
	assert.False(t, missing.HasProvenance)
	assert.Equal(t, model.AIUnknown, missing.IsAIGenerated)
	assert.Equal(t, model.StatusUnknown, missing.Status())
}

func TestAnalyzeURLUsesCache(t *testing.T) {
	m, fetcher := newTestManager(true)
	ctx := context.Background()

	first := m.AnalyzeURL(ctx, "https://x/ai.png")
	second := m.AnalyzeURL(ctx, "https://x/ai.png")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.calls["https://x/ai.png"])

	m.AnalyzeURL(ctx, "https://x/missing.png")
	m.AnalyzeURL(ctx, "https://x/missing.png")
	assert.Equal(t, 2, fetcher.calls["https://x/missing.png"])
}

func TestScan(t *testing.T) {
	m, fetcher := newTestManager(false)

	report := m.Scan(context.Background(), []model.PageImage{
		{URL: "https://x/ai.png", Width: 512, Height: 512},
		{URL: "https://x/icon.png", Width: 16, Height: 16},
		{URL: "https://x/photo.png"},
		{URL: "https://x/ai.png", Width: 512, Height: 512},
		{URL: "https://x/plain.png", Width: 800, Height: 600},
		{URL: "https://x/missing.png", Width: 100, Height: 100},
		{URL: ""},
	})

	require.Len(t, report.Results, 4)
	assert.Equal(t, "https://x/ai.png", report.Results[0].URL)
	assert.Equal(t, "https://x/photo.png", report.Results[1].URL)
	assert.Equal(t, "https://x/plain.png", report.Results[2].URL)
	assert.Equal(t, "https://x/missing.png", report.Results[3].URL)
	assert.Zero(t, fetcher.calls["https://x/icon.png"])

	assert.Equal(t, model.ScanSummary{
		Total:       7,
		Analyzed:    3,
		Skipped:     3,
		Failed:      1,
		Provenance:  2,
		AIGenerated: 1,
		Authentic:   1,
	}, report.Summary)

	assert.Len(t, FilterResults(report.Results, FilterAI), 1)
	assert.Len(t, FilterResults(report.Results, FilterAuthentic), 1)
	assert.Len(t, FilterResults(report.Results, FilterAll), 4)
}

func TestKeep(t *testing.T) {
	m, _ := newTestManager(false)
	assert.True(t, m.Keep(model.PageImage{URL: "u", Width: 50, Height: 50}))
	assert.True(t, m.Keep(model.PageImage{URL: "u"}))
	assert.False(t, m.Keep(model.PageImage{URL: "u", Width: 49, Height: 400}))
	assert.False(t, m.Keep(model.PageImage{URL: "u", Width: 400, Height: 49}))
	assert.False(t, m.Keep(model.PageImage{Width: 400, Height: 400}))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("authentic")
	require.NoError(t, err)
	assert.Equal(t, FilterAuthentic, f)

	_, err = ParseFilter("fake")
	assert.Error(t, err)
}
