package scan

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BrunoKrugel/c2pafinder/internal/model"
)

func TestResultCacheRing(t *testing.T) {
	c := NewResultCache(3)
	assert.Empty(t, c.Recent())

	for i := 0; i < 5; i++ {
		c.Add(model.ImageResult{URL: fmt.Sprintf("u%d", i)})
	}

	recent := c.Recent()
	assert.Len(t, recent, 3)
	assert.Equal(t, "u4", recent[0].URL)
	assert.Equal(t, "u2", recent[2].URL)

	_, ok := c.Lookup("u1")
	assert.False(t, ok)
	_, ok = c.Lookup("u3")
	assert.True(t, ok)
}

func TestResultCacheLookupSkipsFailures(t *testing.T) {
	c := NewResultCache(4)
	c.Add(model.ImageResult{URL: "a", AnalysisResult: model.AnalysisResult{HasProvenance: true}})
	c.Add(model.FailedResult("a", errors.New("boom")))

	r, ok := c.Lookup("a")
	assert.True(t, ok)
	assert.True(t, r.HasProvenance)

	_, ok = c.Lookup("b")
	assert.False(t, ok)
}
