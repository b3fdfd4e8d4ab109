package caching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFragmentCacheRoundTrip(t *testing.T) {
	fc := NewFragmentCache(time.Hour)

	fc.Set("doc1", VariantDefault, "<p>one</p>", []string{"doc1"})

	html, ok := fc.Get("doc1", VariantDefault)
	assert.True(t, ok)
	assert.Equal(t, "<p>one</p>", html)

	_, ok = fc.Get("doc1", VariantSanitized)
	assert.False(t, ok)
}

func TestFragmentCacheInvalidation(t *testing.T) {
	fc := NewFragmentCache(time.Hour)

	fc.Set("doc1", VariantDefault, "<p>one</p>", []string{"doc1"})
	fc.Set("doc1", VariantSanitized, "<p>one</p>", []string{"doc1"})
	fc.Set("doc2", VariantDefault, "<p>two</p>", []string{"doc2"})

	fc.Invalidate("doc1")

	_, ok := fc.Get("doc1", VariantDefault)
	assert.False(t, ok)
	_, ok = fc.Get("doc1", VariantSanitized)
	assert.False(t, ok)

	html, ok := fc.Get("doc2", VariantDefault)
	assert.True(t, ok)
	assert.Equal(t, "<p>two</p>", html)
}

func TestFragmentCacheInvalidationWithoutExplicitDeps(t *testing.T) {
	fc := NewFragmentCache(time.Hour)

	// Entries depend on their own document even when no deps are passed.
	fc.Set("doc1", VariantDefault, "<p>one</p>", nil)
	fc.Set("doc1", VariantSanitized, "<p>one</p>", nil)

	fc.Invalidate("doc1")

	_, ok := fc.Get("doc1", VariantDefault)
	assert.False(t, ok)
	_, ok = fc.Get("doc1", VariantSanitized)
	assert.False(t, ok)
	assert.Equal(t, 0, fc.Len())
}

func TestFragmentCacheInvalidationPrunesSharedDeps(t *testing.T) {
	fc := NewFragmentCache(time.Hour)

	fc.Set("composite", VariantDefault, "<article/>", []string{"doc1", "doc2"})
	fc.Invalidate("doc1")

	_, ok := fc.Get("composite", VariantDefault)
	assert.False(t, ok)

	// doc2's dependency list no longer references the removed entry, so a
	// later invalidation finds nothing to do.
	fc.Set("composite", VariantDefault, "<article v2/>", []string{"doc2"})
	fc.Invalidate("doc2")
	fc.Set("composite", VariantDefault, "<article v3/>", nil)
	fc.Invalidate("doc1")

	html, ok := fc.Get("composite", VariantDefault)
	assert.True(t, ok)
	assert.Equal(t, "<article v3/>", html)
}

func TestFragmentCacheTTLExpiry(t *testing.T) {
	fc := NewFragmentCache(time.Millisecond)

	fc.Set("doc1", VariantDefault, "<p>one</p>", []string{"doc1"})
	time.Sleep(5 * time.Millisecond)

	_, ok := fc.Get("doc1", VariantDefault)
	assert.False(t, ok)

	assert.Equal(t, 1, fc.Len())
	assert.Equal(t, 1, fc.Purge())
	assert.Equal(t, 0, fc.Len())
}
