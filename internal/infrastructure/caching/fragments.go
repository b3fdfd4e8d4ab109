// Package caching provides HTML fragment caching with dependency-based
// invalidation.
package caching

import (
	"sync"
	"time"
)

// FragmentVariant distinguishes cached renderings of the same document
// (e.g. default vs sanitized output).
type FragmentVariant string

const (
	VariantDefault   FragmentVariant = "default"
	VariantSanitized FragmentVariant = "sanitized"
)

// fragment is one cached HTML chunk with its dependency set.
type fragment struct {
	html      string
	cachedAt  time.Time
	dependsOn []string
}

// FragmentCache stores serialized HTML keyed by document ID and variant.
// Every entry records which documents it depends on so an update to any of
// them invalidates all derived fragments.
type FragmentCache struct {
	mu        sync.RWMutex
	fragments map[string]*fragment
	deps      map[string][]string
	ttl       time.Duration
}

// NewFragmentCache creates a fragment cache whose entries expire after ttl.
func NewFragmentCache(ttl time.Duration) *FragmentCache {
	return &FragmentCache{
		fragments: make(map[string]*fragment),
		deps:      make(map[string][]string),
		ttl:       ttl,
	}
}

func cacheKey(docID string, variant FragmentVariant) string {
	return docID + ":" + string(variant)
}

// Get retrieves cached HTML for a document variant.
func (fc *FragmentCache) Get(docID string, variant FragmentVariant) (string, bool) {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	entry, exists := fc.fragments[cacheKey(docID, variant)]
	if !exists {
		return "", false
	}
	if fc.ttl > 0 && time.Since(entry.cachedAt) > fc.ttl {
		return "", false
	}
	return entry.html, true
}

// Set stores HTML for a document variant together with its dependencies.
// Every entry implicitly depends on its own document, so invalidating that
// document always drops the entry even when no extra dependencies are given.
func (fc *FragmentCache) Set(docID string, variant FragmentVariant, html string, dependsOn []string) {
	key := cacheKey(docID, variant)

	deps := dependsOn
	if !containsString(deps, docID) {
		deps = append([]string{docID}, dependsOn...)
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.fragments[key] = &fragment{
		html:      html,
		cachedAt:  time.Now().UTC(),
		dependsOn: deps,
	}

	for _, depID := range deps {
		if !containsString(fc.deps[depID], key) {
			fc.deps[depID] = append(fc.deps[depID], key)
		}
	}
}

// Invalidate removes every cached fragment that depends on the given
// document and prunes the removed keys from the other documents' dependency
// lists.
func (fc *FragmentCache) Invalidate(docID string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	dependentKeys, exists := fc.deps[docID]
	if !exists {
		return
	}

	for _, key := range dependentKeys {
		entry, ok := fc.fragments[key]
		if !ok {
			continue
		}
		delete(fc.fragments, key)

		for _, otherID := range entry.dependsOn {
			if otherID == docID {
				continue
			}
			fc.deps[otherID] = removeString(fc.deps[otherID], key)
			if len(fc.deps[otherID]) == 0 {
				delete(fc.deps, otherID)
			}
		}
	}
	delete(fc.deps, docID)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, item := range list {
		if item != s {
			out = append(out, item)
		}
	}
	return out
}

// Purge removes entries older than the TTL. Called from the cleanup
// routine.
func (fc *FragmentCache) Purge() int {
	if fc.ttl <= 0 {
		return 0
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	removed := 0
	cutoff := time.Now().UTC().Add(-fc.ttl)
	for key, entry := range fc.fragments {
		if !entry.cachedAt.Before(cutoff) {
			continue
		}
		delete(fc.fragments, key)
		for _, depID := range entry.dependsOn {
			fc.deps[depID] = removeString(fc.deps[depID], key)
			if len(fc.deps[depID]) == 0 {
				delete(fc.deps, depID)
			}
		}
		removed++
	}
	return removed
}

// Len reports the number of cached fragments.
func (fc *FragmentCache) Len() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.fragments)
}

// StartCleanupRoutine purges expired fragments on the given interval until
// stop is closed.
func (fc *FragmentCache) StartCleanupRoutine(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fc.Purge()
			case <-stop:
				return
			}
		}
	}()
}
