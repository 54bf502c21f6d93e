package ingest

import (
	"testing"
	"time"

	"github.com/spec-kit/assist-dashboard/internal/domain"
)

func TestTableCacheTTL(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	cache := newTableCache(15*time.Second, clock)

	table := domain.Table{Columns: []string{"Status"}, Rows: []domain.Row{{"Status": "Aberta"}}}
	cache.put("key", table)

	if _, ok := cache.get("key"); !ok {
		t.Fatal("expected a hit right after put")
	}

	now = now.Add(14 * time.Second)
	if _, ok := cache.get("key"); !ok {
		t.Fatal("expected a hit inside the TTL window")
	}

	now = now.Add(2 * time.Second)
	if _, ok := cache.get("key"); ok {
		t.Fatal("expected a miss after the TTL expired")
	}
	if cache.len() != 0 {
		t.Fatalf("expected the expired entry to be evicted, have %d", cache.len())
	}
}

func TestTableCacheDistinctKeys(t *testing.T) {
	cache := newTableCache(15*time.Second, nil)
	cache.put("a", domain.Table{Columns: []string{"Status"}})
	if _, ok := cache.get("b"); ok {
		t.Fatal("expected a miss for a different content hash")
	}
}
