package mcp

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru"
	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/internal/reader"
	"github.com/huangsam/irmetrics/schema"
)

// qrelsCache keeps recently parsed relevance files. Entries are keyed on the
// file's modification time, so an edited file is parsed again.
// Cached judgments are shared between calls and must not be modified.
type qrelsCache struct {
	cache *lru.Cache
}

func newQrelsCache(size int) *qrelsCache {
	cache, err := lru.New(size)
	if err != nil {
		// lru.New only fails on a non-positive size
		cache, _ = lru.New(defaultQrelsCacheSize)
	}
	return &qrelsCache{cache: cache}
}

// load returns the judgments in path, parsing the file on a cache miss.
func (qc *qrelsCache) load(path string, format schema.RelFormat, sep, topic string) (algo.Qrels, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rel file: %w", err)
	}
	key := fmt.Sprintf("%s|%s|%q|%s|%d", path, format, sep, topic, info.ModTime().UnixNano())
	if v, ok := qc.cache.Get(key); ok {
		return v.(algo.Qrels), nil
	}

	qrels, err := reader.LoadQrels(path, format, sep, topic)
	if err != nil {
		return nil, err
	}
	qc.cache.Add(key, qrels)
	return qrels, nil
}
