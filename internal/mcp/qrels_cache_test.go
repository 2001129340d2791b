package mcp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/irmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQrelsCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rel.txt")
	require.NoError(t, os.WriteFile(path, []byte("a L1\n"), 0o644))

	qc := newQrelsCache(2)
	qrels, err := qc.load(path, schema.NTCIRRel, " ", "")
	require.NoError(t, err)
	assert.Equal(t, 1, qrels["a"])
	assert.Equal(t, 1, qc.cache.Len())

	// Hit
	_, err = qc.load(path, schema.NTCIRRel, " ", "")
	require.NoError(t, err)
	assert.Equal(t, 1, qc.cache.Len())

	// An edited file is parsed again
	require.NoError(t, os.WriteFile(path, []byte("a L2\nb L1\n"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	qrels, err = qc.load(path, schema.NTCIRRel, " ", "")
	require.NoError(t, err)
	assert.Equal(t, 2, qrels["a"])
	assert.Len(t, qrels, 2)
	assert.Equal(t, 2, qc.cache.Len())
}

func TestQrelsCacheErrors(t *testing.T) {
	qc := newQrelsCache(0)
	require.NotNil(t, qc.cache)

	_, err := qc.load(filepath.Join(t.TempDir(), "missing.txt"), schema.NTCIRRel, " ", "")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("a Lx\n"), 0o644))
	_, err = qc.load(path, schema.NTCIRRel, " ", "")
	assert.Error(t, err)
	assert.Equal(t, 0, qc.cache.Len())
}
