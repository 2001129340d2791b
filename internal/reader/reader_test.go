package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrade(t *testing.T) {
	tests := []struct {
		token    string
		expected int
		wantErr  bool
	}{
		{"L0", 0, false},
		{"L3", 3, false},
		{"L12", 12, false},
		{"3", 0, true},
		{"L-1", 0, true},
		{"l2", 0, true},
		{"L2x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseGrade(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGrade)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadRelFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		sep      string
		expected algo.Qrels
		wantErr  error
		errMsg   string
	}{
		{
			name:     "space separated",
			content:  "dummy01 L3\ndummy04 L2\n\ndummy11 L0\n",
			sep:      " ",
			expected: algo.Qrels{"dummy01": 3, "dummy04": 2, "dummy11": 0},
		},
		{
			name:     "custom separator",
			content:  "d1,L1\nd2,L0\n",
			sep:      ",",
			expected: algo.Qrels{"d1": 1, "d2": 0},
		},
		{
			name:    "three fields",
			content: "d1 L1\nd2 L0 extra\n",
			sep:     " ",
			wantErr: ErrMalformedLine,
			errMsg:  "line 2",
		},
		{
			name:    "bad grade",
			content: "d1 2\n",
			sep:     " ",
			wantErr: ErrInvalidGrade,
			errMsg:  "line 1",
		},
		{
			name:    "duplicate document",
			content: "d1 L1\nd2 L0\nd1 L1\n",
			sep:     " ",
			wantErr: ErrDuplicateJudgment,
			errMsg:  "line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qrels, err := ReadRelFile(strings.NewReader(tt.content), tt.sep)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, qrels)
		})
	}
}

func TestReadRankedList(t *testing.T) {
	ids, err := ReadRankedList(strings.NewReader("dummy11\ndummy01\n\n dummy12 \ndummy04\n"), " ")
	require.NoError(t, err)
	assert.Equal(t, []string{"dummy11", "dummy01", "dummy12", "dummy04"}, ids)

	_, err = ReadRankedList(strings.NewReader("a\nb L1\n"), " ")
	assert.ErrorIs(t, err, ErrAlreadyLabelled)
	assert.Contains(t, err.Error(), "line 2")

	_, err = ReadRankedList(strings.NewReader("a b c\n"), " ")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestReadLabelledRankedList(t *testing.T) {
	content := "dummy11 L0\ndummy01 L3\ndummy12\ndummy04 L2 0.93\n"
	list, err := ReadLabelledRankedList(strings.NewReader(content), " ")
	require.NoError(t, err)
	assert.Equal(t, algo.RankedList{
		{ID: "dummy11", Grade: algo.NewGrade(0)},
		{ID: "dummy01", Grade: algo.NewGrade(3)},
		{ID: "dummy12", Grade: algo.Unjudged},
		{ID: "dummy04", Grade: algo.NewGrade(2)},
	}, list)

	_, err = ReadLabelledRankedList(strings.NewReader("a L1\nb Lx\n"), " ")
	assert.ErrorIs(t, err, ErrInvalidGrade)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadQrels(t *testing.T) {
	dir := t.TempDir()

	ntcir := filepath.Join(dir, "rel.txt")
	require.NoError(t, os.WriteFile(ntcir, []byte("a L1\nb L0\n"), 0o644))
	qrels, err := LoadQrels(ntcir, schema.NTCIRRel, " ", "")
	require.NoError(t, err)
	assert.Equal(t, algo.Qrels{"a": 1, "b": 0}, qrels)

	_, err = LoadQrels(filepath.Join(dir, "missing.txt"), schema.NTCIRRel, " ", "")
	assert.Error(t, err)

	_, err = LoadQrels(ntcir, schema.RelFormat("xml"), " ", "")
	assert.Error(t, err)
}

func TestReadTRECQrels(t *testing.T) {
	content := "401 0 doc1 1\n401 0 doc2 0\n401 0 doc3 2\n402 0 doc9 1\n"

	qrels, err := ReadTRECQrels(strings.NewReader(content), "401")
	require.NoError(t, err)
	assert.Equal(t, algo.Qrels{"doc1": 1, "doc2": 0, "doc3": 2}, qrels)

	_, err = ReadTRECQrels(strings.NewReader(content), "999")
	assert.ErrorIs(t, err, ErrUnknownTopic)
}

func TestReadTRECQrelsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		topic   string
		wantErr error
		wantMsg string
	}{
		{"duplicate in topic", "401 0 d1 2\n401 0 d1 0\n401 0 d2 1\n", "401", ErrDuplicateJudgment, "qrels line 2"},
		{"same grade twice", "401 0 d1 1\n401 0 d1 1\n", "401", ErrDuplicateJudgment, "qrels line 2"},
		{"malformed line", "401 0 d1\n", "401", ErrMalformedLine, "qrels line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTRECQrels(strings.NewReader(tt.content), tt.topic)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestReadTRECQrelsIgnoresOtherTopics(t *testing.T) {
	content := "401 0 d1 1\n\n402 0 d1 2\n402 0 d1 0\n401 0 d2 -1\n"

	qrels, err := ReadTRECQrels(strings.NewReader(content), "401")
	require.NoError(t, err)
	assert.Equal(t, algo.Qrels{"d1": 1, "d2": 0}, qrels)
}
