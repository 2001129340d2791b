// Package reader parses relevance assessment files and ranked lists.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/hscells/trecresults"
	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/schema"
)

// Errors returned while parsing input files. Each is wrapped with the line number.
var (
	ErrMalformedLine     = errors.New("invalid line")
	ErrInvalidGrade      = errors.New("invalid grade")
	ErrDuplicateJudgment = errors.New("different grades for the same document")
	ErrAlreadyLabelled   = errors.New("already labelled")
	ErrUnknownTopic      = errors.New("topic not found in the relevance assessments")
)

var gradePattern = regexp.MustCompile(`^L([0-9]+)$`)

// ParseGrade parses the L<integer> relevance token.
func ParseGrade(token string) (int, error) {
	m := gradePattern.FindStringSubmatch(token)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, token)
	}
	return strconv.Atoi(m[1])
}

// ReadRelFile parses an NTCIR relevance file: one "<id><sep>L<level>" per line.
// Blank lines are skipped.
func ReadRelFile(r io.Reader, sep string) (algo.Qrels, error) {
	qrels := algo.Qrels{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := contract.SplitFields(scanner.Text(), sep)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("rel file line %d: %w", lineNo, ErrMalformedLine)
		}
		id := fields[0]
		if _, ok := qrels[id]; ok {
			return nil, fmt.Errorf("rel file line %d: %w (%s)", lineNo, ErrDuplicateJudgment, id)
		}
		level, err := ParseGrade(fields[1])
		if err != nil {
			return nil, fmt.Errorf("rel file line %d: %w", lineNo, err)
		}
		qrels[id] = level
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rel file: %w", err)
	}
	return qrels, nil
}

// ReadTRECQrels reads the judgments of one topic from a TREC qrels file
// ("topic iteration docid relevance"). Negative relevance is treated as 0.
// Blank lines are skipped and a document judged twice within the topic is an error.
func ReadTRECQrels(r io.Reader, topic string) (algo.Qrels, error) {
	qrels := algo.Qrels{}
	found := false
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(strings.Fields(line)) != 4 {
			return nil, fmt.Errorf("qrels line %d: %w", lineNo, ErrMalformedLine)
		}
		rel, err := trecresults.QrelFromLine(line)
		if err != nil {
			return nil, fmt.Errorf("qrels line %d: %w: %v", lineNo, ErrMalformedLine, err)
		}
		if rel.Topic != topic {
			continue
		}
		found = true
		if _, ok := qrels[rel.DocId]; ok {
			return nil, fmt.Errorf("qrels line %d: %w (%s)", lineNo, ErrDuplicateJudgment, rel.DocId)
		}
		qrels[rel.DocId] = max(int(rel.Score), 0)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trec qrels: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
	}
	return qrels, nil
}

// ReadRankedList parses an unlabelled ranked list: one document ID per line.
// Blank lines are skipped. A line that already carries a second field is rejected.
func ReadRankedList(r io.Reader, sep string) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := contract.SplitFields(scanner.Text(), sep)
		switch len(fields) {
		case 0:
			continue
		case 1:
			ids = append(ids, fields[0])
		case 2:
			return nil, fmt.Errorf("ranked list line %d: %w", lineNo, ErrAlreadyLabelled)
		default:
			return nil, fmt.Errorf("ranked list line %d: %w", lineNo, ErrMalformedLine)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranked list: %w", err)
	}
	return ids, nil
}

// ReadLabelledRankedList parses "<id>[<sep>L<level>]" lines. A missing label
// marks the document as unjudged. Fields after the label are ignored.
func ReadLabelledRankedList(r io.Reader, sep string) (algo.RankedList, error) {
	var list algo.RankedList
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := contract.SplitFields(scanner.Text(), sep)
		if len(fields) == 0 {
			continue
		}
		doc := algo.Doc{ID: fields[0], Grade: algo.Unjudged}
		if len(fields) > 1 && fields[1] != "" {
			level, err := ParseGrade(fields[1])
			if err != nil {
				return nil, fmt.Errorf("labelled list line %d: %w", lineNo, err)
			}
			doc.Grade = algo.NewGrade(level)
		}
		list = append(list, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labelled list: %w", err)
	}
	return list, nil
}

// OpenInput opens path for reading, or returns stdin when path is empty or "-".
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// LoadQrels reads the relevance file at path in the given format.
// The topic only applies to TREC files.
func LoadQrels(path string, format schema.RelFormat, sep, topic string) (algo.Qrels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case schema.NTCIRRel, "":
		return ReadRelFile(f, sep)
	case schema.TRECRel:
		return ReadTRECQrels(f, topic)
	default:
		return nil, fmt.Errorf("unknown rel file format %q", format)
	}
}
