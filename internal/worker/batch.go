package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/satyalabs/trustmem/internal/model"
)

// Ingestor links one claim or image into the trust memory
type Ingestor interface {
	LinkText(ctx context.Context, claim string, year int, source string) (model.LinkResult, error)
	LinkImage(ctx context.Context, ref string, year int, source string) (model.LinkResult, error)
}

// ClaimRecord is one line of a JSONL batch file. Type defaults to "text";
// text records carry Claim, image records carry Path.
type ClaimRecord struct {
	Type   string `json:"type,omitempty"`
	Claim  string `json:"claim,omitempty"`
	Path   string `json:"path,omitempty"`
	Year   int    `json:"year"`
	Source string `json:"source"`
}

// IngestJob links a single record
type IngestJob struct {
	Record   ClaimRecord
	Ingestor Ingestor
}

// Execute runs the linking for the job's record
func (j *IngestJob) Execute(ctx context.Context) Result {
	var link model.LinkResult
	var err error

	switch j.Record.Type {
	case "", "text":
		link, err = j.Ingestor.LinkText(ctx, j.Record.Claim, j.Record.Year, j.Record.Source)
	case "image":
		link, err = j.Ingestor.LinkImage(ctx, j.Record.Path, j.Record.Year, j.Record.Source)
	default:
		err = fmt.Errorf("unknown record type: %s", j.Record.Type)
	}

	return &IngestResult{Record: j.Record, Link: link, Error: err}
}

// IngestResult is the outcome of linking one record
type IngestResult struct {
	Record ClaimRecord
	Link   model.LinkResult
	Error  error
}

// GetError returns the linking error, if any
func (r *IngestResult) GetError() error {
	return r.Error
}

// BatchProcessor ingests many records concurrently
type BatchProcessor struct {
	ingestor    Ingestor
	concurrency int
}

// NewBatchProcessor creates a batch processor over the ingestor
func NewBatchProcessor(ingestor Ingestor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		ingestor:    ingestor,
		concurrency: concurrency,
	}
}

// ProcessRecords links all records using the worker pool. One record failing
// does not stop the batch; failures come back in the results.
func (b *BatchProcessor) ProcessRecords(ctx context.Context, records []ClaimRecord) []*IngestResult {
	if len(records) == 0 {
		return []*IngestResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, record := range records {
		pool.Submit(&IngestJob{Record: record, Ingestor: b.ingestor})
	}

	results := pool.Wait()

	ingestResults := make([]*IngestResult, len(results))
	for i, result := range results {
		ingestResults[i] = result.(*IngestResult)
	}
	return ingestResults
}

// ProcessFile reads a JSONL batch file and links every record
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*IngestResult, error) {
	records, err := ReadRecordsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	return b.ProcessRecords(ctx, records), nil
}

// ReadRecordsFromFile parses a JSONL batch file, one record per line.
// Blank lines and #-comments are skipped; a malformed line is an error.
func ReadRecordsFromFile(filePath string) ([]ClaimRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var records []ClaimRecord
	lineNo := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var record ClaimRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return records, nil
}
