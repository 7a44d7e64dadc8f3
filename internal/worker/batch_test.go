package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/satyalabs/trustmem/internal/model"
)

type fakeIngestor struct {
	mu     sync.Mutex
	texts  []string
	images []string
	fail   map[string]bool
}

func (f *fakeIngestor) LinkText(_ context.Context, claim string, _ int, _ string) (model.LinkResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[claim] {
		return model.LinkResult{}, errors.New("link failed")
	}
	f.texts = append(f.texts, claim)
	return model.LinkResult{NarrativeID: "NAR_aa000000"}, nil
}

func (f *fakeIngestor) LinkImage(_ context.Context, ref string, _ int, _ string) (model.LinkResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append(f.images, ref)
	return model.LinkResult{NarrativeID: "NAR_bb000000"}, nil
}

func TestProcessRecordsMixedTypes(t *testing.T) {
	ingestor := &fakeIngestor{}
	b := NewBatchProcessor(ingestor, 3)

	records := []ClaimRecord{
		{Claim: "first text claim in the batch", Year: 2024, Source: "twitter"},
		{Type: "text", Claim: "second text claim in the batch", Year: 2024, Source: "facebook"},
		{Type: "image", Path: "suspicious.jpg", Year: 2024, Source: "telegram"},
	}
	results := b.ProcessRecords(context.Background(), records)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if len(ingestor.texts) != 2 || len(ingestor.images) != 1 {
		t.Errorf("linked %d texts and %d images, want 2 and 1", len(ingestor.texts), len(ingestor.images))
	}
}

func TestProcessRecordsFailureDoesNotStopBatch(t *testing.T) {
	ingestor := &fakeIngestor{fail: map[string]bool{"the doomed claim of the batch": true}}
	b := NewBatchProcessor(ingestor, 2)

	records := []ClaimRecord{
		{Claim: "a claim that links just fine", Year: 2024, Source: "twitter"},
		{Claim: "the doomed claim of the batch", Year: 2024, Source: "twitter"},
		{Claim: "another claim that links fine", Year: 2024, Source: "twitter"},
	}
	results := b.ProcessRecords(context.Background(), records)

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("got %d failures, want 1", failures)
	}
	if len(ingestor.texts) != 2 {
		t.Errorf("linked %d claims, want 2", len(ingestor.texts))
	}
}

func TestProcessRecordsLargeBatch(t *testing.T) {
	ingestor := &fakeIngestor{}
	b := NewBatchProcessor(ingestor, 4)

	records := make([]ClaimRecord, 50)
	for i := range records {
		records[i] = ClaimRecord{
			Claim:  fmt.Sprintf("bulk claim number %d in a long batch", i),
			Year:   2024,
			Source: "twitter",
		}
	}

	done := make(chan []*IngestResult, 1)
	go func() { done <- b.ProcessRecords(context.Background(), records) }()

	select {
	case results := <-done:
		if len(results) != 50 {
			t.Fatalf("got %d results, want 50", len(results))
		}
		if len(ingestor.texts) != 50 {
			t.Errorf("linked %d claims, want 50", len(ingestor.texts))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("batch of 50 records did not complete")
	}
}

type blockingIngestor struct{}

func (blockingIngestor) LinkText(ctx context.Context, _ string, _ int, _ string) (model.LinkResult, error) {
	<-ctx.Done()
	return model.LinkResult{}, ctx.Err()
}

func (blockingIngestor) LinkImage(ctx context.Context, _ string, _ int, _ string) (model.LinkResult, error) {
	<-ctx.Done()
	return model.LinkResult{}, ctx.Err()
}

// The caller's deadline must reach the linking calls themselves, not just
// the surrounding setup.
func TestProcessRecordsHonorsCallerContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	b := NewBatchProcessor(blockingIngestor{}, 2)
	records := []ClaimRecord{
		{Claim: "a claim that will never finish linking", Year: 2024, Source: "twitter"},
		{Claim: "another claim that will never finish", Year: 2024, Source: "twitter"},
	}

	done := make(chan []*IngestResult, 1)
	go func() { done <- b.ProcessRecords(ctx, records) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("batch did not stop after context deadline")
	}
}

func TestProcessRecordsUnknownType(t *testing.T) {
	b := NewBatchProcessor(&fakeIngestor{}, 1)
	results := b.ProcessRecords(context.Background(), []ClaimRecord{
		{Type: "hologram", Year: 2024, Source: "twitter"},
	})
	if len(results) != 1 || results[0].GetError() == nil {
		t.Errorf("unknown type not rejected: %+v", results)
	}
}

func TestReadRecordsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.jsonl")
	content := `# seeded claims
{"claim": "a claim from the batch file", "year": 2023, "source": "twitter"}

{"type": "image", "path": "img.png", "year": 2024, "source": "telegram"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadRecordsFromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Claim != "a claim from the batch file" || records[0].Year != 2023 {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1].Type != "image" || records[1].Path != "img.png" {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestReadRecordsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadRecordsFromFile(path); err == nil {
		t.Error("malformed line accepted")
	}
}

func TestReadRecordsMissingFile(t *testing.T) {
	if _, err := ReadRecordsFromFile("/nonexistent/batch.jsonl"); err == nil {
		t.Error("missing file accepted")
	}
}
