package idgen

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[a-z0-9]{6}$`)

func TestShortID_Format(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := ShortID()
		if !shortIDPattern.MatchString(id) {
			t.Fatalf("unexpected short id %q", id)
		}
	}
}

func TestUploaderID_Format(t *testing.T) {
	id := UploaderID()
	if !strings.HasPrefix(id, UploaderPrefix) {
		t.Fatalf("uploader id %q missing prefix", id)
	}
	if !shortIDPattern.MatchString(strings.TrimPrefix(id, UploaderPrefix)) {
		t.Fatalf("unexpected uploader id %q", id)
	}
}

func TestShortIDGenerator(t *testing.T) {
	if id := (ShortIDGenerator{}).NewFileID(); !shortIDPattern.MatchString(id) {
		t.Fatalf("unexpected file id %q", id)
	}
}

func TestAtomicSequence_StartsAtOne(t *testing.T) {
	seq := NewAtomicSequence()

	id1, err := seq.Next(context.Background())
	if err != nil {
		t.Fatalf("Failed to generate ID: %v", err)
	}
	id2, _ := seq.Next(context.Background())

	if id1 != 1 {
		t.Errorf("first id = %d, expected 1", id1)
	}
	if id2 <= id1 {
		t.Errorf("IDs must be monotonic increasing")
	}
}

func TestAtomicSequence_Concurrency(t *testing.T) {
	seq := NewAtomicSequence()
	numGoroutines := 50
	numIDs := 1000
	ids := make(chan int64, numGoroutines*numIDs)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			for j := 0; j < numIDs; j++ {
				id, _ := seq.Next(context.Background())
				ids <- id
			}
		}()
	}

	unique := make(map[int64]bool)
	expected := numGoroutines * numIDs
	for i := 0; i < expected; i++ {
		select {
		case id := <-ids:
			if unique[id] {
				t.Errorf("Duplicate ID generated: %d", id)
			}
			unique[id] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("Timeout waiting for IDs")
		}
	}
	for id := int64(1); id <= int64(expected); id++ {
		if !unique[id] {
			t.Fatalf("sequence skipped %d", id)
		}
	}
}

func TestNewRedisSequence_NilClient(t *testing.T) {
	if _, err := NewRedisSequence(nil, "seq"); err != ErrNilRedisClient {
		t.Errorf("Expected ErrNilRedisClient, got %v", err)
	}
}
