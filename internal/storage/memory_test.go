package storage

import (
	"fmt"
	"sync"
	"testing"
)

// TestMemoryConcurrentClaims hammers one number from many goroutines;
// the conditional claim must grant it exactly once
func TestMemoryConcurrentClaims(t *testing.T) {
	store := NewMemoryStorage()
	seedResources(t, store, ResourceEntry{Number: 1, URL: "https://example.com/1"})

	const workers = 50
	var wg sync.WaitGroup
	granted := make(chan int64, workers)

	for i := 0; i < workers; i++ {
		claimantID := int64(i + 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			code := fmt.Sprintf("c%04d", claimantID)
			claimed, err := store.ClaimNumbers(code, claimantID, []int{1}, false)
			if err != nil {
				t.Errorf("ClaimNumbers: %v", err)
				return
			}
			if len(claimed) == 1 {
				granted <- claimantID
			}
		}()
	}
	wg.Wait()
	close(granted)

	winners := 0
	for range granted {
		winners++
	}
	if winners != 1 {
		t.Fatalf("number granted to %d claimants, want exactly 1", winners)
	}
}

func TestMemoryStorageConformance(t *testing.T) {
	store := NewMemoryStorage()
	seedResources(t, store,
		ResourceEntry{Number: 1, URL: "https://example.com/1"},
		ResourceEntry{Number: 3, URL: "https://example.com/3"},
	)

	free, err := store.ListFreeNumbers()
	if err != nil {
		t.Fatalf("ListFreeNumbers: %v", err)
	}
	if len(free) != 2 || free[0] != 1 || free[1] != 3 {
		t.Fatalf("free numbers = %v, want [1 3]", free)
	}

	claimed, err := store.ClaimNumbers("aaaaa", 100, []int{1, 2, 3}, false)
	if err != nil {
		t.Fatalf("ClaimNumbers: %v", err)
	}
	if len(claimed) != 2 {
		t.Fatalf("got %d claimed, want 2 (number 2 does not exist)", len(claimed))
	}

	issues, err := store.IssuesByCode("aaaaa")
	if err != nil {
		t.Fatalf("IssuesByCode: %v", err)
	}
	if len(issues) != 2 || issues[0].Number != 1 || issues[1].Number != 3 {
		t.Fatalf("unexpected ledger rows: %+v", issues)
	}

	total, freeCount, err := store.CountResources()
	if err != nil {
		t.Fatalf("CountResources: %v", err)
	}
	if total != 2 || freeCount != 0 {
		t.Fatalf("counts = (%d, %d), want (2, 0)", total, freeCount)
	}
}
