package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperrors "linkdrop-bot/internal/errors"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedResources(t *testing.T, store Storage, entries ...ResourceEntry) {
	t.Helper()
	if _, err := store.UpsertResources(entries); err != nil {
		t.Fatalf("UpsertResources: %v", err)
	}
}

func TestSQLiteUpsertAndList(t *testing.T) {
	store := newTestStorage(t)
	seedResources(t, store,
		ResourceEntry{Number: 2, URL: "https://example.com/2"},
		ResourceEntry{Number: 1, URL: "https://example.com/1"},
	)

	free, err := store.ListFreeNumbers()
	if err != nil {
		t.Fatalf("ListFreeNumbers: %v", err)
	}
	if len(free) != 2 || free[0] != 1 || free[1] != 2 {
		t.Fatalf("free numbers = %v, want [1 2]", free)
	}

	res, err := store.LookupResource(1)
	if err != nil {
		t.Fatalf("LookupResource: %v", err)
	}
	if res.URL != "https://example.com/1" || res.Used {
		t.Fatalf("unexpected resource: %+v", res)
	}

	if _, err := store.LookupResource(99); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("LookupResource(99) error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteClaimNumbers(t *testing.T) {
	store := newTestStorage(t)
	seedResources(t, store,
		ResourceEntry{Number: 1, URL: "https://example.com/1"},
		ResourceEntry{Number: 2, URL: "https://example.com/2"},
		ResourceEntry{Number: 3, URL: "https://example.com/3"},
	)

	claimed, err := store.ClaimNumbers("aaaaa", 100, []int{1, 2}, false)
	if err != nil {
		t.Fatalf("ClaimNumbers: %v", err)
	}
	if len(claimed) != 2 {
		t.Fatalf("got %d claimed, want 2", len(claimed))
	}

	// The same numbers cannot be claimed twice; 3 is still free
	claimed, err = store.ClaimNumbers("bbbbb", 200, []int{1, 2, 3}, false)
	if err != nil {
		t.Fatalf("ClaimNumbers: %v", err)
	}
	if len(claimed) != 1 || claimed[0].Number != 3 {
		t.Fatalf("claimed = %+v, want just number 3", claimed)
	}

	// The ledger carries one row per granted number
	issues, err := store.IssuesByCode("aaaaa")
	if err != nil {
		t.Fatalf("IssuesByCode: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(issues))
	}
	if issues[0].ClaimantID != 100 || issues[0].Number != 1 || issues[0].URL != "https://example.com/1" {
		t.Fatalf("unexpected issue row: %+v", issues[0])
	}
}

func TestSQLiteClaimAllOrNothingRollsBack(t *testing.T) {
	store := newTestStorage(t)
	seedResources(t, store,
		ResourceEntry{Number: 1, URL: "https://example.com/1"},
		ResourceEntry{Number: 2, URL: "https://example.com/2"},
	)

	if _, err := store.ClaimNumbers("aaaaa", 100, []int{2}, false); err != nil {
		t.Fatalf("ClaimNumbers: %v", err)
	}

	claimed, err := store.ClaimNumbers("bbbbb", 200, []int{1, 2}, true)
	if err != nil {
		t.Fatalf("ClaimNumbers: %v", err)
	}
	if len(claimed) != 0 {
		t.Fatalf("all-or-nothing granted %+v, want nothing", claimed)
	}

	// Number 1 must still be free after the rollback
	free, err := store.ListFreeNumbers()
	if err != nil {
		t.Fatalf("ListFreeNumbers: %v", err)
	}
	if len(free) != 1 || free[0] != 1 {
		t.Fatalf("free numbers = %v, want [1]", free)
	}
	if issues, _ := store.IssuesByCode("bbbbb"); len(issues) != 0 {
		t.Fatalf("voided claim left %d ledger rows", len(issues))
	}
}

func TestSQLiteReuploadResetsUsed(t *testing.T) {
	store := newTestStorage(t)
	seedResources(t, store, ResourceEntry{Number: 1, URL: "https://old.example.com"})

	if _, err := store.ClaimNumbers("aaaaa", 100, []int{1}, false); err != nil {
		t.Fatalf("ClaimNumbers: %v", err)
	}

	seedResources(t, store, ResourceEntry{Number: 1, URL: "https://new.example.com"})

	res, err := store.LookupResource(1)
	if err != nil {
		t.Fatalf("LookupResource: %v", err)
	}
	if res.Used || res.URL != "https://new.example.com" {
		t.Fatalf("re-uploaded resource = %+v, want free with new URL", res)
	}
}

func TestSQLiteClearAll(t *testing.T) {
	store := newTestStorage(t)
	seedResources(t, store, ResourceEntry{Number: 1, URL: "https://example.com/1"})

	if _, err := store.ClaimNumbers("aaaaa", 100, []int{1}, false); err != nil {
		t.Fatalf("ClaimNumbers: %v", err)
	}
	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	total, free, err := store.CountResources()
	if err != nil {
		t.Fatalf("CountResources: %v", err)
	}
	if total != 0 || free != 0 {
		t.Fatalf("counts after clear = (%d, %d), want (0, 0)", total, free)
	}
	if issues, _ := store.IssuesByCode("aaaaa"); len(issues) != 0 {
		t.Fatalf("ledger kept %d rows after clear", len(issues))
	}
}

func TestSQLiteClaimantCodeStable(t *testing.T) {
	store := newTestStorage(t)

	first, err := store.GetOrCreateClaimant(100, "alice", "code1")
	if err != nil {
		t.Fatalf("GetOrCreateClaimant: %v", err)
	}

	// Re-contact with a fresh generated code keeps the original one and
	// refreshes the display name
	second, err := store.GetOrCreateClaimant(100, "alice2", "code2")
	if err != nil {
		t.Fatalf("GetOrCreateClaimant: %v", err)
	}
	if second.Code != first.Code {
		t.Fatalf("code changed on re-contact: %q -> %q", first.Code, second.Code)
	}
	if second.DisplayName != "alice2" {
		t.Fatalf("display name = %q, want alice2", second.DisplayName)
	}

	// An unknown display name must not erase the stored one
	third, err := store.GetOrCreateClaimant(100, "", "code3")
	if err != nil {
		t.Fatalf("GetOrCreateClaimant: %v", err)
	}
	if third.DisplayName != "alice2" {
		t.Fatalf("display name = %q, want alice2", third.DisplayName)
	}
}

func TestSQLiteFindClaimantByCode(t *testing.T) {
	store := newTestStorage(t)
	seedResources(t, store, ResourceEntry{Number: 1, URL: "https://example.com/1"})

	if _, err := store.GetOrCreateClaimant(100, "alice", "abc12"); err != nil {
		t.Fatalf("GetOrCreateClaimant: %v", err)
	}
	if _, err := store.ClaimNumbers("xyz99", 200, []int{1}, false); err != nil {
		t.Fatalf("ClaimNumbers: %v", err)
	}

	id, err := store.FindClaimantByCode("abc12")
	if err != nil {
		t.Fatalf("FindClaimantByCode: %v", err)
	}
	if id != 100 {
		t.Fatalf("permanent code lookup = %d, want 100", id)
	}

	id, err = store.FindClaimantByCode("xyz99")
	if err != nil {
		t.Fatalf("FindClaimantByCode: %v", err)
	}
	if id != 200 {
		t.Fatalf("issue code lookup = %d, want 200", id)
	}

	if _, err := store.FindClaimantByCode("nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown code error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteTrainers(t *testing.T) {
	store := newTestStorage(t)

	ok, err := store.IsTrainer(5)
	if err != nil {
		t.Fatalf("IsTrainer: %v", err)
	}
	if ok {
		t.Fatal("unknown ID reported as trainer")
	}

	if err := store.AddTrainer(5); err != nil {
		t.Fatalf("AddTrainer: %v", err)
	}
	// Adding twice is fine
	if err := store.AddTrainer(5); err != nil {
		t.Fatalf("AddTrainer twice: %v", err)
	}

	ok, err = store.IsTrainer(5)
	if err != nil {
		t.Fatalf("IsTrainer: %v", err)
	}
	if !ok {
		t.Fatal("added trainer not found")
	}
}

func TestSQLiteUserStates(t *testing.T) {
	store := newTestStorage(t)

	if _, err := store.GetUserState(1); err == nil {
		t.Fatal("GetUserState on missing row returned no error")
	}

	if err := store.SetUserState(1, "awaiting_selection"); err != nil {
		t.Fatalf("SetUserState: %v", err)
	}
	state, err := store.GetUserState(1)
	if err != nil {
		t.Fatalf("GetUserState: %v", err)
	}
	if state != "awaiting_selection" {
		t.Fatalf("state = %q, want awaiting_selection", state)
	}

	if err := store.DeleteUserState(1); err != nil {
		t.Fatalf("DeleteUserState: %v", err)
	}
	if _, err := store.GetUserState(1); err == nil {
		t.Fatal("state survived delete")
	}
}

func TestSQLiteClaimSessions(t *testing.T) {
	store := newTestStorage(t)

	if _, err := store.GetClaimSession(1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetClaimSession on missing row error = %v, want ErrNotFound", err)
	}

	stale := &ClaimSession{IssueCode: "old11", CreatedAt: time.Now().Add(-time.Hour)}
	if err := store.SetClaimSession(1, stale); err != nil {
		t.Fatalf("SetClaimSession: %v", err)
	}
	fresh := &ClaimSession{IssueCode: "new11", CreatedAt: time.Now()}
	if err := store.SetClaimSession(2, fresh); err != nil {
		t.Fatalf("SetClaimSession: %v", err)
	}

	if err := store.CleanupExpiredSessions(30 * time.Minute); err != nil {
		t.Fatalf("CleanupExpiredSessions: %v", err)
	}

	if _, err := store.GetClaimSession(1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("stale session survived cleanup: %v", err)
	}
	session, err := store.GetClaimSession(2)
	if err != nil {
		t.Fatalf("GetClaimSession: %v", err)
	}
	if session.IssueCode != "new11" {
		t.Fatalf("session code = %q, want new11", session.IssueCode)
	}
}
