package storage

import (
	"time"
)

// Resource is one numbered link in the distributable pool
type Resource struct {
	Number int
	URL    string
	Used   bool
}

// ResourceEntry is one (number, url) pair from an admin upload
type ResourceEntry struct {
	Number int
	URL    string
}

// ClaimedResource is one resource granted by an atomic claim
type ClaimedResource struct {
	Number int
	URL    string
}

// Claimant is a user known to the bot, with a permanent code
// generated once on first contact
type Claimant struct {
	TelegramID  int64
	DisplayName string
	Code        string
	CreatedAt   time.Time
}

// Issue is one ledger row: a single number granted under an issue code
type Issue struct {
	ID         int64
	IssueCode  string
	ClaimantID int64
	Number     int
	URL        string
	CreatedAt  time.Time
}

// ClaimSession holds the issue code minted between "begin claim"
// and "submit selection"
type ClaimSession struct {
	IssueCode string
	CreatedAt time.Time
}

// Storage defines the interface for persistence
type Storage interface {
	// Resources
	UpsertResources(entries []ResourceEntry) (int, error)
	ListFreeNumbers() ([]int, error)
	LookupResource(number int) (*Resource, error)
	CountResources() (total int, free int, err error)

	// ClearAll wipes resources and issues together; ledger rows reference
	// resources, so the two lifecycles are linked
	ClearAll() error

	// ClaimNumbers marks each requested number used if it is currently free
	// and records one issue row per granted number, all in one transaction.
	// With allOrNothing set, a single unavailable number voids the whole
	// request. Returns the granted subset; an empty result is not an error.
	ClaimNumbers(issueCode string, claimantID int64, numbers []int, allOrNothing bool) ([]ClaimedResource, error)

	// Claimants
	GetOrCreateClaimant(telegramID int64, displayName, code string) (*Claimant, error)
	// FindClaimantByCode checks permanent claimant codes first, then issue
	// codes, and returns the owning Telegram ID
	FindClaimantByCode(code string) (int64, error)

	// Issues
	IssuesByCode(issueCode string) ([]*Issue, error)

	// Trainers
	AddTrainer(trainerID int64) error
	IsTrainer(trainerID int64) (bool, error)

	// User states
	SetUserState(userID int64, state string) error
	GetUserState(userID int64) (string, error)
	DeleteUserState(userID int64) error

	// Claim sessions
	SetClaimSession(userID int64, session *ClaimSession) error
	GetClaimSession(userID int64) (*ClaimSession, error)
	DeleteClaimSession(userID int64) error

	// Cleanup
	CleanupExpiredSessions(maxAge time.Duration) error

	// Close the storage
	Close() error
}
