package links

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "linkdrop-bot/internal/errors"
	"linkdrop-bot/internal/logger"
	"linkdrop-bot/internal/storage"
)

// Policy controls how a multi-number claim treats unavailable numbers
type Policy int

const (
	// PolicyBestEffort grants whatever subset of the request is free
	PolicyBestEffort Policy = iota
	// PolicyAllOrNothing rejects the whole request if any number is taken
	PolicyAllOrNothing
)

// ParsePolicy maps the config string to a Policy
func ParsePolicy(s string) Policy {
	if s == "all_or_nothing" {
		return PolicyAllOrNothing
	}
	return PolicyBestEffort
}

// Grant is one number/URL pair handed to a claimant
type Grant struct {
	Number int
	URL    string
}

// Outcome is the result of a successful selection submit
type Outcome struct {
	IssueCode string
	Grants    []Grant
	Remaining string
}

// Engine allocates numbered links from the shared pool. All mutation goes
// through the store's atomic claim primitive; the engine itself keeps no
// state beyond its configuration.
type Engine struct {
	store        storage.Storage
	policy       Policy
	maxRangeSpan int
	logger       *logger.Logger
}

// NewEngine creates an allocation engine on top of the given store
func NewEngine(store storage.Storage, policy Policy, maxRangeSpan int, log *logger.Logger) *Engine {
	if maxRangeSpan <= 0 {
		maxRangeSpan = 500
	}
	return &Engine{
		store:        store,
		policy:       policy,
		maxRangeSpan: maxRangeSpan,
		logger:       log,
	}
}

// BeginClaim opens a claim session: it mints a fresh issue code, stores it
// for the claimant and returns it with the formatted free ranges.
// Returns ErrNoneAvailable when the pool has nothing free.
func (e *Engine) BeginClaim(claimantID int64) (string, string, error) {
	free, err := e.store.ListFreeNumbers()
	if err != nil {
		return "", "", apperrors.Store(err, "list free numbers")
	}
	if len(free) == 0 {
		return "", "", apperrors.ErrNoneAvailable
	}

	code := NewIssueCode()
	session := &storage.ClaimSession{IssueCode: code, CreatedAt: time.Now()}
	if err := e.store.SetClaimSession(claimantID, session); err != nil {
		return "", "", apperrors.Store(err, "save claim session")
	}

	e.logger.WithFields(map[string]interface{}{
		"claimant_id": claimantID,
		"issue_code":  code,
	}).Info("Claim session opened")

	return code, FormatRanges(free), nil
}

// SubmitSelection resolves free-text input against the open claim session.
// Malformed input returns ErrMalformedInput and keeps the session alive so
// the claimant can retry; any resolved claim, granted or empty, consumes
// the session.
func (e *Engine) SubmitSelection(claimantID int64, rawText string) (*Outcome, error) {
	selection, err := ParseSelection(rawText)
	if err != nil {
		return nil, err
	}
	if selection.Span() > e.maxRangeSpan {
		return nil, fmt.Errorf("range covers %d numbers, limit is %d: %w",
			selection.Span(), e.maxRangeSpan, apperrors.ErrMalformedInput)
	}

	session, err := e.store.GetClaimSession(claimantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no open claim session for claimant %d: %w", claimantID, apperrors.ErrNotFound)
		}
		return nil, apperrors.Store(err, "load claim session")
	}

	claimed, err := e.store.ClaimNumbers(
		session.IssueCode,
		claimantID,
		selection.Numbers(),
		e.policy == PolicyAllOrNothing,
	)
	if err != nil {
		// Store failure leaves the session intact; the atomic claim
		// guarantees no partial mutation happened
		return nil, apperrors.Store(err, "claim numbers")
	}

	if err := e.store.DeleteClaimSession(claimantID); err != nil {
		e.logger.Errorf("Failed to delete claim session for %d: %v", claimantID, err)
	}

	if len(claimed) == 0 {
		return nil, apperrors.ErrNoneAvailable
	}

	grants := make([]Grant, 0, len(claimed))
	for _, c := range claimed {
		grants = append(grants, Grant{Number: c.Number, URL: c.URL})
	}

	remaining, err := e.store.ListFreeNumbers()
	if err != nil {
		return nil, apperrors.Store(err, "list remaining numbers")
	}

	e.logger.WithFields(map[string]interface{}{
		"claimant_id": claimantID,
		"issue_code":  session.IssueCode,
		"granted":     len(grants),
	}).Info("Claim committed")

	return &Outcome{
		IssueCode: session.IssueCode,
		Grants:    grants,
		Remaining: FormatRanges(remaining),
	}, nil
}

// CancelClaim abandons an open session without touching resources
func (e *Engine) CancelClaim(claimantID int64) {
	if err := e.store.DeleteClaimSession(claimantID); err != nil {
		e.logger.Errorf("Failed to cancel claim session for %d: %v", claimantID, err)
	}
}

// HasOpenSession reports whether the claimant is mid-claim
func (e *Engine) HasOpenSession(claimantID int64) bool {
	_, err := e.store.GetClaimSession(claimantID)
	return err == nil
}

// UploadResources applies an admin bulk upload; re-uploaded numbers reset
// to free with the new URL
func (e *Engine) UploadResources(entries []storage.ResourceEntry) (int, error) {
	count, err := e.store.UpsertResources(entries)
	if err != nil {
		return 0, apperrors.Store(err, "upsert resources")
	}
	e.logger.Infof("Uploaded %d links to the pool", count)
	return count, nil
}

// ClearAll wipes the pool and the issue ledger together
func (e *Engine) ClearAll() error {
	if err := e.store.ClearAll(); err != nil {
		return apperrors.Store(err, "clear pool")
	}
	e.logger.Warn("Link pool and issue ledger cleared")
	return nil
}

// FreeRanges returns the formatted free ranges with pool counters
func (e *Engine) FreeRanges() (ranges string, total, free int, err error) {
	numbers, err := e.store.ListFreeNumbers()
	if err != nil {
		return "", 0, 0, apperrors.Store(err, "list free numbers")
	}
	total, free, err = e.store.CountResources()
	if err != nil {
		return "", 0, 0, apperrors.Store(err, "count resources")
	}
	return FormatRanges(numbers), total, free, nil
}

// FindClaimantByCode resolves a delivery code to a Telegram ID. Codes are
// compared lowercase; permanent claimant codes win over issue codes.
func (e *Engine) FindClaimantByCode(code string) (int64, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return 0, fmt.Errorf("empty code: %w", apperrors.ErrMalformedInput)
	}
	id, err := e.store.FindClaimantByCode(normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, err
		}
		return 0, apperrors.Store(err, "lookup code")
	}
	return id, nil
}
