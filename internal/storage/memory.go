package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	apperrors "linkdrop-bot/internal/errors"
)

// MemoryStorage implements Storage interface with in-memory storage
type MemoryStorage struct {
	resources     map[int]*Resource
	claimants     map[int64]*Claimant
	issues        []*Issue
	trainers      map[int64]struct{}
	userStates    map[int64]string
	claimSessions map[int64]*ClaimSession
	nextIssueID   int64
	mu            sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		resources:     make(map[int]*Resource),
		claimants:     make(map[int64]*Claimant),
		issues:        make([]*Issue, 0),
		trainers:      make(map[int64]struct{}),
		userStates:    make(map[int64]string),
		claimSessions: make(map[int64]*ClaimSession),
	}
}

// Resources

func (s *MemoryStorage) UpsertResources(entries []ResourceEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range entries {
		s.resources[entry.Number] = &Resource{
			Number: entry.Number,
			URL:    entry.URL,
			Used:   false,
		}
	}
	return len(entries), nil
}

func (s *MemoryStorage) ListFreeNumbers() ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var numbers []int
	for n, res := range s.resources {
		if !res.Used {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers, nil
}

func (s *MemoryStorage) LookupResource(number int) (*Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, exists := s.resources[number]
	if !exists {
		return nil, fmt.Errorf("resource %d: %w", number, apperrors.ErrNotFound)
	}
	copied := *res
	return &copied, nil
}

func (s *MemoryStorage) CountResources() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	free := 0
	for _, res := range s.resources {
		if !res.Used {
			free++
		}
	}
	return len(s.resources), free, nil
}

func (s *MemoryStorage) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources = make(map[int]*Resource)
	s.issues = s.issues[:0]
	return nil
}

// ClaimNumbers holds the write lock for the whole request, so the
// check-and-mark step is atomic per number across concurrent callers
func (s *MemoryStorage) ClaimNumbers(issueCode string, claimantID int64, numbers []int, allOrNothing bool) ([]ClaimedResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if allOrNothing {
		for _, n := range numbers {
			res, exists := s.resources[n]
			if !exists || res.Used {
				return nil, nil
			}
		}
	}

	now := time.Now()
	var claimed []ClaimedResource
	for _, n := range numbers {
		res, exists := s.resources[n]
		if !exists || res.Used {
			continue
		}
		res.Used = true
		s.nextIssueID++
		s.issues = append(s.issues, &Issue{
			ID:         s.nextIssueID,
			IssueCode:  issueCode,
			ClaimantID: claimantID,
			Number:     n,
			URL:        res.URL,
			CreatedAt:  now,
		})
		claimed = append(claimed, ClaimedResource{Number: n, URL: res.URL})
	}
	return claimed, nil
}

// Claimants

func (s *MemoryStorage) GetOrCreateClaimant(telegramID int64, displayName, code string) (*Claimant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.claimants[telegramID]; exists {
		if displayName != "" {
			existing.DisplayName = displayName
		}
		copied := *existing
		return &copied, nil
	}

	claimant := &Claimant{
		TelegramID:  telegramID,
		DisplayName: displayName,
		Code:        code,
		CreatedAt:   time.Now(),
	}
	s.claimants[telegramID] = claimant
	copied := *claimant
	return &copied, nil
}

func (s *MemoryStorage) FindClaimantByCode(code string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, claimant := range s.claimants {
		if claimant.Code == code {
			return claimant.TelegramID, nil
		}
	}
	for _, issue := range s.issues {
		if issue.IssueCode == code {
			return issue.ClaimantID, nil
		}
	}
	return 0, fmt.Errorf("code %q: %w", code, apperrors.ErrNotFound)
}

// Issues

func (s *MemoryStorage) IssuesByCode(issueCode string) ([]*Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var issues []*Issue
	for _, issue := range s.issues {
		if issue.IssueCode == issueCode {
			copied := *issue
			issues = append(issues, &copied)
		}
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Number < issues[j].Number })
	return issues, nil
}

// Trainers

func (s *MemoryStorage) AddTrainer(trainerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trainers[trainerID] = struct{}{}
	return nil
}

func (s *MemoryStorage) IsTrainer(trainerID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.trainers[trainerID]
	return exists, nil
}

// User states

func (s *MemoryStorage) SetUserState(userID int64, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userStates[userID] = state
	return nil
}

func (s *MemoryStorage) GetUserState(userID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, exists := s.userStates[userID]
	if !exists {
		return "", fmt.Errorf("state not found for user %d", userID)
	}
	return state, nil
}

func (s *MemoryStorage) DeleteUserState(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.userStates, userID)
	return nil
}

// Claim sessions

func (s *MemoryStorage) SetClaimSession(userID int64, session *ClaimSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claimSessions[userID] = session
	return nil
}

func (s *MemoryStorage) GetClaimSession(userID int64) (*ClaimSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.claimSessions[userID]
	if !exists {
		return nil, fmt.Errorf("claim session for user %d: %w", userID, apperrors.ErrNotFound)
	}
	copied := *session
	return &copied, nil
}

func (s *MemoryStorage) DeleteClaimSession(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claimSessions, userID)
	return nil
}

// CleanupExpiredSessions removes abandoned sessions older than maxAge
func (s *MemoryStorage) CleanupExpiredSessions(maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for userID, session := range s.claimSessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.claimSessions, userID)
		}
	}
	return nil
}

// Close closes the storage (no-op for memory storage)
func (s *MemoryStorage) Close() error {
	return nil
}
