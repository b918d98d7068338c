package subscription

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/plannerhq/taskplanner/internal/storage"
)

const (
	// SubscribersFile is the name of the JSON file holding the
	// confirmed subscriber emails.
	SubscribersFile = "subscribers.json"

	// PendingFile is the name of the JSON file holding pending
	// subscriptions keyed by email.
	PendingFile = "pending_subscriptions.json"
)

// Store is a Repository backed by two JSON files. One mutex covers both
// files; each operation reads, mutates in memory, and rewrites whole
// files atomically.
type Store struct {
	subscribersPath string
	pendingPath     string
	mu              sync.Mutex
}

// NewStore returns a Store persisting under dir.
func NewStore(dir string) *Store {
	return &Store{
		subscribersPath: filepath.Join(dir, SubscribersFile),
		pendingPath:     filepath.Join(dir, PendingFile),
	}
}

// Request stores a pending subscription for email and returns the fresh
// verification code. An email that is already a confirmed subscriber is
// rejected outright, even if a pending entry also exists. A previous
// pending entry for the same email is overwritten.
func (s *Store) Request(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.loadSubscribers(), email) {
		return "", ErrAlreadySubscribed
	}

	code, err := NewCode()
	if err != nil {
		return "", err
	}

	pending := s.loadPending()
	pending[email] = Pending{
		Code:      code,
		Timestamp: time.Now().Unix(),
	}
	if err := storage.WriteJSON(s.pendingPath, pending); err != nil {
		return "", fmt.Errorf("write pending subscriptions: %w", err)
	}
	return code, nil
}

// Verify checks code against the pending entry for email. On a match
// the email joins the subscriber set (idempotently), the pending entry
// is removed, and both files are rewritten. The subscriber file is
// written first; if the pending write then fails the email is left both
// subscribed and pending, and the error is surfaced.
func (s *Store) Verify(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.loadPending()
	entry, ok := pending[email]
	if !ok {
		return ErrNotPending
	}
	if entry.Code != code {
		return ErrInvalidCode
	}

	subscribers := s.loadSubscribers()
	if !contains(subscribers, email) {
		subscribers = append(subscribers, email)
	}
	delete(pending, email)

	if err := storage.WriteJSON(s.subscribersPath, subscribers); err != nil {
		return fmt.Errorf("write subscribers: %w", err)
	}
	if err := storage.WriteJSON(s.pendingPath, pending); err != nil {
		return fmt.Errorf("write pending subscriptions: %w", err)
	}
	return nil
}

// Unsubscribe removes email from the subscriber set by exact match.
func (s *Store) Unsubscribe(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subscribers := s.loadSubscribers()
	updated := make([]string, 0, len(subscribers))
	for _, existing := range subscribers {
		if existing != email {
			updated = append(updated, existing)
		}
	}
	if len(updated) == len(subscribers) {
		return ErrNotSubscribed
	}

	if err := storage.WriteJSON(s.subscribersPath, updated); err != nil {
		return fmt.Errorf("write subscribers: %w", err)
	}
	return nil
}

// Subscribers returns all confirmed subscriber emails in stored order.
func (s *Store) Subscribers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSubscribers()
}

// loadSubscribers reads the subscriber file, treating any read or parse
// error as an empty set.
func (s *Store) loadSubscribers() []string {
	var subscribers []string
	if err := storage.ReadJSON(s.subscribersPath, &subscribers); err != nil {
		return nil
	}
	return subscribers
}

// loadPending reads the pending file, treating any read or parse error
// as an empty collection.
func (s *Store) loadPending() map[string]Pending {
	pending := make(map[string]Pending)
	if err := storage.ReadJSON(s.pendingPath, &pending); err != nil {
		return make(map[string]Pending)
	}
	return pending
}

func contains(values []string, value string) bool {
	for _, existing := range values {
		if existing == value {
			return true
		}
	}
	return false
}
