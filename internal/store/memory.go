package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/verte-zerg/lingua/internal/model"
)

// Memory is an in-process store with the same contract as Store.
type Memory struct {
	mu       sync.Mutex
	accounts map[string]model.Account
	byEmail  map[string]string
	session  string
	progress map[string]model.Progress
	activity []model.Activity
	misses   map[string]map[string]int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts: map[string]model.Account{},
		byEmail:  map[string]string{},
		progress: map[string]model.Progress{},
		misses:   map[string]map[string]int{},
	}
}

// CreateAccount inserts a new account.
func (m *Memory) CreateAccount(_ context.Context, acct model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createAccount(acct)
}

func (m *Memory) createAccount(acct model.Account) error {
	if _, ok := m.byEmail[acct.Email]; ok {
		return ErrDuplicateEmail
	}
	m.accounts[acct.ID] = acct
	m.byEmail[acct.Email] = acct.ID
	return nil
}

// RegisterAccount creates acct with its initial progress and opens its session.
func (m *Memory) RegisterAccount(_ context.Context, acct model.Account, p model.Progress, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.createAccount(acct); err != nil {
		return err
	}
	m.putProgress(acct.ID, p)
	m.session = acct.ID
	return nil
}

// FindAccountByEmail returns the account registered with email.
func (m *Memory) FindAccountByEmail(_ context.Context, email string) (model.Account, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return model.Account{}, false, nil
	}
	return m.accounts[id], true, nil
}

// FindAccountByID returns the account with the given id.
func (m *Memory) FindAccountByID(_ context.Context, id string) (model.Account, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[id]
	return acct, ok, nil
}

// AccountExists reports whether an account with id exists.
func (m *Memory) AccountExists(ctx context.Context, id string) (bool, error) {
	_, ok, err := m.FindAccountByID(ctx, id)
	return ok, err
}

// SetSession makes accountID the current session.
func (m *Memory) SetSession(_ context.Context, accountID string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = accountID
	return nil
}

// SessionAccount returns the account id of the current session.
func (m *Memory) SessionAccount(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, m.session != "", nil
}

// ClearSession ends the current session.
func (m *Memory) ClearSession(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = ""
	return nil
}

// GetProgress returns a copy of the stored record.
func (m *Memory) GetProgress(_ context.Context, accountID string) (model.Progress, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.progress[accountID]
	if !ok {
		return model.Progress{}, false, nil
	}
	return p.Clone(), true, nil
}

// PutProgress stores a copy of p. Like Store, it keeps completed lessons
// and languages already on record.
func (m *Memory) PutProgress(_ context.Context, accountID string, p model.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putProgress(accountID, p)
	return nil
}

func (m *Memory) putProgress(accountID string, p model.Progress) {
	next := p.Clone()
	if prev, ok := m.progress[accountID]; ok {
		for id := range prev.CompletedLessons {
			next.CompletedLessons[id] = struct{}{}
		}
		for lang, stat := range prev.Languages {
			if _, ok := next.Languages[lang]; !ok {
				next.Languages[lang] = stat
			}
		}
	}
	m.progress[accountID] = next
}

// AppendActivity stores a journal entry.
func (m *Memory) AppendActivity(_ context.Context, a model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activity = append(m.activity, a)
	return nil
}

// ListActivity returns journal entries for accountID at or after since, oldest first.
func (m *Memory) ListActivity(_ context.Context, accountID string, since time.Time) ([]model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Activity
	for _, a := range m.activity {
		if a.AccountID != accountID {
			continue
		}
		if !since.IsZero() && a.At.Before(since) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out, nil
}

// RecordMiss counts one wrong answer for word.
func (m *Memory) RecordMiss(_ context.Context, accountID, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.misses[accountID] == nil {
		m.misses[accountID] = map[string]int{}
	}
	m.misses[accountID][word]++
	return nil
}

// WordMisses returns the wrong-answer count per word for accountID.
func (m *Memory) WordMisses(_ context.Context, accountID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.misses[accountID]))
	for word, n := range m.misses[accountID] {
		out[word] = n
	}
	return out, nil
}
