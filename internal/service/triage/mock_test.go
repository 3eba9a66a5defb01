package triage

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

// Hand-rolled mocks in the moq shape: a Func field per method plus
// recorded calls behind a mutex.

type inboxStoreMock struct {
	GetFunc      func(ctx context.Context, id string) (*domain.InboxItem, error)
	ClaimFunc    func(ctx context.Context, id, marker string) error
	FinalizeFunc func(ctx context.Context, id, marker string, at time.Time) error
	RestoreFunc  func(ctx context.Context, id string) error

	mu            sync.Mutex
	getCalls      []string
	claimCalls    []struct{ ID, Marker string }
	finalizeCalls []struct {
		ID, Marker string
		At         time.Time
	}
	restoreCalls []string
}

func (m *inboxStoreMock) Get(ctx context.Context, id string) (*domain.InboxItem, error) {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, id)
	m.mu.Unlock()
	return m.GetFunc(ctx, id)
}

func (m *inboxStoreMock) Claim(ctx context.Context, id, marker string) error {
	m.mu.Lock()
	m.claimCalls = append(m.claimCalls, struct{ ID, Marker string }{id, marker})
	m.mu.Unlock()
	return m.ClaimFunc(ctx, id, marker)
}

func (m *inboxStoreMock) Finalize(ctx context.Context, id, marker string, at time.Time) error {
	m.mu.Lock()
	m.finalizeCalls = append(m.finalizeCalls, struct {
		ID, Marker string
		At         time.Time
	}{id, marker, at})
	m.mu.Unlock()
	return m.FinalizeFunc(ctx, id, marker, at)
}

func (m *inboxStoreMock) Restore(ctx context.Context, id string) error {
	m.mu.Lock()
	m.restoreCalls = append(m.restoreCalls, id)
	m.mu.Unlock()
	return m.RestoreFunc(ctx, id)
}

func (m *inboxStoreMock) ClaimCalls() []struct{ ID, Marker string } {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.claimCalls
}

func (m *inboxStoreMock) FinalizeCalls() []struct {
	ID, Marker string
	At         time.Time
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finalizeCalls
}

func (m *inboxStoreMock) RestoreCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restoreCalls
}

type taskStoreMock struct {
	GetFunc        func(ctx context.Context, id string) (*domain.Task, error)
	CreateFunc     func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	SetStatusFunc  func(ctx context.Context, id string, status domain.Status, enteredAt time.Time) (*domain.Task, error)
	SetUndoURLFunc func(ctx context.Context, id, url string) error
	ArchiveFunc    func(ctx context.Context, id string) error

	mu              sync.Mutex
	createCalls     []*domain.Task
	setStatusCalls  []struct {
		ID     string
		Status domain.Status
	}
	setUndoURLCalls []struct{ ID, URL string }
	archiveCalls    []string
}

func (m *taskStoreMock) Get(ctx context.Context, id string) (*domain.Task, error) {
	return m.GetFunc(ctx, id)
}

func (m *taskStoreMock) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, task)
	m.mu.Unlock()
	return m.CreateFunc(ctx, task)
}

func (m *taskStoreMock) SetStatus(ctx context.Context, id string, status domain.Status, enteredAt time.Time) (*domain.Task, error) {
	m.mu.Lock()
	m.setStatusCalls = append(m.setStatusCalls, struct {
		ID     string
		Status domain.Status
	}{id, status})
	m.mu.Unlock()
	return m.SetStatusFunc(ctx, id, status, enteredAt)
}

func (m *taskStoreMock) SetUndoURL(ctx context.Context, id, url string) error {
	m.mu.Lock()
	m.setUndoURLCalls = append(m.setUndoURLCalls, struct{ ID, URL string }{id, url})
	m.mu.Unlock()
	return m.SetUndoURLFunc(ctx, id, url)
}

func (m *taskStoreMock) Archive(ctx context.Context, id string) error {
	m.mu.Lock()
	m.archiveCalls = append(m.archiveCalls, id)
	m.mu.Unlock()
	return m.ArchiveFunc(ctx, id)
}

func (m *taskStoreMock) CreateCalls() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *taskStoreMock) SetStatusCalls() []struct {
	ID     string
	Status domain.Status
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setStatusCalls
}

func (m *taskStoreMock) SetUndoURLCalls() []struct{ ID, URL string } {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setUndoURLCalls
}

func (m *taskStoreMock) ArchiveCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.archiveCalls
}

type actionSignerMock struct {
	IssueFunc  func(taskID string, status domain.Status) (int64, string)
	VerifyFunc func(taskID string, status domain.Status, expiresAt int64, sig string) error
	TTLFunc    func() time.Duration
}

func (m *actionSignerMock) Issue(taskID string, status domain.Status) (int64, string) {
	return m.IssueFunc(taskID, status)
}

func (m *actionSignerMock) Verify(taskID string, status domain.Status, expiresAt int64, sig string) error {
	return m.VerifyFunc(taskID, status, expiresAt, sig)
}

func (m *actionSignerMock) TTL() time.Duration {
	return m.TTLFunc()
}
