package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/26nm/careerpath/internal/domain/analysis"
	"github.com/26nm/careerpath/internal/domain/application"
	"github.com/26nm/careerpath/internal/domain/interview"
	"github.com/26nm/careerpath/internal/domain/resume"
	"github.com/26nm/careerpath/internal/domain/user"

	"github.com/google/uuid"
)

type mockApplicationRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]application.Application
	err   error
	last  application.ListFilter
}

func newMockApplicationRepo(items ...application.Application) *mockApplicationRepo {
	m := &mockApplicationRepo{items: map[uuid.UUID]application.Application{}}
	for _, a := range items {
		m.items[a.ID] = a
	}
	return m
}

func (m *mockApplicationRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return application.Application{}, m.err
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.items[a.ID] = a
	return a, nil
}

func (m *mockApplicationRepo) List(_ context.Context, userID uuid.UUID, f application.ListFilter) ([]application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = f
	if m.err != nil {
		return nil, m.err
	}
	out := make([]application.Application, 0)
	for _, a := range m.items {
		if a.UserID == userID && (f.Status == "" || a.Status == f.Status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicationRepo) Get(_ context.Context, userID, id uuid.UUID) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return application.Application{}, m.err
	}
	a, ok := m.items[id]
	if !ok || a.UserID != userID {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) Update(_ context.Context, a application.Application) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[a.ID]
	if !ok || cur.UserID != a.UserID {
		return application.Application{}, application.ErrNotFound
	}
	a.CreatedAt = cur.CreatedAt
	m.items[a.ID] = a
	return a, nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok || a.UserID != userID {
		return application.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type mockInterviewRepo struct {
	items map[uuid.UUID]interview.Interview
	apps  *mockApplicationRepo
}

func newMockInterviewRepo(apps *mockApplicationRepo) *mockInterviewRepo {
	return &mockInterviewRepo{items: map[uuid.UUID]interview.Interview{}, apps: apps}
}

func (m *mockInterviewRepo) Create(ctx context.Context, iv interview.Interview) (interview.Interview, error) {
	if _, err := m.apps.Get(ctx, iv.UserID, iv.ApplicationID); err != nil {
		return interview.Interview{}, err
	}
	m.items[iv.ID] = iv
	return iv, nil
}

func (m *mockInterviewRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]interview.Interview, error) {
	out := make([]interview.Interview, 0)
	for _, iv := range m.items {
		if iv.UserID == userID {
			out = append(out, iv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (m *mockInterviewRepo) ListByApplication(_ context.Context, userID, applicationID uuid.UUID) ([]interview.Interview, error) {
	out := make([]interview.Interview, 0)
	for _, iv := range m.items {
		if iv.UserID == userID && iv.ApplicationID == applicationID {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (m *mockInterviewRepo) Get(_ context.Context, userID, id uuid.UUID) (interview.Interview, error) {
	iv, ok := m.items[id]
	if !ok || iv.UserID != userID {
		return interview.Interview{}, interview.ErrNotFound
	}
	return iv, nil
}

func (m *mockInterviewRepo) Update(_ context.Context, iv interview.Interview) (interview.Interview, error) {
	cur, ok := m.items[iv.ID]
	if !ok || cur.UserID != iv.UserID {
		return interview.Interview{}, interview.ErrNotFound
	}
	m.items[iv.ID] = iv
	return iv, nil
}

func (m *mockInterviewRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	iv, ok := m.items[id]
	if !ok || iv.UserID != userID {
		return interview.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type mockResumeRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]resume.Resume
	err   error
}

func newMockResumeRepo(items ...resume.Resume) *mockResumeRepo {
	m := &mockResumeRepo{items: map[uuid.UUID]resume.Resume{}}
	for _, r := range items {
		m.items[r.ID] = r
	}
	return m
}

func (m *mockResumeRepo) Create(_ context.Context, r resume.Resume) (resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return resume.Resume{}, m.err
	}
	m.items[r.ID] = r
	return r, nil
}

func (m *mockResumeRepo) List(_ context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]resume.Resume, 0)
	for _, r := range m.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockResumeRepo) Get(_ context.Context, userID, id uuid.UUID) (resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return resume.Resume{}, m.err
	}
	r, ok := m.items[id]
	if !ok || r.UserID != userID {
		return resume.Resume{}, resume.ErrNotFound
	}
	return r, nil
}

func (m *mockResumeRepo) Update(_ context.Context, r resume.Resume) (resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[r.ID]
	if !ok || cur.UserID != r.UserID {
		return resume.Resume{}, resume.ErrNotFound
	}
	m.items[r.ID] = r
	return r, nil
}

func (m *mockResumeRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok || r.UserID != userID {
		return resume.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type mockAnalysisRepo struct {
	items     []analysis.Analysis
	appendErr error
	lastLimit int
}

func (m *mockAnalysisRepo) Append(_ context.Context, a analysis.Analysis) (analysis.Analysis, error) {
	if m.appendErr != nil {
		return analysis.Analysis{}, m.appendErr
	}
	m.items = append(m.items, a)
	return a, nil
}

func (m *mockAnalysisRepo) List(_ context.Context, userID uuid.UUID, limit, offset int) ([]analysis.Analysis, error) {
	m.lastLimit = limit
	out := make([]analysis.Analysis, 0)
	for _, a := range m.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAnalysisRepo) Get(_ context.Context, userID, id uuid.UUID) (analysis.Analysis, error) {
	for _, a := range m.items {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return analysis.Analysis{}, analysis.ErrNotFound
}

func (m *mockAnalysisRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	for i, a := range m.items {
		if a.ID == id && a.UserID == userID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return analysis.ErrNotFound
}

// memCache stores JSON like the redis cache does, so decode paths are exercised.
type memCache struct {
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

type notification struct {
	UserID uuid.UUID
	Type   string
	Data   any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification
}

func (n *recordingNotifier) NotifyUser(userID uuid.UUID, eventType string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notification{UserID: userID, Type: eventType, Data: data})
}

type recordingMetrics struct {
	outcomes []string
	rates    []int
}

func (m *recordingMetrics) ObserveAnalysis(outcome string, rate int, _ time.Duration) {
	m.outcomes = append(m.outcomes, outcome)
	m.rates = append(m.rates, rate)
}

type stubFetcher struct {
	posting FetchedPosting
	err     error
	urls    []string
}

func (f *stubFetcher) FetchPosting(_ context.Context, url string) (FetchedPosting, error) {
	f.urls = append(f.urls, url)
	return f.posting, f.err
}

type memUsers struct {
	byID map[uuid.UUID]user.User
}

func (m *memUsers) Create(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) Update(_ context.Context, u user.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}
