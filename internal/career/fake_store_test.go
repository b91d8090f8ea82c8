package career

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/types"
)

// memStore is an in-memory implementation of every store interface.
type memStore struct {
	mu           sync.Mutex
	users        map[string]*db.User
	insights     map[string]*db.IndustryInsight
	resumes      map[uuid.UUID]*db.Resume
	letters      map[uuid.UUID]*db.CoverLetter
	saveErr      error
	profileCalls int
	createdUsers int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*db.User{},
		insights: map[string]*db.IndustryInsight{},
		resumes:  map[uuid.UUID]*db.Resume{},
		letters:  map[uuid.UUID]*db.CoverLetter{},
	}
}

func (m *memStore) GetUserBySubject(_ context.Context, subject string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[subject], nil
}

func (m *memStore) CreateUser(_ context.Context, nu db.NewUser) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &db.User{ID: uuid.New(), AuthSubject: nu.AuthSubject, Email: nu.Email, Name: nu.Name, ImageURL: nu.ImageURL, Skills: db.StringArray{}}
	m.users[nu.AuthSubject] = u
	m.createdUsers++
	return u, nil
}

func (m *memStore) GetIndustryInsight(_ context.Context, industry string) (*db.IndustryInsight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insights[industry], nil
}

func (m *memStore) UpsertIndustryInsight(_ context.Context, industry string, data types.InsightData, last, next time.Time) (*db.IndustryInsight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := &db.IndustryInsight{ID: uuid.New(), Industry: industry, Data: data, LastUpdated: last, NextUpdate: next}
	m.insights[industry] = i
	return i, nil
}

func (m *memStore) UpdateProfile(_ context.Context, userID uuid.UUID, p db.ProfileUpdate, insight *db.IndustryInsight) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profileCalls++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	if insight != nil {
		if _, ok := m.insights[insight.Industry]; !ok {
			cp := *insight
			m.insights[insight.Industry] = &cp
		}
	}
	for _, u := range m.users {
		if u.ID == userID {
			industry, bio := p.Industry, p.Bio
			u.Industry, u.Experience, u.Bio, u.Skills = &industry, p.Experience, &bio, db.StringArray(p.Skills)
			return u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memStore) SaveResume(_ context.Context, userID uuid.UUID, content string) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	r := &db.Resume{ID: uuid.New(), UserID: userID, Content: content}
	m.resumes[userID] = r
	return r, nil
}

func (m *memStore) GetResume(_ context.Context, userID uuid.UUID) (*db.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resumes[userID], nil
}

func (m *memStore) CreateCoverLetter(_ context.Context, nc db.NewCoverLetter) (*db.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	c := &db.CoverLetter{ID: uuid.New(), UserID: nc.UserID, Content: nc.Content, JobTitle: nc.JobTitle,
		CompanyName: nc.CompanyName, JobDescription: nc.JobDescription, Status: nc.Status}
	m.letters[c.ID] = c
	return c, nil
}

func (m *memStore) ListCoverLetters(_ context.Context, userID uuid.UUID) ([]db.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.CoverLetter{}
	for _, c := range m.letters {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memStore) GetCoverLetter(_ context.Context, userID, id uuid.UUID) (*db.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.letters[id]; ok && c.UserID == userID {
		return c, nil
	}
	return nil, nil
}

func (m *memStore) UpdateCoverLetterContent(_ context.Context, userID, id uuid.UUID, content string) (*db.CoverLetter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.letters[id]
	if !ok || c.UserID != userID {
		return nil, db.ErrNotFound
	}
	c.Content, c.Status = content, types.CoverLetterCompleted
	return c, nil
}

func (m *memStore) DeleteCoverLetter(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.letters[id]
	if !ok || c.UserID != userID {
		return db.ErrNotFound
	}
	delete(m.letters, id)
	return nil
}

type fakeInsights struct {
	calls int
	err   error
}

func (f *fakeInsights) Generate(_ context.Context, industry string) (*types.InsightData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &types.InsightData{GrowthRate: 7, DemandLevel: types.DemandHigh, TopSkills: []string{industry + "-skill"}}, nil
}

type fakeWriter struct {
	prompt string
	text   string
	err    error
}

func (f *fakeWriter) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func (f *fakeWriter) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", nil
}

func (f *fakeWriter) Close() error { return nil }

var ada = &types.Identity{Subject: "user_ada", Name: "Ada Lovelace", Email: "ada@example.com"}
