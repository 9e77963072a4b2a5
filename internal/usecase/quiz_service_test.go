package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriquiz/backend/internal/domain"
)

// MockSessionRepository is a mock implementation of domain.SessionRepository
type MockSessionRepository struct {
	data    map[string]*domain.Session
	saveErr error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{data: make(map[string]*domain.Session)}
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[session.ID] = session
	return nil
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	s, ok := m.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

// MockLeadRepository is a mock implementation of domain.LeadRepository
type MockLeadRepository struct {
	leads     []domain.Lead
	appendErr error
}

func (m *MockLeadRepository) Append(ctx context.Context, lead *domain.Lead) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.leads = append(m.leads, *lead)
	return nil
}

func (m *MockLeadRepository) List(ctx context.Context) ([]domain.Lead, error) {
	return m.leads, nil
}

// MockRenderer is a mock implementation of domain.DocumentRenderer
type MockRenderer struct {
	rendered *domain.PlanReport
	err      error
}

func (m *MockRenderer) Render(report *domain.PlanReport) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.rendered = report
	return []byte("%PDF-1.3 test"), nil
}

// MockArchive is a mock implementation of domain.DocumentArchive
type MockArchive struct {
	docs   map[string][]byte
	putErr error
}

func NewMockArchive() *MockArchive {
	return &MockArchive{docs: make(map[string][]byte)}
}

func (m *MockArchive) Put(ctx context.Context, id string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.docs[id] = data
	return nil
}

func (m *MockArchive) Get(ctx context.Context, id string) ([]byte, error) {
	d, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return d, nil
}

func sampleSubmission() *domain.QuizSubmission {
	return &domain.QuizSubmission{
		Contact:       domain.Contact{Name: "Ana", Email: "ana@example.com"},
		Sex:           domain.SexMale,
		WeightKg:      80,
		HeightCm:      180,
		AgeYears:      25,
		ActivityLevel: domain.ActivityIntermediate,
		Goal:          domain.GoalMaintain,
		Foods:         sampleSelections(),
	}
}

type quizFixture struct {
	svc      *QuizService
	sessions *MockSessionRepository
	leads    *MockLeadRepository
	renderer *MockRenderer
	archive  *MockArchive
}

func newQuizFixture(t *testing.T, withArchive bool) *quizFixture {
	t.Helper()
	f := &quizFixture{
		sessions: NewMockSessionRepository(),
		leads:    &MockLeadRepository{},
		renderer: &MockRenderer{},
	}
	deps := QuizDependencies{
		Catalog:  newTestCatalog(),
		Sessions: f.sessions,
		Leads:    f.leads,
		Renderer: f.renderer,
	}
	if withArchive {
		f.archive = NewMockArchive()
		deps.Archive = f.archive
	}

	svc, err := NewQuizService(deps, QuizServiceConfig{})
	require.NoError(t, err)

	ids := []string{"session-1", "doc-1", "doc-2"}
	svc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func TestNewQuizService(t *testing.T) {
	t.Run("nil catalog becomes empty catalog", func(t *testing.T) {
		svc, err := NewQuizService(QuizDependencies{}, QuizServiceConfig{})
		require.NoError(t, err)
		assert.NotNil(t, svc.Catalog())
		assert.Empty(t, svc.Catalog().Foods)
	})

	t.Run("invalid ratios are rejected", func(t *testing.T) {
		_, err := NewQuizService(QuizDependencies{}, QuizServiceConfig{
			SlotRatios: []SlotRatio{{domain.SlotBreakfast, 1}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidSlotRatios)
	})
}

func TestBuildPlan(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, false)

	t.Run("returns target and plan", func(t *testing.T) {
		got, err := f.svc.BuildPlan(ctx, sampleSubmission())
		require.NoError(t, err)
		assert.Equal(t, 2798, got.Target.TargetKcal)
		assert.Equal(t, 699, got.Plan[domain.SlotBreakfast].MetaKcal)
		assert.Len(t, got.Plan[domain.SlotLunch].Options, 2)
	})

	t.Run("nil submission", func(t *testing.T) {
		_, err := f.svc.BuildPlan(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("unknown goal", func(t *testing.T) {
		sub := sampleSubmission()
		sub.Goal = "shred"
		_, err := f.svc.BuildPlan(ctx, sub)
		assert.ErrorIs(t, err, domain.ErrUnknownGoal)
	})
}

func TestSaveSession(t *testing.T) {
	ctx := context.Background()

	t.Run("records lead and stores session", func(t *testing.T) {
		f := newQuizFixture(t, false)
		id, err := f.svc.SaveSession(ctx, sampleSubmission())
		require.NoError(t, err)
		assert.Equal(t, "session-1", id)

		require.Len(t, f.leads.leads, 1)
		assert.Equal(t, "ana@example.com", f.leads.leads[0].Email)
		assert.Equal(t, domain.GoalMaintain, f.leads.leads[0].Goal)

		stored := f.sessions.data["session-1"]
		require.NotNil(t, stored)
		assert.Equal(t, "Ana", stored.Submission.Name)
		assert.Equal(t, 2024, stored.CreatedAt.Year())
	})

	t.Run("lead failure does not fail the session", func(t *testing.T) {
		f := newQuizFixture(t, false)
		f.leads.appendErr = errors.New("disk full")
		id, err := f.svc.SaveSession(ctx, sampleSubmission())
		require.NoError(t, err)
		assert.Contains(t, f.sessions.data, id)
	})

	t.Run("session failure is returned", func(t *testing.T) {
		f := newQuizFixture(t, false)
		f.sessions.saveErr = domain.ErrCacheUnavailable
		_, err := f.svc.SaveSession(ctx, sampleSubmission())
		assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	})
}

func TestBuildReport(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, false)
	id, err := f.svc.SaveSession(ctx, sampleSubmission())
	require.NoError(t, err)

	t.Run("computes the full report", func(t *testing.T) {
		report, err := f.svc.BuildReport(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, id, report.SessionID)
		assert.Equal(t, 2798, report.Target.TargetKcal)
		assert.Equal(t, 1350, report.Analysis.TotalConsumedKcal)
		assert.Len(t, report.Analysis.Recommendations, 3)
		assert.Equal(t, 48, report.ConsumptionPercent)
		assert.Equal(t, 0, report.CaloriesToBurn)
		assert.Equal(t, 2800.0, report.DailyWaterMl)
		assert.InDelta(t, 74.99, report.IdealWeightKg, 0.01)
		assert.Len(t, report.Plan, 4)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := f.svc.BuildReport(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestRenderPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("renders without archive", func(t *testing.T) {
		f := newQuizFixture(t, false)
		id, _ := f.svc.SaveSession(ctx, sampleSubmission())

		data, docID, err := f.svc.RenderPDF(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.3 test", string(data))
		assert.Empty(t, docID)
		require.NotNil(t, f.renderer.rendered)
		assert.Equal(t, id, f.renderer.rendered.SessionID)
	})

	t.Run("archives rendered documents", func(t *testing.T) {
		f := newQuizFixture(t, true)
		id, _ := f.svc.SaveSession(ctx, sampleSubmission())

		_, docID, err := f.svc.RenderPDF(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "doc-1", docID)

		got, err := f.svc.ArchivedPDF(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.3 test", string(got))
	})

	t.Run("archive failure still returns the document", func(t *testing.T) {
		f := newQuizFixture(t, true)
		f.archive.putErr = errors.New("bucket gone")
		id, _ := f.svc.SaveSession(ctx, sampleSubmission())

		data, docID, err := f.svc.RenderPDF(ctx, id)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
		assert.Empty(t, docID)
	})

	t.Run("renderer failure", func(t *testing.T) {
		f := newQuizFixture(t, false)
		f.renderer.err = errors.New("font missing")
		id, _ := f.svc.SaveSession(ctx, sampleSubmission())

		_, _, err := f.svc.RenderPDF(ctx, id)
		assert.Error(t, err)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newQuizFixture(t, false)
		_, _, err := f.svc.RenderPDF(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestArchivedPDF(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unsafe ids", func(t *testing.T) {
		f := newQuizFixture(t, true)
		for _, id := range []string{"", "../etc/passwd", "a b", "doc.pdf"} {
			_, err := f.svc.ArchivedPDF(ctx, id)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest, "id %q", id)
		}
	})

	t.Run("without archive", func(t *testing.T) {
		f := newQuizFixture(t, false)
		_, err := f.svc.ArchivedPDF(ctx, "abc-123")
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("missing document", func(t *testing.T) {
		f := newQuizFixture(t, true)
		_, err := f.svc.ArchivedPDF(ctx, "abc_123")
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})
}

func TestListLeads(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, false)
	_, err := f.svc.SaveSession(ctx, sampleSubmission())
	require.NoError(t, err)

	leads, err := f.svc.ListLeads(ctx)
	require.NoError(t, err)
	assert.Len(t, leads, 1)

	svc, _ := NewQuizService(QuizDependencies{}, QuizServiceConfig{})
	_, err = svc.ListLeads(ctx)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

// MockLinkingArchive is a MockArchive that also hands out links
type MockLinkingArchive struct {
	*MockArchive
}

func (m *MockLinkingArchive) URL(ctx context.Context, id string) (string, error) {
	return "https://files.example.com/" + id, nil
}

func TestArchivedPDFURL(t *testing.T) {
	ctx := context.Background()

	t.Run("plain archive has no links", func(t *testing.T) {
		f := newQuizFixture(t, true)
		url, err := f.svc.ArchivedPDFURL(ctx, "doc-1")
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("linking archive", func(t *testing.T) {
		svc, err := NewQuizService(QuizDependencies{
			Archive: &MockLinkingArchive{MockArchive: NewMockArchive()},
		}, QuizServiceConfig{})
		require.NoError(t, err)

		url, err := svc.ArchivedPDFURL(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "https://files.example.com/doc-1", url)
	})

	t.Run("invalid id", func(t *testing.T) {
		f := newQuizFixture(t, true)
		_, err := f.svc.ArchivedPDFURL(ctx, "../x")
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}
