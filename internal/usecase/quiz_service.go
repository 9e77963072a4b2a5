package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriquiz/backend/internal/domain"
)

// QuizServiceConfig holds configuration for the quiz service
type QuizServiceConfig struct {
	SlotRatios         []SlotRatio
	SubstitutionPolicy SubstitutionPolicy
}

// QuizDependencies are the adapters the quiz service talks to.
// Archive is optional; without it PDFs are rendered on demand only.
type QuizDependencies struct {
	Catalog  *domain.Catalog
	Sessions domain.SessionRepository
	Leads    domain.LeadRepository
	Renderer domain.DocumentRenderer
	Archive  domain.DocumentArchive
	Logger   *zap.Logger
}

// QuizService runs the nutrition engine for quiz submissions and keeps their sessions
type QuizService struct {
	catalog  *domain.Catalog
	sessions domain.SessionRepository
	leads    domain.LeadRepository
	renderer domain.DocumentRenderer
	archive  domain.DocumentArchive
	composer *MealComposer
	advisor  *SubstitutionAdvisor
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewQuizService creates a new quiz service with dependencies
func NewQuizService(deps QuizDependencies, config QuizServiceConfig) (*QuizService, error) {
	catalog := deps.Catalog
	if catalog == nil {
		catalog = domain.EmptyCatalog()
	}

	composer, err := NewMealComposer(catalog, config.SlotRatios)
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &QuizService{
		catalog:  catalog,
		sessions: deps.Sessions,
		leads:    deps.Leads,
		renderer: deps.Renderer,
		archive:  deps.Archive,
		composer: composer,
		advisor:  NewSubstitutionAdvisor(catalog, config.SubstitutionPolicy),
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Catalog returns the food catalog the engine runs on
func (s *QuizService) Catalog() *domain.Catalog {
	return s.catalog
}

// BuildPlan computes the calorie target and the meal plan for a submission
func (s *QuizService) BuildPlan(ctx context.Context, submission *domain.QuizSubmission) (*domain.PlanResponse, error) {
	if submission == nil {
		return nil, domain.ErrInvalidRequest
	}

	target, err := ComputeTarget(submission.Profile())
	if err != nil {
		return nil, err
	}

	return &domain.PlanResponse{
		Target: target,
		Plan:   s.composer.ComposePlan(target.TargetKcal, submission.Foods),
	}, nil
}

// SaveSession records the lead and stores the submission under a new session id.
// A failing lead log does not fail the session.
func (s *QuizService) SaveSession(ctx context.Context, submission *domain.QuizSubmission) (string, error) {
	if submission == nil {
		return "", domain.ErrInvalidRequest
	}
	now := s.now()

	if s.leads != nil {
		if err := s.leads.Append(ctx, domain.NewLead(submission, now)); err != nil {
			s.logger.Warn("failed to record lead", zap.String("email", submission.Email), zap.Error(err))
		}
	}

	session := &domain.Session{
		ID:         s.newID(),
		Submission: *submission,
		CreatedAt:  now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("session saved", zap.String("session_id", session.ID), zap.String("goal", string(submission.Goal)))
	return session.ID, nil
}

// BuildReport recomputes everything the results page shows for a session
func (s *QuizService) BuildReport(ctx context.Context, sessionID string) (*domain.PlanReport, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	submission := session.Submission

	target, err := ComputeTarget(submission.Profile())
	if err != nil {
		return nil, err
	}
	analysis := s.advisor.AnalyzeConsumption(submission.Foods)

	return &domain.PlanReport{
		SessionID:          session.ID,
		Submission:         submission,
		Target:             target,
		Plan:               s.composer.ComposePlan(target.TargetKcal, submission.Foods),
		Analysis:           analysis,
		IdealWeightKg:      IdealWeight(submission.HeightCm, submission.Sex),
		DailyWaterMl:       DailyWaterMl(submission.WeightKg),
		ConsumptionPercent: ConsumptionPercent(analysis.TotalConsumedKcal, target.TargetKcal),
		CaloriesToBurn:     CaloriesToBurn(analysis.TotalConsumedKcal, target.TargetKcal),
	}, nil
}

// RenderPDF renders the report of a session. When an archive is configured the document is
// also stored and its id returned; archiving failures are logged and leave the id empty.
func (s *QuizService) RenderPDF(ctx context.Context, sessionID string) ([]byte, string, error) {
	report, err := s.BuildReport(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.renderer.Render(report)
	if err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}

	if s.archive == nil {
		return data, "", nil
	}

	documentID := s.newID()
	if err := s.archive.Put(ctx, documentID, data); err != nil {
		s.logger.Warn("failed to archive pdf", zap.String("session_id", sessionID), zap.Error(err))
		return data, "", nil
	}
	return data, documentID, nil
}

// ArchivedPDF returns a previously archived document
func (s *QuizService) ArchivedPDF(ctx context.Context, documentID string) ([]byte, error) {
	if !domain.ValidDocumentID(documentID) {
		return nil, domain.ErrInvalidRequest
	}
	if s.archive == nil {
		return nil, domain.ErrDocumentNotFound
	}
	return s.archive.Get(ctx, documentID)
}

// ArchivedPDFURL returns a direct link to an archived document when the archive supports it,
// or "" when the document has to be served through ArchivedPDF
func (s *QuizService) ArchivedPDFURL(ctx context.Context, documentID string) (string, error) {
	if !domain.ValidDocumentID(documentID) {
		return "", domain.ErrInvalidRequest
	}
	linker, ok := s.archive.(domain.DocumentLinker)
	if !ok {
		return "", nil
	}
	return linker.URL(ctx, documentID)
}

// ListLeads returns the recorded leads
func (s *QuizService) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	if s.leads == nil {
		return nil, fmt.Errorf("%w: lead repository", domain.ErrNotConfigured)
	}
	return s.leads.List(ctx)
}
