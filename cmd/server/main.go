package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nutriquiz/backend/config"
	httpDelivery "github.com/nutriquiz/backend/internal/delivery/http"
	"github.com/nutriquiz/backend/internal/domain"
	"github.com/nutriquiz/backend/internal/infrastructure/archive"
	"github.com/nutriquiz/backend/internal/infrastructure/cache"
	"github.com/nutriquiz/backend/internal/infrastructure/catalog"
	"github.com/nutriquiz/backend/internal/infrastructure/leads"
	"github.com/nutriquiz/backend/internal/infrastructure/pdf"
	"github.com/nutriquiz/backend/internal/infrastructure/session"
	"github.com/nutriquiz/backend/internal/logger"
	"github.com/nutriquiz/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync(zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	zl.Info("starting NutriQuiz backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("session_store", cfg.Session.Store),
		zap.String("lead_driver", cfg.Leads.Driver),
		zap.String("pdf_archive", cfg.PDF.Archive),
	)

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				zl.Warn("failed to close resource", zap.Error(err))
			}
		}
	}()

	// Initialize infrastructure dependencies
	foods := catalog.LoadOrEmpty(ctx, catalogSource(cfg.Catalog, zl), zl)

	sessionCache, err := newSessionCache(ctx, cfg.Session)
	if err != nil {
		return err
	}
	closers = append(closers, sessionCache)

	leadRepo, leadCloser, err := newLeadRepository(cfg.Leads)
	if err != nil {
		return err
	}
	if leadCloser != nil {
		closers = append(closers, leadCloser)
	}

	documentArchive, err := newDocumentArchive(ctx, cfg.PDF)
	if err != nil {
		return err
	}

	// Initialize usecase layer
	quiz, err := usecase.NewQuizService(usecase.QuizDependencies{
		Catalog:  foods,
		Sessions: session.NewStore(sessionCache, cfg.Session.TTL),
		Leads:    leadRepo,
		Renderer: pdf.NewRenderer(),
		Archive:  documentArchive,
		Logger:   zl,
	}, usecase.QuizServiceConfig{
		SubstitutionPolicy: substitutionPolicy(cfg.Engine.SubstitutionTriggers),
	})
	if err != nil {
		return fmt.Errorf("create quiz service: %w", err)
	}

	admin := usecase.NewAdminService(usecase.AdminServiceConfig{
		Username:     cfg.Admin.Username,
		PasswordHash: cfg.Admin.PasswordHash,
		JWTSecret:    cfg.Admin.JWTSecret,
		TokenTTL:     cfg.Admin.TokenTTL,
	})
	if !admin.Enabled() {
		zl.Info("admin API disabled (no credentials configured)")
	}

	// Setup router
	handler := httpDelivery.NewHandler(quiz, admin, zl)
	router := httpDelivery.SetupRouter(cfg, handler, zl)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zl.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func catalogSource(cfg config.CatalogConfig, zl *zap.Logger) domain.CatalogSource {
	if cfg.Source == "http" {
		return catalog.NewHTTPSource(cfg.URL, cfg.Timeout, zl)
	}
	return catalog.NewFileSource(cfg.Path)
}

type sessionCache interface {
	domain.CacheRepository
	io.Closer
}

func newSessionCache(ctx context.Context, cfg config.SessionConfig) (sessionCache, error) {
	if cfg.Store == "redis" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect session store: %w", err)
		}
		return rc, nil
	}
	return cache.NewMemoryCache(10 * time.Minute), nil
}

func newLeadRepository(cfg config.LeadsConfig) (domain.LeadRepository, io.Closer, error) {
	switch cfg.Driver {
	case "postgres", "sqlite":
		repo, err := leads.Open(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	default:
		repo, err := leads.NewCSVRepository(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, nil, nil
	}
}

func newDocumentArchive(ctx context.Context, cfg config.PDFConfig) (domain.DocumentArchive, error) {
	switch cfg.Archive {
	case "local":
		return archive.NewLocalStore(cfg.Dir)
	case "s3":
		return archive.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.PresignTTL)
	default:
		return nil, nil
	}
}

// substitutionPolicy turns the validated trigger names from config into an engine policy
func substitutionPolicy(triggers []string) usecase.SubstitutionPolicy {
	categories := make([]domain.Category, 0, len(triggers))
	for _, t := range triggers {
		categories = append(categories, domain.Category(t))
	}
	return usecase.SubstitutionPolicy{TriggerCategories: categories}
}
