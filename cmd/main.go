package main

import (
	"context"
	"github.com/afrainity/cv-portal/internal/clients/identity"
	"github.com/afrainity/cv-portal/internal/clients/intake"
	"github.com/afrainity/cv-portal/internal/config"
	"github.com/afrainity/cv-portal/internal/entities"
	"github.com/afrainity/cv-portal/internal/logger"
	"github.com/afrainity/cv-portal/internal/metrics"
	"github.com/afrainity/cv-portal/internal/repositories"
	"github.com/afrainity/cv-portal/internal/server"
	"github.com/afrainity/cv-portal/internal/services"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobPostsRepository(dbContext.DB)
	cvRecords := repositories.NewCVRecordsRepository(dbContext.DB)
	titles := repositories.NewCachedJobTitles(jobs)

	intakeClient := intake.NewClient(cfg.Intake.URL)
	if cfg.Intake.MaxRequestsPerSecond > 0 {
		intakeClient.SetRateLimit(cfg.Intake.MaxRequestsPerSecond)
	}

	scale, err := entities.NewRatingScale(cfg.Review.RatingScale)
	if err != nil {
		log.Fatalf("can't create rating scale: %v", err)
	}

	bus := EventBus.New()

	auditor, err := services.NewSubmissionAuditor(bus)
	if err != nil {
		log.Fatalf("can't create submission auditor: %v", err)
	}
	defer auditor.Stop()

	submitter := services.NewApplicationSubmitter(bus, jobs, intakeClient, string(cfg.Intake.FormMode))
	reviewer := services.NewCVReviewer(cvRecords, titles, cfg.Review)
	aggregator := services.NewStatsAggregator(scale)

	sessions := identity.NewCachedVerifier(identity.NewClient(cfg.Identity.VerifyURL), cfg.Identity.SessionExpiry)

	srv := server.NewServer(jobs, submitter, reviewer, aggregator, sessions)

	log.Infof("portal listening on port %d", cfg.Server.Port)
	if err := srv.Run(ctx, cfg.Server.Port); err != nil {
		log.Errorf("server stopped: %v", err)
	}
	log.Info("Services stopped.")
}
