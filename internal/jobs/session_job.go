package jobs

import (
	"context"

	"carwash-booking/internal/data/repository"

	"go.uber.org/zap"
)

// sessionCleanupJob prunes expired and revoked session rows.
type sessionCleanupJob struct {
	repo *repository.Repository
	log  *zap.Logger
}

func newSessionCleanupJob(repo *repository.Repository, log *zap.Logger) *sessionCleanupJob {
	return &sessionCleanupJob{
		repo: repo,
		log:  log.With(zap.String("job", "session_cleanup")),
	}
}

func (j *sessionCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := j.repo.Session.CleanExpiredSessions(ctx); err != nil {
		j.log.Error("Failed to clean expired sessions", zap.Error(err))
		return
	}

	j.log.Info("Expired sessions cleaned")
}
