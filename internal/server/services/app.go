package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filekeeper/internal/server/sessions"
)

// StatusReport holds boolean liveness of the backing stores.
type StatusReport struct {
	Sessions bool `json:"sessions"`
	DB       bool `json:"db"`
}

// StatsReport holds total user and entry counts.
type StatsReport struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// AppService exposes the read-only liveness and stats operations.
type AppService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    sessions.Store
	logger      logging.Logger
}

// NewAppService constructs an AppService from its collaborators.
func NewAppService(db *sql.DB, m repomanager.RepositoryManager, st sessions.Store, logger logging.Logger) *AppService {
	return &AppService{db: db, repomanager: m, sessions: st, logger: logger}
}

// Status pings the session and metadata stores. It never fails: an
// unreachable store simply reports false.
func (s *AppService) Status(ctx context.Context) *StatusReport {
	report := &StatusReport{}
	if err := s.sessions.Ping(ctx); err == nil {
		report.Sessions = true
	}
	if err := s.db.PingContext(ctx); err == nil {
		report.DB = true
	}
	return report
}

// Stats returns the total number of users and entries.
func (s *AppService) Stats(ctx context.Context) (*StatsReport, error) {
	usersRepo := s.repomanager.Users(s.db)
	entriesRepo := s.repomanager.Entries(s.db)

	userCount, err := usersRepo.Count(ctx)
	if err != nil {
		s.logger.Error(ctx, "user count failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}
	entryCount, err := entriesRepo.Count(ctx)
	if err != nil {
		s.logger.Error(ctx, "entry count failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}

	return &StatsReport{Users: userCount, Files: entryCount}, nil
}
