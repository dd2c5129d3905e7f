// Package scheduler runs the unattended archive sweep: on a configurable
// cron schedule every project's final-year statements are rendered and
// uploaded to the remote archive.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/config"
	"github.com/anupkhare/finreport/internal/render/pdf"
	"github.com/anupkhare/finreport/internal/service/projects"
	"github.com/anupkhare/finreport/internal/service/reports"
)

const sweepTimeout = 5 * time.Minute

// Scheduler manages the scheduled archive sweep.
type Scheduler struct {
	cron        *cron.Cron
	projectsSvc *projects.Service
	reportsSvc  *reports.Service
	cfg         config.ReportingConfig
	logger      *zap.Logger
}

// New creates a scheduler instance. The cron runs in the configured
// timezone, falling back to the host's local time when the zone cannot be
// loaded.
func New(cfg config.ReportingConfig, projectsSvc *projects.Service, reportsSvc *reports.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("unknown timezone, scheduling in local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:        cron.New(opts...),
		projectsSvc: projectsSvc,
		reportsSvc:  reportsSvc,
		cfg:         cfg,
		logger:      logger,
	}
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.archiveSweep); err != nil {
		s.logger.Error("failed to schedule archive sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// archiveSweep exports the final financial year's statements of every
// project. Individual failures are logged and skipped so one broken project
// never blocks the rest.
func (s *Scheduler) archiveSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	list, err := s.projectsSvc.List(ctx)
	if err != nil {
		s.logger.Error("archive sweep failed listing projects", zap.Error(err))
		return
	}
	s.logger.Info("archive sweep started", zap.Int("projects", len(list)))

	for _, project := range list {
		year := project.FinancialYearEnd
		for _, reportType := range []string{reports.TypeProfitLoss, reports.TypeBalanceSheet} {
			if _, err := s.reportsSvc.Export(ctx, project.ID, reportType, year, pdf.Options{}); err != nil {
				s.logger.Warn("archive sweep export failed",
					zap.String("project_id", project.ID),
					zap.String("report_type", reportType),
					zap.Int("year", year),
					zap.Error(err))
			}
		}
	}

	s.logger.Info("archive sweep finished")
}
