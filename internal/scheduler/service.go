package scheduler

import (
	"github.com/brandlens/visibility-bot/internal/config"
	"github.com/brandlens/visibility-bot/internal/scanning"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service handles scheduling of visibility scans
type Service struct {
	config          *config.Config
	scanningService *scanning.Service
	cron            *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, scanningService *scanning.Service) *Service {
	return &Service{
		config:          cfg,
		scanningService: scanningService,
		cron:            cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled scans
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.ScanSchedule {
	case "daily":
		// Run daily at 9 AM UTC
		cronExpression = "0 0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		cronExpression = "0 0 9 * * MON"
	default:
		// Default to weekly
		cronExpression = "0 0 9 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled visibility scan")
		if err := s.scanningService.RunScan(); err != nil {
			logrus.Errorf("Scheduled visibility scan failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	if s.config.EnableQuickChecks {
		// Quick score-drop checks every 12 hours, between full scans
		_, err = s.cron.AddFunc("0 0 */12 * * *", func() {
			logrus.Info("Starting quick visibility check (12-hour frequency)")
			if err := s.scanningService.RunQuickCheck(); err != nil {
				logrus.Errorf("Quick visibility check failed: %v", err)
			}
		})

		if err != nil {
			return err
		}
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule (quick checks enabled: %v)", s.config.ScanSchedule, s.config.EnableQuickChecks)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
