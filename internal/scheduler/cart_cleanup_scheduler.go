package scheduler

import (
	"time"

	"github.com/amanabooks/bookstore-backend/internal/app/service"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartCleanupScheduler periodically purges anonymous carts that have gone
// idle. Nothing on the client side ever deletes an abandoned cart, so the
// table only shrinks from here.
type CartCleanupScheduler struct {
	cron        *cron.Cron
	cartService service.CartService
	schedule    string
	idleTTL     time.Duration
}

func NewCartCleanupScheduler(cartService service.CartService, schedule string, idleTTL time.Duration) *CartCleanupScheduler {
	return &CartCleanupScheduler{
		cron:        cron.New(),
		cartService: cartService,
		schedule:    schedule,
		idleTTL:     idleTTL,
	}
}

func (s *CartCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled cart cleanup", map[string]interface{}{
			"idle_ttl": s.idleTTL.String(),
		})

		purged, err := s.cartService.PurgeIdleCarts(s.idleTTL)
		if err != nil {
			logger.Error("Scheduled cart cleanup failed", err)
			return
		}

		logger.Info("Scheduled cart cleanup finished", map[string]interface{}{
			"purged": purged,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for cart cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cart cleanup scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})

	return nil
}

func (s *CartCleanupScheduler) Stop() {
	logger.Info("Stopping cart cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cart cleanup scheduler stopped", nil)
}
