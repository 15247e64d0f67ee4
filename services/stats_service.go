package services

import (
	"context"
	"time"

	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/pkg/logger"
	"github.com/insaroule/insaroule/repository"
)

// StatsService recomputes aggregate counters: a singleton all-time row plus
// one rollup per (month, year). Recomputation is idempotent, so running it
// more often than needed is harmless.
type StatsService struct {
	repo     *repository.StatsRepository
	rideRepo *repository.RideRepository
}

func NewStatsService(repo *repository.StatsRepository, rideRepo *repository.RideRepository) *StatsService {
	return &StatsService{repo: repo, rideRepo: rideRepo}
}

func (s *StatsService) Compute(now time.Time) error {
	totalRides, err := s.rideRepo.CountAll()
	if err != nil {
		return err
	}
	totalUsers, err := s.repo.CountUsers()
	if err != nil {
		return err
	}

	if err := s.repo.UpsertTotals(&entity.Statistics{
		TotalRides: totalRides,
		TotalUsers: totalUsers,
	}); err != nil {
		return err
	}

	monthRides, err := s.rideRepo.CountInMonth(now.Year(), int(now.Month()))
	if err != nil {
		return err
	}
	return s.repo.UpsertMonthly(&entity.MonthlyStatistics{
		Month:      int(now.Month()),
		Year:       now.Year(),
		TotalRides: monthRides,
		TotalUsers: totalUsers,
	})
}

func (s *StatsService) Totals() (*entity.Statistics, error) {
	return s.repo.Totals()
}

// Run recomputes on a fixed interval until the context is cancelled.
func (s *StatsService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.Compute(time.Now()); err != nil {
		logger.L().Errorw("stats compute failed", "err", err)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := s.Compute(now); err != nil {
				logger.L().Errorw("stats compute failed", "err", err)
			}
		}
	}
}
