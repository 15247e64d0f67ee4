package repository

import (
	"github.com/insaroule/insaroule/entity"

	"gorm.io/gorm"
)

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) CountUsers() (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Count(&count).Error
	return count, err
}

// UpsertTotals maintains the singleton all-time row.
func (r *StatsRepository) UpsertTotals(s *entity.Statistics) error {
	var existing entity.Statistics
	err := r.DB.First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(s).Error
	}
	if err != nil {
		return err
	}
	return r.DB.Model(&existing).Updates(map[string]any{
		"total_rides":    s.TotalRides,
		"total_users":    s.TotalUsers,
		"total_distance": s.TotalDistance,
		"total_co2":      s.TotalCO2,
	}).Error
}

// UpsertMonthly is idempotent on (month, year).
func (r *StatsRepository) UpsertMonthly(s *entity.MonthlyStatistics) error {
	var existing entity.MonthlyStatistics
	err := r.DB.Where("month = ? AND year = ?", s.Month, s.Year).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(s).Error
	}
	if err != nil {
		return err
	}
	return r.DB.Model(&existing).Updates(map[string]any{
		"total_rides":    s.TotalRides,
		"total_users":    s.TotalUsers,
		"total_distance": s.TotalDistance,
		"total_co2":      s.TotalCO2,
	}).Error
}

func (r *StatsRepository) Totals() (*entity.Statistics, error) {
	var s entity.Statistics
	if err := r.DB.First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
