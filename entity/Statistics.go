package entity

import (
	"gorm.io/gorm"
)

// Statistics is a singleton row of all-time totals, refreshed periodically.
type Statistics struct {
	gorm.Model
	TotalRides    int64   `json:"totalRides"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalDistance float64 `json:"totalDistance"`
	TotalCO2      float64 `json:"totalCo2"`
}

// MonthlyStatistics is a rollup keyed by (month, year); recomputation upserts.
type MonthlyStatistics struct {
	gorm.Model
	Month int `gorm:"uniqueIndex:idx_month_year;not null" json:"month"`
	Year  int `gorm:"uniqueIndex:idx_month_year;not null" json:"year"`

	TotalRides    int64   `json:"totalRides"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalDistance float64 `json:"totalDistance"`
	TotalCO2      float64 `json:"totalCo2"`
}
