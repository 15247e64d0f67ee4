package controllers

import (
	"errors"

	"github.com/insaroule/insaroule/pkg/resp"
	"github.com/insaroule/insaroule/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatsController struct {
	service *services.StatsService
}

func NewStatsController(s *services.StatsService) *StatsController {
	return &StatsController{service: s}
}

// GET /stats: public all-time totals
func (s *StatsController) Totals(c *gin.Context) {
	totals, err := s.service.Totals()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.OK(c, gin.H{"totalRides": 0, "totalUsers": 0})
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, totals)
}
