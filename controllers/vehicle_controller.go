package controllers

import (
	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/pkg/resp"
	"github.com/insaroule/insaroule/repository"
	"github.com/insaroule/insaroule/utils"

	"github.com/gin-gonic/gin"
)

type VehicleController struct {
	repo *repository.VehicleRepository
}

func NewVehicleController(repo *repository.VehicleRepository) *VehicleController {
	return &VehicleController{repo: repo}
}

type CreateVehicleRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Seats uint   `json:"seats" binding:"required,min=1"`
	Color string `json:"color" binding:"max=50"`
}

// POST /vehicles
func (v *VehicleController) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	vehicle := entity.Vehicle{
		Name:     req.Name,
		Seats:    req.Seats,
		Color:    req.Color,
		DriverID: utils.CurrentUserID(c),
	}
	if err := v.repo.Create(&vehicle); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, vehicle)
}

// GET /vehicles: own vehicles only
func (v *VehicleController) List(c *gin.Context) {
	vehicles, err := v.repo.ListByDriver(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, vehicles)
}
