package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/pkg/resp"
	"github.com/insaroule/insaroule/services"
	"github.com/insaroule/insaroule/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RideController struct {
	service *services.RideService
}

func NewRideController(s *services.RideService) *RideController {
	return &RideController{service: s}
}

type StopoverRequest struct {
	Name      string  `json:"name" binding:"required,max=50"`
	Fulltext  string  `json:"fulltext" binding:"required,max=100"`
	Street    string  `json:"street" binding:"max=200"`
	Zipcode   string  `json:"zipcode" binding:"max=10"`
	City      string  `json:"city" binding:"max=100"`
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

// RideStep1Request carries route, schedule and stopovers. The d_/a_ prefixes
// are departure/arrival, matching what the geocoding autocomplete fills in.
type RideStep1Request struct {
	DepFulltext string  `json:"d_fulltext" binding:"required,max=100"`
	DepStreet   string  `json:"d_street" binding:"max=200"`
	DepZipcode  string  `json:"d_zipcode" binding:"max=10"`
	DepCity     string  `json:"d_city" binding:"max=100"`
	DepLat      float64 `json:"d_latitude" binding:"gte=-90,lte=90"`
	DepLng      float64 `json:"d_longitude" binding:"gte=-180,lte=180"`

	ArrFulltext string  `json:"a_fulltext" binding:"required,max=100"`
	ArrStreet   string  `json:"a_street" binding:"max=200"`
	ArrZipcode  string  `json:"a_zipcode" binding:"max=10"`
	ArrCity     string  `json:"a_city" binding:"max=100"`
	ArrLat      float64 `json:"a_latitude" binding:"gte=-90,lte=90"`
	ArrLng      float64 `json:"a_longitude" binding:"gte=-180,lte=180"`

	Geometry          string            `json:"r_geometry" binding:"required"`
	DurationHours     float64           `json:"r_duration" binding:"required,gt=0"`
	DepartureDatetime time.Time         `json:"departure_datetime" binding:"required"`
	Stopovers         []StopoverRequest `json:"stopovers" binding:"omitempty,dive"`
}

type RideStep2Request struct {
	VehicleID     uint   `json:"vehicleId" binding:"required"`
	SeatsOffered  uint   `json:"seatsOffered" binding:"required,min=1"`
	PricePerSeat  int64  `json:"pricePerSeat" binding:"gte=0"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=CASH ONLINE"`
	Comment       string `json:"comment" binding:"max=500"`
}

// POST /rides/draft/step1: validates and parks the payload in the session;
// nothing is persisted until step 2 finalizes.
func (r *RideController) SubmitStep1(c *gin.Context) {
	var req RideStep1Request
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	draft := services.DraftStep1{
		DepFulltext: req.DepFulltext, DepStreet: req.DepStreet,
		DepZipcode: req.DepZipcode, DepCity: req.DepCity,
		DepLat: req.DepLat, DepLng: req.DepLng,
		ArrFulltext: req.ArrFulltext, ArrStreet: req.ArrStreet,
		ArrZipcode: req.ArrZipcode, ArrCity: req.ArrCity,
		ArrLat: req.ArrLat, ArrLng: req.ArrLng,
		Geometry:          req.Geometry,
		DurationHours:     req.DurationHours,
		DepartureDatetime: req.DepartureDatetime,
	}
	for _, s := range req.Stopovers {
		draft.Stopovers = append(draft.Stopovers, services.DraftStopover{
			Name: s.Name, Fulltext: s.Fulltext, Street: s.Street,
			Zipcode: s.Zipcode, City: s.City, Lat: s.Latitude, Lng: s.Longitude,
		})
	}

	if errs := draft.Validate(); len(errs) > 0 {
		resp.ValidationFailed(c, errs)
		return
	}

	if err := services.SaveDraft(sessions.Default(c), &draft); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"next": "step2"})
}

// POST /rides/draft/step2: requires step-1 data in the session, then
// finalizes the ride.
func (r *RideController) SubmitStep2(c *gin.Context) {
	session := sessions.Default(c)
	draft, err := services.LoadDraft(session)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if draft == nil {
		// recoverable precondition failure, not an error: back to step 1
		resp.Conflict(c, "step one is not complete", "step1")
		return
	}

	var req RideStep2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	ride, err := r.service.Finalize(utils.CurrentUserID(c), draft, &services.Step2Data{
		VehicleID:     req.VehicleID,
		SeatsOffered:  req.SeatsOffered,
		PricePerSeat:  req.PricePerSeat,
		PaymentMethod: req.PaymentMethod,
		Comment:       req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrIdenticalLocations):
			resp.ValidationFailed(c, map[string]string{"a_fulltext": err.Error()})
		case errors.Is(err, services.ErrVehicleNotOwned):
			resp.ValidationFailed(c, map[string]string{"vehicleId": err.Error()})
		default:
			resp.ServerError(c, err)
		}
		return
	}

	if err := services.ClearDraft(session); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, ride)
}

// DELETE /rides/draft: explicit abandon
func (r *RideController) AbandonDraft(c *gin.Context) {
	if err := services.ClearDraft(sessions.Default(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}

// GET /rides
func (r *RideController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	rides, err := r.service.List(limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, rides)
}

// GET /rides/:id
func (r *RideController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid ride id")
		return
	}
	ride, err := r.service.Detail(uint(id))
	if err != nil {
		resp.NotFound(c, "ride not found")
		return
	}
	resp.OK(c, gin.H{"ride": ride, "steps": ride.Steps})
}

// DELETE /rides/:id: driver only, cascades
func (r *RideController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid ride id")
		return
	}
	err = r.service.Delete(uint(id), utils.CurrentUserID(c))
	switch {
	case err == nil:
		resp.OK(c, gin.H{"deleted": true})
	case errors.Is(err, services.ErrNotRideDriver):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "ride not found")
	default:
		resp.ServerError(c, err)
	}
}
