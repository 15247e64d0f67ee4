package controllers

import (
	"net/http"

	"github.com/insaroule/insaroule/geo"
	"github.com/insaroule/insaroule/pkg/resp"

	"github.com/gin-gonic/gin"
)

// GeoController fronts the external geocoding/routing service. Upstream
// failures degrade to empty or error payloads, never a 5xx.
type GeoController struct {
	client *geo.Client
}

func NewGeoController(client *geo.Client) *GeoController {
	return &GeoController{client: client}
}

// GET /geo/autocomplete?q=
func (g *GeoController) Autocomplete(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		resp.BadRequest(c, "missing query")
		return
	}
	resp.OK(c, g.client.Autocomplete(c.Request.Context(), q))
}

// GET /geo/route?start=lng,lat&end=lng,lat
func (g *GeoController) Route(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		resp.BadRequest(c, "missing start or end")
		return
	}

	doc, routeErr := g.client.Route(c.Request.Context(), start, end)
	if routeErr != nil {
		// degraded, not fatal: the client shows "no route" and moves on
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": routeErr.Error, "status_code": routeErr.StatusCode})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": doc})
}
