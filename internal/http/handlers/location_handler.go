// README: Location catalog and agent allow-list handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mawad/internal/http/middleware"
	"mawad/internal/modules/location"
)

type LocationHandler struct {
	locations *location.Service
}

func NewLocationHandler(locations *location.Service) *LocationHandler {
	return &LocationHandler{locations: locations}
}

func (h *LocationHandler) ListAll(c *gin.Context) {
	locs, err := h.locations.ListAll(c.Request.Context())
	if err != nil {
		writeLocationError(c, err)
		return
	}
	c.JSON(http.StatusOK, locs)
}

// ListMine returns the calling agent's own allow-list.
func (h *LocationHandler) ListMine(c *gin.Context) {
	locs, err := h.locations.ListByAgent(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeLocationError(c, err)
		return
	}
	c.JSON(http.StatusOK, locs)
}

type createLocationReq struct {
	Name string `json:"name"`
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req createLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	l, err := h.locations.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeLocationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.locations.Delete(c.Request.Context(), id); err != nil {
		writeLocationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *LocationHandler) ListForAgent(c *gin.Context) {
	agentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	locs, err := h.locations.ListByAgent(c.Request.Context(), agentID)
	if err != nil {
		writeLocationError(c, err)
		return
	}
	c.JSON(http.StatusOK, locs)
}

type setLocationsReq struct {
	LocationIDs []int64 `json:"location_ids"`
}

func (h *LocationHandler) SetForAgent(c *gin.Context) {
	agentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req setLocationsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.locations.SetAgentLocations(c.Request.Context(), agentID, req.LocationIDs); err != nil {
		writeLocationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *LocationHandler) AddToAgent(c *gin.Context) {
	agentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	locationID, ok := pathID(c, "locationID")
	if !ok {
		return
	}
	if err := h.locations.AddAgentLocation(c.Request.Context(), agentID, locationID); err != nil {
		writeLocationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *LocationHandler) RemoveFromAgent(c *gin.Context) {
	agentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	locationID, ok := pathID(c, "locationID")
	if !ok {
		return
	}
	if err := h.locations.RemoveAgentLocation(c.Request.Context(), agentID, locationID); err != nil {
		writeLocationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
