package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikczynski/werble-backend/models"
	"github.com/mikczynski/werble-backend/services"
	"github.com/mikczynski/werble-backend/utils"
)

type EventController struct {
	events *services.EventService
}

func NewEventController(events *services.EventService) *EventController {
	return &EventController{events: events}
}

type CreateEventRequest struct {
	Name          string    `json:"name" binding:"required,min=3,max=50"`
	Description   string    `json:"description" binding:"max=200"`
	StartDatetime time.Time `json:"start_datetime" binding:"required"`
	EndDatetime   time.Time `json:"end_datetime" binding:"required"`
	Latitude      *float64  `json:"latitude" binding:"required"`
	Longitude     *float64  `json:"longitude" binding:"required"`
	EventTypeID   uint      `json:"event_type_id"`
	Location      string    `json:"location" binding:"max=100"`
	ZipCode       string    `json:"zip_code" binding:"omitempty,len=6"`
	StreetName    string    `json:"street_name" binding:"max=50"`
	HouseNumber   string    `json:"house_number" binding:"max=10"`
}

type EditEventRequest struct {
	Name          *string             `json:"name" binding:"omitempty,min=3,max=50"`
	Description   *string             `json:"description" binding:"omitempty,max=200"`
	StartDatetime *time.Time          `json:"start_datetime"`
	EndDatetime   *time.Time          `json:"end_datetime"`
	Status        *models.EventStatus `json:"status"`
	Latitude      *float64            `json:"latitude"`
	Longitude     *float64            `json:"longitude"`
	EventTypeID   *uint               `json:"event_type_id"`
	Location      *string             `json:"location" binding:"omitempty,max=100"`
	ZipCode       *string             `json:"zip_code" binding:"omitempty,len=6"`
	StreetName    *string             `json:"street_name" binding:"omitempty,max=50"`
	HouseNumber   *string             `json:"house_number" binding:"omitempty,max=10"`
}

// GetLocalEvents returns events within a radius of the requester, 10 km when
// the distance query parameter is absent.
func (ec *EventController) GetLocalEvents(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx, cancel := requestContext(c)
	defer cancel()

	maxDistance := 0.0
	if raw := c.Query("distance"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			utils.SendError(c, http.StatusBadRequest, "distance must be a positive number")
			return
		}
		maxDistance = parsed
	}

	events, err := ec.events.LocalEvents(ctx, userID, maxDistance, c.Query("with_participants") != "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (ec *EventController) GetOwnedEvents(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx, cancel := requestContext(c)
	defer cancel()

	events, err := ec.events.OwnedEvents(ctx, userID, c.Query("with_participants") != "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (ec *EventController) GetParticipatingEvents(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx, cancel := requestContext(c)
	defer cancel()

	events, err := ec.events.ParticipatingEvents(ctx, userID, c.Query("with_participants") != "")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

func (ec *EventController) GetEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx, cancel := requestContext(c)
	defer cancel()

	event, err := ec.events.SingleEvent(ctx, c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	event, err := ec.events.CreateEvent(ctx, userID, services.CreateEventInput{
		Name:          req.Name,
		Description:   req.Description,
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		EventTypeID:   req.EventTypeID,
		Location:      req.Location,
		ZipCode:       req.ZipCode,
		StreetName:    req.StreetName,
		HouseNumber:   req.HouseNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendCreated(c, "You have created event!", event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req EditEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	event, err := ec.events.EditEvent(ctx, userID, c.Param("id"), services.EditEventInput{
		Name:          req.Name,
		Description:   req.Description,
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
		Status:        req.Status,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		EventTypeID:   req.EventTypeID,
		Location:      req.Location,
		ZipCode:       req.ZipCode,
		StreetName:    req.StreetName,
		HouseNumber:   req.HouseNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := ec.events.DeleteEvent(ctx, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, "You have deactivated your event!", nil)
}
