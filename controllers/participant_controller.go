package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mikczynski/werble-backend/services"
	"github.com/mikczynski/werble-backend/utils"
)

type ParticipantController struct {
	participants *services.ParticipantService
}

func NewParticipantController(participants *services.ParticipantService) *ParticipantController {
	return &ParticipantController{participants: participants}
}

type ChangeStatusRequest struct {
	ParticipantStatusID uint `json:"participant_status_id" binding:"required"`
}

func (pc *ParticipantController) JoinEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx, cancel := requestContext(c)
	defer cancel()

	participant, err := pc.participants.Join(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendCreated(c, "You have joined the event!", participant)
}

func (pc *ParticipantController) ChangeStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	participantID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "invalid participant id")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	participant, err := pc.participants.ChangeStatus(ctx, userID, uint(participantID), req.ParticipantStatusID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

func (pc *ParticipantController) GetEventParticipants(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	participants, err := pc.participants.ParticipantsForEvent(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants, "count": len(participants)})
}
