package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mikczynski/werble-backend/services"
	"github.com/mikczynski/werble-backend/utils"
)

type ProfileController struct {
	profile *services.ProfileService
}

func NewProfileController(profile *services.ProfileService) *ProfileController {
	return &ProfileController{profile: profile}
}

type UpdatePositionRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (pc *ProfileController) UpdatePosition(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := pc.profile.UpdatePosition(ctx, userID, *req.Latitude, *req.Longitude); err != nil {
		respondError(c, err)
		return
	}

	utils.SendSuccess(c, "Position updated", nil)
}
