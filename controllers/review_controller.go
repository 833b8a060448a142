package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mikczynski/werble-backend/services"
	"github.com/mikczynski/werble-backend/utils"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

type CreateReviewRequest struct {
	ParticipantID uint   `json:"event_participant_id" binding:"required"`
	Content       string `json:"content" binding:"required,max=500"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
}

type EditReviewRequest struct {
	Content string `json:"content" binding:"required,max=500"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

func (rc *ReviewController) GetEventReviews(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, err := rc.reviews.ReviewsForEvent(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := rc.reviews.CreateReview(ctx, userID, req.ParticipantID, req.Content, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SendCreated(c, "Review created", review)
}

func (rc *ReviewController) EditReview(c *gin.Context) {
	userID := c.GetString("user_id")

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "invalid review id")
		return
	}

	var req EditReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := rc.reviews.EditReview(ctx, userID, uint(reviewID), req.Content, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
