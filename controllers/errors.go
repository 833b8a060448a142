package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikczynski/werble-backend/models"
	"github.com/mikczynski/werble-backend/utils"
)

// Upper bound on any single store-backed operation; timeouts surface as 503
// so clients know the request is retryable.
const requestTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// respondError maps the service failure taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrForbidden):
		utils.SendError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrConflict):
		utils.SendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		utils.SendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		utils.SendError(c, http.StatusServiceUnavailable, "operation timed out, please retry")
	default:
		utils.SendError(c, http.StatusInternalServerError, "internal server error")
	}
}
