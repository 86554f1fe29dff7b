package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/services"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

// requestUser returns the user resolved by the auth middleware. A
// missing user means the route was registered without it; respond 401
// rather than panic.
func requestUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get("user")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return nil, false
	}
	user, ok := val.(*models.User)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user in context"))
		return nil, false
	}
	return user, true
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service-layer errors onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var unavailable *services.ItemUnavailableError
	var insufficient *services.InsufficientStockError
	var transition *services.InvalidTransitionError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, errors.New("record not found"))
	case errors.Is(err, services.ErrForbidden):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrEmptyCart):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &unavailable), errors.As(err, &insufficient), errors.As(err, &transition):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
