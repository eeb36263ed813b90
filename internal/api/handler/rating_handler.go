package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratemystore/rating-system/internal/core/ports"
)

// RatingHandler handles rating submission, listing and deletion.
type RatingHandler struct {
	service ports.RatingService
}

func NewRatingHandler(service ports.RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// Submit creates or replaces the caller's rating for a store.
//
// @Summary      Submit a rating
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRatingRequest  true  "Store and rating value (1-5)"
// @Success      201   {object}  domain.Rating
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /ratings [post]
func (h *RatingHandler) Submit(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, err := h.service.Submit(c.Request().Context(), userID, req.StoreID, req.Rating)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, rating)
}

// ListMine returns the caller's ratings, newest first, with store details.
//
// @Summary      List the caller's ratings
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Rating
// @Failure      401  {object}  map[string]string
// @Router       /ratings/user [get]
func (h *RatingHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ratings, err := h.service.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratings)
}

// ListForStore returns a store's ratings, newest first, with rater details.
//
// @Summary      List a store's ratings
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        store_id  path      string  true  "Store ID"
// @Success      200       {array}   domain.Rating
// @Failure      401       {object}  map[string]string
// @Router       /ratings/store/{store_id} [get]
func (h *RatingHandler) ListForStore(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	ratings, err := h.service.ListForStore(c.Request().Context(), c.Param("store_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratings)
}

// Average returns a store's mean rating and count.
//
// @Summary      Get a store's average rating
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        store_id  path      string  true  "Store ID"
// @Success      200       {object}  domain.RatingStats
// @Failure      401       {object}  map[string]string
// @Router       /ratings/store/{store_id}/average [get]
func (h *RatingHandler) Average(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	stats, err := h.service.StatsFor(c.Request().Context(), c.Param("store_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Delete removes the caller's rating for a store.
//
// @Summary      Delete the caller's rating
// @Tags         ratings
// @Produce      json
// @Security     BearerAuth
// @Param        store_id  path      string  true  "Store ID"
// @Success      200       {object}  messageResponse
// @Failure      401       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /ratings/{store_id} [delete]
func (h *RatingHandler) Delete(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("store_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "rating deleted successfully"})
}
