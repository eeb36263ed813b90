package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ratemystore/rating-system/internal/core/ports"
)

// StoreHandler handles store listing management.
type StoreHandler struct {
	service ports.StoreService
}

func NewStoreHandler(service ports.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// Create registers a new store owned by the caller.
//
// @Summary      Create a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStoreRequest  true  "Store details"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /stores [post]
func (h *StoreHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.service.Create(c.Request().Context(), ports.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, store)
}

// List returns all stores with their rating aggregates.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Param        name     query     string  false  "Filter by name (partial match)"
// @Param        address  query     string  false  "Filter by address (partial match)"
// @Param        sort_by  query     string  false  "Sort field: name or average_rating"
// @Param        order    query     string  false  "asc (default) or desc"
// @Success      200      {array}   domain.Store
// @Router       /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	stores, err := h.service.List(c.Request().Context(), ports.ListStoresFilter{
		Name:     c.QueryParam("name"),
		Address:  c.QueryParam("address"),
		SortBy:   c.QueryParam("sort_by"),
		SortDesc: c.QueryParam("order") == "desc",
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stores)
}

// Get returns a single store with its rating aggregates.
//
// @Summary      Get a store
// @Tags         stores
// @Produce      json
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  domain.Store
// @Failure      404  {object}  map[string]string
// @Router       /stores/{id} [get]
func (h *StoreHandler) Get(c echo.Context) error {
	store, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// Update modifies a store; owner or admin only.
//
// @Summary      Update a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Store ID"
// @Param        body  body      updateStoreRequest  true  "Fields to update"
// @Success      200   {object}  domain.Store
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /stores/{id} [put]
func (h *StoreHandler) Update(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, role, ports.StoreUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store)
}

// Delete removes a store; owner or admin only.
//
// @Summary      Delete a store
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Store ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /stores/{id} [delete]
func (h *StoreHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "store deleted successfully"})
}

// Ratings returns a store's individual ratings; owner or admin only.
//
// @Summary      List a store's ratings with rater identity
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Store ID"
// @Success      200  {array}   domain.Rating
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /stores/{id}/ratings [get]
func (h *StoreHandler) Ratings(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ratings, err := h.service.ListRatings(c.Request().Context(), c.Param("id"), userID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratings)
}
