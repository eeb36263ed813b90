package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ratemystore/rating-system/internal/api/middleware"
	"github.com/ratemystore/rating-system/internal/core/domain"
)

type stubRatingService struct {
	submitFn   func(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
	listUserFn func(ctx context.Context, userID string) ([]*domain.Rating, error)
	deleteFn   func(ctx context.Context, userID, storeID string) error
	statsFn    func(ctx context.Context, storeID string) (*domain.RatingStats, error)
}

func (s *stubRatingService) Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	return s.submitFn(ctx, userID, storeID, value)
}

func (s *stubRatingService) ListForUser(ctx context.Context, userID string) ([]*domain.Rating, error) {
	return s.listUserFn(ctx, userID)
}

func (s *stubRatingService) ListForStore(ctx context.Context, storeID string) ([]*domain.Rating, error) {
	return nil, nil
}

func (s *stubRatingService) Delete(ctx context.Context, userID, storeID string) error {
	return s.deleteFn(ctx, userID, storeID)
}

func (s *stubRatingService) StatsFor(ctx context.Context, storeID string) (*domain.RatingStats, error) {
	return s.statsFn(ctx, storeID)
}

func authedContext(c echo.Context, userID, role string) {
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxRole, role)
}

func TestRatingHandler_Submit_Success(t *testing.T) {
	stub := &stubRatingService{
		submitFn: func(_ context.Context, userID, storeID string, value int) (*domain.Rating, error) {
			if userID != "user_1" || storeID != "store_1" || value != 4 {
				t.Fatalf("unexpected args: %s %s %d", userID, storeID, value)
			}
			return &domain.Rating{UserID: userID, StoreID: storeID, Value: value}, nil
		},
	}
	handler := NewRatingHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/ratings", `{"store_id":"store_1","rating":4}`)
	authedContext(c, "user_1", domain.RoleUser)

	if err := handler.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["rating"] != float64(4) {
		t.Fatalf("unexpected rating: %v", resp["rating"])
	}
}

func TestRatingHandler_Submit_OutOfRange(t *testing.T) {
	stub := &stubRatingService{
		submitFn: func(context.Context, string, string, int) (*domain.Rating, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewRatingHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/ratings", `{"store_id":"store_1","rating":6}`)
	authedContext(c, "user_1", domain.RoleUser)

	err := handler.Submit(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestRatingHandler_Submit_Unauthenticated(t *testing.T) {
	handler := NewRatingHandler(&stubRatingService{})

	c, _ := newTestContext(t, http.MethodPost, "/ratings", `{"store_id":"store_1","rating":4}`)

	err := handler.Submit(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestRatingHandler_ListMine(t *testing.T) {
	stub := &stubRatingService{
		listUserFn: func(_ context.Context, userID string) ([]*domain.Rating, error) {
			if userID != "user_1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return []*domain.Rating{
				{UserID: userID, StoreID: "store_1", Value: 5, StoreName: "Corner Shop"},
			}, nil
		},
	}
	handler := NewRatingHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/ratings/user", "")
	authedContext(c, "user_1", domain.RoleUser)

	if err := handler.ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["store_name"] != "Corner Shop" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRatingHandler_Average(t *testing.T) {
	stub := &stubRatingService{
		statsFn: func(_ context.Context, storeID string) (*domain.RatingStats, error) {
			if storeID != "store_1" {
				t.Fatalf("unexpected store id: %s", storeID)
			}
			return &domain.RatingStats{Average: 4.5, Count: 2}, nil
		},
	}
	handler := NewRatingHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/", "")
	c.SetPath("/ratings/store/:store_id/average")
	c.SetParamNames("store_id")
	c.SetParamValues("store_1")
	authedContext(c, "user_1", domain.RoleUser)

	if err := handler.Average(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["average_rating"] != 4.5 || resp["total_ratings"] != float64(2) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestRatingHandler_Delete_NotFound(t *testing.T) {
	stub := &stubRatingService{
		deleteFn: func(context.Context, string, string) error {
			return domain.ErrRatingNotFound
		},
	}
	handler := NewRatingHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/", "")
	c.SetPath("/ratings/:store_id")
	c.SetParamNames("store_id")
	c.SetParamValues("store_1")
	authedContext(c, "user_1", domain.RoleUser)

	if err := handler.Delete(c); err != domain.ErrRatingNotFound {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}
}
