package handler

type submitRatingRequest struct {
	StoreID string `json:"store_id" validate:"required"`
	Rating  int    `json:"rating"   validate:"required,gte=1,lte=5"`
}
