package models

import (
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	BookingID int64   `json:"booking_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
}

// ReviewResponse отзыв в ответе API
type ReviewResponse struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	CustomerID int64     `json:"customer_id"`
	StaffID    *int64    `json:"staff_id,omitempty"`
	TeamID     *int64    `json:"team_id,omitempty"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewListResponse список отзывов с агрегатами
type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	Total         int              `json:"total"`
	AverageRating float64          `json:"average_rating"`
}

// ToReviewResponse конвертирует доменную модель в ответ API
func ToReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		BookingID:  review.BookingID,
		CustomerID: review.CustomerID,
		StaffID:    review.StaffID,
		TeamID:     review.TeamID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

// ToReviewListResponse конвертирует список доменных моделей в ответ API
func ToReviewListResponse(reviews []*domain.Review) *ReviewListResponse {
	items := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, ToReviewResponse(review))
	}

	return &ReviewListResponse{
		Reviews:       items,
		Total:         len(items),
		AverageRating: domain.AverageRating(reviews),
	}
}
