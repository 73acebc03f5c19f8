package reviews

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	reviewsService "github.com/m04kA/SMC-BackofficeService/internal/service/reviews"
	"github.com/m04kA/SMC-BackofficeService/internal/service/reviews/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgReviewExists       = "отзыв на это бронирование уже существует"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/reviews
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	review, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reviewsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, reviewsService.ErrReviewExists):
			handlers.RespondConflict(w, msgReviewExists)
		case errors.Is(err, reviewsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /reviews - Failed to create review: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews - Review created: review_id=%d, booking_id=%d", review.ID, review.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, review)
}
