package domain

import "time"

// Review represents a customer rating left for a completed booking.
// Attribution (staff or team) is copied from the booking at creation time
// so that later reassignment does not rewrite history.
type Review struct {
	ID         int64
	BookingID  int64
	CustomerID int64

	StaffID *int64
	TeamID  *int64

	Rating  int // 1..5
	Comment *string

	CreatedAt time.Time
}

// IsValidRating reports whether the rating is within bounds
func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// AverageRating returns the mean rating of the given reviews,
// or 0 when there are none.
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
