package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/review"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/internal/service/reviews/models"
)

// Service сервис для работы с отзывами
type Service struct {
	reviewRepo     ReviewRepository
	bookingRepo    BookingRepository
	membershipRepo MembershipRepository
	teamRepo       TeamRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	membershipRepo MembershipRepository,
	teamRepo TeamRepository,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:     reviewRepo,
		bookingRepo:    bookingRepo,
		membershipRepo: membershipRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

// Create создает отзыв на бронирование. Принадлежность исполнителю
// (сотрудник или команда) копируется из бронирования, чтобы позднейшие
// переназначения не переписывали историю.
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if !domain.IsValidRating(req.Rating) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Comment != nil && len(*req.Comment) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Create: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Create: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Create - booking repository error: %v", ErrInternal, err)
	}

	review := &domain.Review{
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		StaffID:    booking.StaffID,
		TeamID:     booking.TeamID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	created, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		if errors.Is(err, reviewRepo.ErrReviewExists) {
			s.logger.Warn("Create: review for booking id=%d already exists", req.BookingID)
			return nil, ErrReviewExists
		}
		s.logger.Error("Create: failed to create review for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Create - review repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: review id=%d created for booking id=%d rating=%d", created.ID, created.BookingID, created.Rating)

	resp := models.ToReviewResponse(created)
	return &resp, nil
}

// ListByStaff возвращает отзывы, видимые сотруднику: прямые отзывы всегда,
// командные - только если отзыв оставлен в период членства в команде
func (s *Service) ListByStaff(ctx context.Context, staffID int64) (*models.ReviewListResponse, error) {
	if staffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	memberships, err := s.membershipRepo.GetMembershipsByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("ListByStaff: membership repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListByStaff - membership repository error: %v", ErrInternal, err)
	}

	periods := make([]domain.MembershipPeriod, 0, len(memberships))
	teamIDSet := make(map[int64]struct{})
	for _, m := range memberships {
		periods = append(periods, m.Period())
		teamIDSet[m.TeamID] = struct{}{}
	}
	teamIDs := make([]int64, 0, len(teamIDSet))
	for teamID := range teamIDSet {
		teamIDs = append(teamIDs, teamID)
	}

	reviews, err := s.reviewRepo.GetByStaffOrTeams(ctx, staffID, teamIDs)
	if err != nil {
		s.logger.Error("ListByStaff: review repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListByStaff - review repository error: %v", ErrInternal, err)
	}

	visible := make([]*domain.Review, 0, len(reviews))
	for _, review := range reviews {
		att := domain.Attribution{StaffID: review.StaffID, TeamID: review.TeamID}
		if domain.VisibleToStaff(staffID, att, review.CreatedAt, periods) {
			visible = append(visible, review)
		}
	}

	s.logger.Info("ListByStaff: staff=%d visible=%d of %d", staffID, len(visible), len(reviews))
	return models.ToReviewListResponse(visible), nil
}

// ListByTeam возвращает все отзывы, относящиеся к команде
func (s *Service) ListByTeam(ctx context.Context, teamID int64) (*models.ReviewListResponse, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
	}

	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("ListByTeam: team repository error for team=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: ListByTeam - team repository error: %v", ErrInternal, err)
	}

	reviews, err := s.reviewRepo.GetByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("ListByTeam: review repository error for team=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: ListByTeam - review repository error: %v", ErrInternal, err)
	}

	return models.ToReviewListResponse(reviews), nil
}
