package staff

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BackofficeService/internal/service/staff/models"
)

// Service сервис для работы с сотрудниками
type Service struct {
	staffRepo      StaffRepository
	membershipRepo MembershipRepository
	bookingRepo    BookingRepository
	reviewRepo     ReviewRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(
	staffRepo StaffRepository,
	membershipRepo MembershipRepository,
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:      staffRepo,
		membershipRepo: membershipRepo,
		bookingRepo:    bookingRepo,
		reviewRepo:     reviewRepo,
		logger:         logger,
	}
}

// Create создает нового сотрудника
func (s *Service) Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Create: creating staff member name=%s role=%s", req.Name, req.Role)

	role, err := models.ToDomainStaffRole(req.Role)
	if err != nil {
		s.logger.Warn("Create: invalid role=%s", req.Role)
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	member := &domain.Staff{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     role,
		IsActive: true,
	}

	created, err := s.staffRepo.Create(ctx, member)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created staff member id=%d", created.ID)
	return models.FromDomainStaff(created), nil
}

// GetByID получает сотрудника по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.StaffResponse, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("GetByID: staff member id=%d not found", id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetByID: repository error for staff id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStaff(member), nil
}

// List получает сотрудников с фильтрацией по роли и активности
func (s *Service) List(ctx context.Context, req *models.ListStaffRequest) (*models.StaffListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	staff, err := s.staffRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d staff members", len(staff))
	return models.FromDomainStaffList(staff), nil
}

// Update обновляет данные сотрудника
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("Update: updating staff member id=%d", id)

	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Update: staff member id=%d not found", id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Update: repository error for staff id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		member.Name = *req.Name
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Role != nil {
		role, err := models.ToDomainStaffRole(*req.Role)
		if err != nil {
			s.logger.Warn("Update: invalid role=%s for staff id=%d", *req.Role, id)
			return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
		}
		member.Role = role
	}

	if err := s.staffRepo.Update(ctx, member); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Update: repository error for staff id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated staff member id=%d", id)
	return models.FromDomainStaff(member), nil
}

// Deactivate помечает сотрудника неактивным.
// История бронирований и членства в командах сохраняется.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating staff member id=%d", id)

	if err := s.staffRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Deactivate: staff member id=%d not found", id)
			return ErrStaffNotFound
		}
		s.logger.Error("Deactivate: repository error for staff id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated staff member id=%d", id)
	return nil
}

// GetBookings получает бронирования, видимые сотруднику: назначенные напрямую
// и командные за периоды его членства. Командное бронирование видно, только
// если оно создано внутри интервала [joinedAt, leftAt) членства сотрудника
// в этой команде.
func (s *Service) GetBookings(ctx context.Context, staffID int64, req *models.StaffBookingsRequest) (*models.StaffBookingsResponse, error) {
	s.logger.Info("GetBookings: fetching bookings for staff=%d", staffID)

	visible, err := s.visibleBookings(ctx, staffID, req)
	if err != nil {
		return nil, err
	}

	resp := &models.StaffBookingsResponse{
		Bookings: make([]models.StaffBookingResponse, 0, len(visible)),
	}
	for _, booking := range visible {
		resp.Bookings = append(resp.Bookings, models.FromDomainStaffBooking(booking))
	}

	s.logger.Info("GetBookings: %d bookings visible to staff=%d", len(resp.Bookings), staffID)
	return resp, nil
}

// GetStats собирает статистику сотрудника: количество бронирований,
// выручку (с учётом равных долей в командных бронированиях) и средний
// рейтинг по видимым отзывам
func (s *Service) GetStats(ctx context.Context, staffID int64, req *models.StaffBookingsRequest) (*models.StaffStatsResponse, error) {
	s.logger.Info("GetStats: building stats for staff=%d", staffID)

	periods, teamIDs, err := s.staffMemberships(ctx, staffID)
	if err != nil {
		return nil, err
	}

	filter, err := s.toBookingsFilter(req)
	if err != nil {
		s.logger.Warn("GetStats: invalid filter for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	visible, err := s.visibleBookingsWithPeriods(ctx, staffID, teamIDs, periods, filter)
	if err != nil {
		return nil, err
	}

	stats := &models.StaffStatsResponse{StaffID: staffID}

	// Состав команды на момент создания бронирования определяет доли:
	// позиция сотрудника в упорядоченном списке участников выбирает его
	// долю, поэтому остаток округления всегда достаётся последнему
	teamMembers := make(map[int64]map[time.Time][]int64)
	for _, booking := range visible {
		stats.TotalBookings++
		if booking.Status != domain.StatusCompleted {
			continue
		}
		stats.CompletedBookings++

		if booking.StaffID != nil {
			stats.Revenue += booking.Price
			continue
		}

		members, err := s.teamMembersAt(ctx, teamMembers, *booking.TeamID, booking.CreatedAt)
		if err != nil {
			return nil, err
		}
		idx := -1
		for i, id := range members {
			if id == staffID {
				idx = i
				break
			}
		}
		if idx >= 0 {
			shares := domain.SplitRevenue(booking.Price, len(members))
			stats.Revenue += shares[idx]
		}
	}

	reviews, err := s.reviewRepo.GetByStaffOrTeams(ctx, staffID, teamIDs)
	if err != nil {
		s.logger.Error("GetStats: review repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetStats - review repository error: %v", ErrInternal, err)
	}

	// Рейтинг считается по тому же периоду, что и бронирования
	visibleReviews := make([]*domain.Review, 0, len(reviews))
	for _, review := range reviews {
		if !reviewInRange(review.CreatedAt, filter) {
			continue
		}
		att := domain.Attribution{StaffID: review.StaffID, TeamID: review.TeamID}
		if domain.VisibleToStaff(staffID, att, review.CreatedAt, periods) {
			visibleReviews = append(visibleReviews, review)
		}
	}
	stats.ReviewCount = len(visibleReviews)
	stats.AverageRating = domain.AverageRating(visibleReviews)

	s.logger.Info("GetStats: staff=%d total=%d completed=%d revenue=%.2f rating=%.2f",
		staffID, stats.TotalBookings, stats.CompletedBookings, stats.Revenue, stats.AverageRating)
	return stats, nil
}

// Вспомогательные методы

// staffMemberships получает периоды членства сотрудника и список его команд
func (s *Service) staffMemberships(ctx context.Context, staffID int64) ([]domain.MembershipPeriod, []int64, error) {
	memberships, err := s.membershipRepo.GetMembershipsByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("staffMemberships: repository error for staff=%d: %v", staffID, err)
		return nil, nil, fmt.Errorf("%w: staffMemberships - repository error: %v", ErrInternal, err)
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

	return periods, teamIDs, nil
}

func (s *Service) visibleBookings(ctx context.Context, staffID int64, req *models.StaffBookingsRequest) ([]*domain.Booking, error) {
	periods, teamIDs, err := s.staffMemberships(ctx, staffID)
	if err != nil {
		return nil, err
	}

	filter, err := s.toBookingsFilter(req)
	if err != nil {
		s.logger.Warn("visibleBookings: invalid filter for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	return s.visibleBookingsWithPeriods(ctx, staffID, teamIDs, periods, filter)
}

func (s *Service) visibleBookingsWithPeriods(
	ctx context.Context,
	staffID int64,
	teamIDs []int64,
	periods []domain.MembershipPeriod,
	filter domain.BookingsFilter,
) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.GetForStaffOrTeams(ctx, staffID, teamIDs, filter)
	if err != nil {
		s.logger.Error("visibleBookings: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: visibleBookings - repository error: %v", ErrInternal, err)
	}

	visible := make([]*domain.Booking, 0, len(bookings))
	for _, booking := range bookings {
		att := domain.Attribution{StaffID: booking.StaffID, TeamID: booking.TeamID}
		if domain.VisibleToStaff(staffID, att, booking.CreatedAt, periods) {
			visible = append(visible, booking)
		}
	}

	return visible, nil
}

func (s *Service) toBookingsFilter(req *models.StaffBookingsRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{IncludeInactive: req.IncludeInactive}

	if req.StartDate != nil {
		start, err := time.Parse(domain.DateFormat, *req.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := time.Parse(domain.DateFormat, *req.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &end
	}
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		valid := false
		for _, v := range domain.ValidStatuses {
			if status == v {
				valid = true
				break
			}
		}
		if !valid {
			return filter, fmt.Errorf("invalid status %q", *req.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

// reviewInRange проверяет попадание отзыва в запрошенный период.
// Граничная дата включается целиком: у отзывов хранится момент создания,
// а фильтр задаётся датами.
func reviewInRange(createdAt time.Time, filter domain.BookingsFilter) bool {
	if filter.StartDate != nil && createdAt.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && !createdAt.Before(filter.EndDate.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// teamMembersAt возвращает участников команды, чьё членство покрывает
// момент t, в стабильном порядке (joinedAt, затем staffID). Результаты
// кэшируются на время запроса.
func (s *Service) teamMembersAt(ctx context.Context, cache map[int64]map[time.Time][]int64, teamID int64, t time.Time) ([]int64, error) {
	if byTime, ok := cache[teamID]; ok {
		if members, ok := byTime[t]; ok {
			return members, nil
		}
	}

	memberships, err := s.membershipRepo.GetMembershipsByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("teamMembersAt: repository error for team=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: teamMembersAt - repository error: %v", ErrInternal, err)
	}

	joined := make(map[int64]time.Time)
	for _, m := range memberships {
		if !m.Period().Contains(t) {
			continue
		}
		if prev, ok := joined[m.StaffID]; !ok || m.JoinedAt.Before(prev) {
			joined[m.StaffID] = m.JoinedAt
		}
	}

	members := make([]int64, 0, len(joined))
	for memberID := range joined {
		members = append(members, memberID)
	}
	sort.Slice(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if !joined[a].Equal(joined[b]) {
			return joined[a].Before(joined[b])
		}
		return a < b
	})

	if cache[teamID] == nil {
		cache[teamID] = make(map[time.Time][]int64)
	}
	cache[teamID][t] = members

	return members, nil
}
