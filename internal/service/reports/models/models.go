package models

// Request модели

// PeriodRequest период отчёта
type PeriodRequest struct {
	StartDate string `json:"startDate"` // "2025-10-01"
	EndDate   string `json:"endDate"`   // "2025-10-31"
}

// TopPackagesRequest запрос на топ пакетов за период
type TopPackagesRequest struct {
	PeriodRequest
	Limit int `json:"limit,omitempty"` // По умолчанию 5
}

// Группировки отчёта по выручке
const (
	GroupByTeam    = "team"
	GroupByPackage = "package"
)

// RevenueReportRequest запрос отчёта по выручке.
// GroupBy выбирает разрез: по командам (по умолчанию) или по пакетам.
type RevenueReportRequest struct {
	PeriodRequest
	GroupBy string `json:"groupBy,omitempty"`
}

// Response модели

// StatusCountResponse количество бронирований в одном статусе
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DayRevenueResponse выручка за один день
type DayRevenueResponse struct {
	Date     string  `json:"date"` // "2025-10-15"
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

// PackageStatResponse агрегат по одному пакету услуг
type PackageStatResponse struct {
	PackageID   int64   `json:"packageId"`
	PackageName string  `json:"packageName"`
	Bookings    int     `json:"bookings"`
	Revenue     float64 `json:"revenue"`
}

// TeamStatResponse агрегат по одной команде
type TeamStatResponse struct {
	TeamID   int64   `json:"teamId"`
	TeamName string  `json:"teamName"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// DashboardResponse сводный отчёт за период
type DashboardResponse struct {
	TotalBookings     int                   `json:"totalBookings"`
	TotalRevenue      float64               `json:"totalRevenue"`
	CompletedBookings int                   `json:"completedBookings"`
	CancelledBookings int                   `json:"cancelledBookings"`
	ByStatus          []StatusCountResponse `json:"byStatus"`
	RevenueByDay      []DayRevenueResponse  `json:"revenueByDay"`
	TopPackages       []PackageStatResponse `json:"topPackages"`
}

// RevenueReportResponse отчёт по выручке за период. Заполняется либо
// разрез по командам, либо по пакетам - в зависимости от группировки.
type RevenueReportResponse struct {
	TotalRevenue float64               `json:"totalRevenue"`
	RevenueByDay []DayRevenueResponse  `json:"revenueByDay"`
	ByTeam       []TeamStatResponse    `json:"byTeam,omitempty"`
	ByPackage    []PackageStatResponse `json:"byPackage,omitempty"`
}
