package response

import (
	"carwash-booking/internal/data/repository"
)

type AdminStatsResponse struct {
	TotalUsers    int64   `json:"total_users"`
	TotalWashers  int64   `json:"total_washers"`
	TotalBookings int64   `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type UserStatsResponse struct {
	TotalBookings     int64   `json:"total_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	TotalSpent        float64 `json:"total_spent"`
	UpcomingBookings  int64   `json:"upcoming_bookings"`
}

type WasherStatsResponse struct {
	TotalJobs     int64   `json:"total_jobs"`
	CompletedJobs int64   `json:"completed_jobs"`
	TotalEarnings float64 `json:"total_earnings"`
	AverageRating float64 `json:"average_rating"`
}

func AdminStatsToResponse(s *repository.AdminStats) AdminStatsResponse {
	return AdminStatsResponse{
		TotalUsers:    s.TotalUsers,
		TotalWashers:  s.TotalWashers,
		TotalBookings: s.TotalBookings,
		TotalRevenue:  s.TotalRevenue,
	}
}

func UserStatsToResponse(s *repository.UserStats) UserStatsResponse {
	return UserStatsResponse{
		TotalBookings:     s.TotalBookings,
		CompletedBookings: s.CompletedBookings,
		TotalSpent:        s.TotalSpent,
		UpcomingBookings:  s.UpcomingBookings,
	}
}

func WasherStatsToResponse(s *repository.WasherStats) WasherStatsResponse {
	return WasherStatsResponse{
		TotalJobs:     s.TotalJobs,
		CompletedJobs: s.CompletedJobs,
		TotalEarnings: s.TotalEarnings,
		AverageRating: s.AverageRating,
	}
}
