package services

import (
	"context"
	"fmt"
	"strconv"

	"expensepro/internal/models"
	"expensepro/internal/store"
)

type MonthlyStat struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Count   int   `json:"count"`
}

// Stats is a single-pass aggregation over a transaction set. Amounts are
// minor units. MonthlyData keys are "YYYY-M" with no zero padding on the
// month.
type Stats struct {
	TransactionCount int                    `json:"transaction_count"`
	TotalAmount      int64                  `json:"total_amount"`
	TotalIncome      int64                  `json:"total_income"`
	TotalExpense     int64                  `json:"total_expense"`
	NetBalance       int64                  `json:"net_balance"`
	PendingCount     int                    `json:"pending_count"`
	ApprovedCount    int                    `json:"approved_count"`
	RejectedCount    int                    `json:"rejected_count"`
	MonthlyData      map[string]MonthlyStat `json:"monthly_data"`
}

type UserStat struct {
	Username         string `json:"username"`
	FullName         string `json:"full_name"`
	Role             string `json:"role"`
	TransactionCount int    `json:"transaction_count"`
	TotalAmount      int64  `json:"total_amount"`
	TotalIncome      int64  `json:"total_income"`
	TotalExpense     int64  `json:"total_expense"`
	NetBalance       int64  `json:"net_balance"`
	PendingCount     int    `json:"pending_count"`
	ApprovedCount    int    `json:"approved_count"`
	RejectedCount    int    `json:"rejected_count"`
}

// AdminStats is the system-wide view: the full aggregation plus per-user
// breakdowns and account counts.
type AdminStats struct {
	Stats
	TotalUsers  int        `json:"total_users"`
	TotalAdmins int        `json:"total_admins"`
	UserStats   []UserStat `json:"user_stats"`
}

type StatsService struct {
	users   UserStore
	txStore TransactionStore
}

func NewStatsService(users UserStore, txStore TransactionStore) *StatsService {
	return &StatsService{users: users, txStore: txStore}
}

// ForUser aggregates the actor's own transactions, optionally narrowed by
// filter. Non-admins always see only their own data.
func (s *StatsService) ForUser(ctx context.Context, actor string, filter store.TransactionFilter) (Stats, error) {
	role, err := s.users.Role(ctx, actor)
	if err != nil {
		return Stats{}, err
	}
	if role != models.RoleAdmin {
		filter.UserID = actor
	}
	txns, err := s.txStore.List(ctx, filter)
	if err != nil {
		return Stats{}, err
	}
	return aggregate(txns), nil
}

// System aggregates everything and breaks it down per user. Admin only
// at the route level.
func (s *StatsService) System(ctx context.Context) (AdminStats, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return AdminStats{}, err
	}
	txns, err := s.txStore.List(ctx, store.TransactionFilter{})
	if err != nil {
		return AdminStats{}, err
	}
	stats := AdminStats{
		Stats:     aggregate(txns),
		UserStats: make([]UserStat, 0, len(users)),
	}
	byUser := make(map[string]*UserStat, len(users))
	for _, user := range users {
		stats.TotalUsers++
		if user.IsAdmin() {
			stats.TotalAdmins++
		}
		stats.UserStats = append(stats.UserStats, UserStat{
			Username: user.Username,
			FullName: user.FullName,
			Role:     user.Role,
		})
		byUser[user.Username] = &stats.UserStats[len(stats.UserStats)-1]
	}
	for _, txn := range txns {
		entry := byUser[txn.UserID]
		if entry == nil {
			continue
		}
		entry.TransactionCount++
		entry.TotalAmount += txn.Amount
		if txn.Type == models.TypeIncome {
			entry.TotalIncome += txn.Amount
		} else {
			entry.TotalExpense += txn.Amount
		}
		entry.NetBalance = entry.TotalIncome - entry.TotalExpense
		switch txn.Status {
		case models.StatusPending:
			entry.PendingCount++
		case models.StatusApproved:
			entry.ApprovedCount++
		case models.StatusRejected:
			entry.RejectedCount++
		}
	}
	return stats, nil
}

func aggregate(txns []models.Transaction) Stats {
	stats := Stats{MonthlyData: make(map[string]MonthlyStat)}
	for _, txn := range txns {
		stats.TransactionCount++
		stats.TotalAmount += txn.Amount
		key := monthKey(txn.Date)
		monthly := stats.MonthlyData[key]
		monthly.Count++
		if txn.Type == models.TypeIncome {
			stats.TotalIncome += txn.Amount
			monthly.Income += txn.Amount
		} else {
			stats.TotalExpense += txn.Amount
			monthly.Expense += txn.Amount
		}
		stats.MonthlyData[key] = monthly
		switch txn.Status {
		case models.StatusPending:
			stats.PendingCount++
		case models.StatusApproved:
			stats.ApprovedCount++
		case models.StatusRejected:
			stats.RejectedCount++
		}
	}
	stats.NetBalance = stats.TotalIncome - stats.TotalExpense
	return stats
}

// monthKey turns "2025-03-10" into "2025-3".
func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	month, err := strconv.Atoi(date[5:7])
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s-%d", date[:4], month)
}
