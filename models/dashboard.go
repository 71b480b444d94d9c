package models

import (
	"github.com/shopspring/decimal"
)

// DashboardStats 仪表盘统计结果
// 每次请求实时计算，不落库。NetSavings 永远由收入减支出推导得出。
type DashboardStats struct {
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetSavings         decimal.Decimal `json:"net_savings"`
	MonthlyTrend       []MonthlyData   `json:"monthly_trend"`
	ExpensesByCategory []CategoryData  `json:"expenses_by_category"`
	RecentTransactions []Transaction   `json:"recent_transactions"`
}

// MonthlyData 月度收支数据点，Month 为展示用的英文月份缩写（如 Jan）
type MonthlyData struct {
	Month    string          `json:"month"`
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategoryData 按类别汇总的支出数据
// 分组以 CategoryID 为键，名称和图标只作展示元数据，
// 避免重名类别被错误合并。Percentage 保留 1 位小数。
type CategoryData struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Icon         string          `json:"icon"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
}
