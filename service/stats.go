package service

import (
	"sort"
	"time"

	"finboard/database"
	"finboard/models"

	"github.com/shopspring/decimal"
)

// 仪表盘返回的近期交易条数
const recentTransactionLimit = 5

// 月度趋势覆盖的月份数（含当前月）
const trendMonths = 6

// GetDashboardStats 计算用户的仪表盘统计
// 一次性取出该用户全部交易（含类别），之后全部在内存快照上计算，
// 不再产生额外的数据库往返。无交易时返回全零结果而非错误。
func GetDashboardStats(userID uint) (models.DashboardStats, error) {
	var snapshot []models.Transaction
	err := database.DB.Preload("Category").
		Where("user_id = ?", userID).
		Find(&snapshot).Error
	if err != nil {
		return models.DashboardStats{}, err
	}
	return BuildDashboardStats(snapshot, time.Now()), nil
}

// BuildDashboardStats 在内存快照上计算仪表盘统计，now 为用户本地的参考时间
// 纯函数：相同输入必然产生相同输出，方便单测
func BuildDashboardStats(snapshot []models.Transaction, now time.Time) models.DashboardStats {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Second)

	// 当月交易（日期闭区间）
	var currentMonth []models.Transaction
	for _, tx := range snapshot {
		if !tx.Date.Before(startOfMonth) && !tx.Date.After(endOfMonth) {
			currentMonth = append(currentMonth, tx)
		}
	}

	// 当月收支总额，decimal 精确累加
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for _, tx := range currentMonth {
		switch tx.Type {
		case models.TypeIncome:
			totalIncome = totalIncome.Add(tx.Amount)
		case models.TypeExpense:
			totalExpenses = totalExpenses.Add(tx.Amount)
		}
	}

	stats := models.DashboardStats{
		TotalIncome:        totalIncome,
		TotalExpenses:      totalExpenses,
		NetSavings:         totalIncome.Sub(totalExpenses),
		MonthlyTrend:       buildMonthlyTrend(snapshot, now),
		ExpensesByCategory: buildCategoryBreakdown(currentMonth, totalExpenses),
		RecentTransactions: recentTransactions(snapshot),
	}
	return stats
}

// monthKey 趋势分组键，按 (年, 月) 整数对分组和排序，
// 不依赖格式化后的月份缩写，展示标签只在最后生成
type monthKey struct {
	Year  int
	Month time.Month
}

// buildMonthlyTrend 计算近 6 个月的月度收支趋势，按时间升序
// 窗口右端为当月最后一刻，记在未来日期的交易不进入趋势，
// 保证返回的月份桶不超过 6 个
func buildMonthlyTrend(snapshot []models.Transaction, now time.Time) []models.MonthlyData {
	// time.Date 会自动归一化跨年的月份
	trendStart := time.Date(now.Year(), now.Month()-(trendMonths-1), 1, 0, 0, 0, 0, now.Location())
	trendEnd := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location()).Add(-time.Second)

	sums := make(map[monthKey]*models.MonthlyData)
	for _, tx := range snapshot {
		if tx.Date.Before(trendStart) || tx.Date.After(trendEnd) {
			continue
		}
		key := monthKey{Year: tx.Date.Year(), Month: tx.Date.Month()}
		bucket, ok := sums[key]
		if !ok {
			bucket = &models.MonthlyData{
				Year:     key.Year,
				Income:   decimal.Zero,
				Expenses: decimal.Zero,
			}
			sums[key] = bucket
		}
		switch tx.Type {
		case models.TypeIncome:
			bucket.Income = bucket.Income.Add(tx.Amount)
		case models.TypeExpense:
			bucket.Expenses = bucket.Expenses.Add(tx.Amount)
		}
	}

	keys := make([]monthKey, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Month < keys[j].Month
	})

	trend := make([]models.MonthlyData, 0, len(keys))
	for _, key := range keys {
		bucket := sums[key]
		bucket.Month = time.Date(key.Year, key.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan")
		trend = append(trend, *bucket)
	}
	return trend
}

// buildCategoryBreakdown 计算当月支出的类别分布，金额降序
// 以类别ID为分组键，重名类别不会被错误合并；
// 金额相同的类别保持首次出现的先后顺序（稳定排序）
func buildCategoryBreakdown(currentMonth []models.Transaction, totalExpenses decimal.Decimal) []models.CategoryData {
	sums := make(map[uint]*models.CategoryData)
	var order []uint
	for _, tx := range currentMonth {
		if tx.Type != models.TypeExpense {
			continue
		}
		group, ok := sums[tx.CategoryID]
		if !ok {
			group = &models.CategoryData{
				CategoryID:   tx.CategoryID,
				CategoryName: tx.Category.Name,
				Icon:         tx.Category.Icon,
				Amount:       decimal.Zero,
			}
			sums[tx.CategoryID] = group
			order = append(order, tx.CategoryID)
		}
		group.Amount = group.Amount.Add(tx.Amount)
	}

	breakdown := make([]models.CategoryData, 0, len(order))
	for _, id := range order {
		group := sums[id]
		// 总支出为零时占比记 0，避免除零
		if totalExpenses.IsPositive() {
			group.Percentage = group.Amount.
				Div(totalExpenses).
				Mul(decimal.NewFromInt(100)).
				Round(1).
				InexactFloat64()
		}
		breakdown = append(breakdown, *group)
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})
	return breakdown
}

// recentTransactions 全部时间范围内最近的 5 条交易
// 经济日期降序，同一日期按创建时间降序
func recentTransactions(snapshot []models.Transaction) []models.Transaction {
	recent := make([]models.Transaction, len(snapshot))
	copy(recent, snapshot)
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].Date.Equal(recent[j].Date) {
			return recent[i].Date.After(recent[j].Date)
		}
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}
	return recent
}
