package models

import (
	"time"
)

// 交易方向常量
const (
	TypeIncome  = "income"  // 收入
	TypeExpense = "expense" // 支出
)

// IsValidType 判断交易方向是否合法
func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Category 交易类别
// UserID 为空表示系统内置类别，所有用户共享；非空表示用户私有类别。
// Type 创建后不可修改，否则会使引用该类别的交易方向失效。
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Type      string    `json:"type" gorm:"size:20;not null;index"` // income/expense
	Icon      string    `json:"icon" gorm:"size:50"`                // 展示用图标，可为空
	UserID    *uint     `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// SeedCategories 系统内置类别（3 个收入 + 7 个支出）
// 在数据库初始化时逐条 upsert，保证任何用户请求前已存在。
func SeedCategories() []Category {
	return []Category{
		{Name: "Salary", Type: TypeIncome, Icon: "💰"},
		{Name: "Freelance", Type: TypeIncome, Icon: "💼"},
		{Name: "Investments", Type: TypeIncome, Icon: "📈"},
		{Name: "Food & Dining", Type: TypeExpense, Icon: "🍔"},
		{Name: "Rent", Type: TypeExpense, Icon: "🏠"},
		{Name: "Utilities", Type: TypeExpense, Icon: "💡"},
		{Name: "Transportation", Type: TypeExpense, Icon: "🚗"},
		{Name: "Entertainment", Type: TypeExpense, Icon: "🎮"},
		{Name: "Healthcare", Type: TypeExpense, Icon: "🏥"},
		{Name: "Shopping", Type: TypeExpense, Icon: "🛍️"},
	}
}
