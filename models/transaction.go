package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction 交易记录模型
// Amount 只保存金额绝对值，收支方向由 Type 表示。
// Date 是用户记账的经济日期，允许任意补记/预记；CreatedAt 由服务端写入，
// 仅用作同一日期下的排序次关键字。删除为物理删除，不做软删除。
type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Type        string          `json:"type" gorm:"size:20;not null;index"` // income/expense
	CategoryID  uint            `json:"category_id" gorm:"index;not null"`
	Date        time.Time       `json:"date" gorm:"not null;index"`
	Description string          `json:"description" gorm:"size:255"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Category    Category        `json:"category" gorm:"foreignKey:CategoryID"`
	User        User            `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}
