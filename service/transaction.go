package service

import (
	"errors"
	"time"

	"finboard/database"
	"finboard/models"

	"gorm.io/gorm"
)

// 业务错误，由 api 层映射为 HTTP 状态码
var (
	// ErrTransactionNotFound 记录不存在或属于其他用户
	// 故意不区分两种情况，避免通过可猜测的ID探测他人数据是否存在
	ErrTransactionNotFound = errors.New("交易记录不存在或无权访问")
	// ErrInvalidCategory 类别不存在，或是其他用户的私有类别
	ErrInvalidCategory = errors.New("无效的交易类别")
	// ErrCategoryTypeMismatch 交易方向与类别方向不一致
	ErrCategoryTypeMismatch = errors.New("交易方向与类别方向不一致")
)

// TransactionFilter 交易列表筛选条件，所有条件取交集
type TransactionFilter struct {
	Type      string     // income/expense，为空表示不筛选
	StartDate *time.Time // 起始日期（含当天）
	EndDate   *time.Time // 结束日期（含当天）
}

// ListTransactions 查询用户的交易列表
// 排序规则：经济日期降序，同一日期按创建时间降序，保证后录入的排在前面
func ListTransactions(userID uint, filter TransactionFilter) ([]models.Transaction, error) {
	query := database.DB.Model(&models.Transaction{}).
		Preload("Category").
		Where("user_id = ?", userID)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var list []models.Transaction
	if err := query.Order("date DESC, created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GetTransaction 按ID查询单条交易，带所有权校验
func GetTransaction(id, userID uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := database.DB.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// CreateTransaction 创建交易记录
// CreatedAt 由服务端写入，调用方传入的值被忽略
func CreateTransaction(tx *models.Transaction) error {
	if err := validateCategory(tx.CategoryID, tx.Type, tx.UserID); err != nil {
		return err
	}

	tx.CreatedAt = time.Now()
	if err := database.DB.Create(tx).Error; err != nil {
		return err
	}

	// 回读类别信息，返回给调用方的记录带完整类别
	return database.DB.Preload("Category").First(tx, tx.ID).Error
}

// UpdateTransaction 更新交易记录
// 只允许修改金额、方向、类别、日期和描述；UserID 和 CreatedAt 创建后不可变。
// 未指定版本号，对同一记录的并发修改按最后提交者生效。
func UpdateTransaction(tx *models.Transaction) error {
	var existing models.Transaction
	err := database.DB.Where("id = ? AND user_id = ?", tx.ID, tx.UserID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	if err := validateCategory(tx.CategoryID, tx.Type, tx.UserID); err != nil {
		return err
	}

	// 用 map 更新，保证描述可以被清空
	updates := map[string]interface{}{
		"amount":      tx.Amount,
		"type":        tx.Type,
		"category_id": tx.CategoryID,
		"date":        tx.Date,
		"description": tx.Description,
	}
	if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
		return err
	}

	return database.DB.Preload("Category").First(tx, existing.ID).Error
}

// DeleteTransaction 删除交易记录（物理删除），带所有权校验
func DeleteTransaction(id, userID uint) error {
	var tx models.Transaction
	err := database.DB.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	return database.DB.Delete(&tx).Error
}

// validateCategory 校验类别引用
// 类别必须存在，且为系统内置类别或当前用户的私有类别；
// 其他用户的私有类别按不存在处理。类别方向必须与交易方向一致。
func validateCategory(categoryID uint, txType string, userID uint) error {
	var cat models.Category
	err := database.DB.Where("id = ?", categoryID).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	if cat.UserID != nil && *cat.UserID != userID {
		return ErrInvalidCategory
	}
	if cat.Type != txType {
		return ErrCategoryTypeMismatch
	}
	return nil
}

// ListCategoriesByType 按方向查询系统内置类别，名称升序
// 类别目录接口无需登录，所以只返回全局类别，用户私有类别不对外列出
func ListCategoriesByType(categoryType string) ([]models.Category, error) {
	var list []models.Category
	err := database.DB.Where("type = ?", categoryType).
		Where("user_id IS NULL").
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAllCategories 查询全部系统内置类别
// 收入类别在前、支出类别在后，同方向内按名称升序
func ListAllCategories() ([]models.Category, error) {
	var list []models.Category
	err := database.DB.
		Where("user_id IS NULL").
		Order("FIELD(type, 'income', 'expense'), name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
