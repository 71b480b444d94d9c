package service

import (
	"testing"
	"time"

	"finboard/database"
	"finboard/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

var txColumns = []string{"id", "user_id", "amount", "type", "category_id", "date", "description", "created_at", "updated_at"}

func categoryRows(id uint, name, catType, icon string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "type", "icon", "user_id", "created_at", "updated_at"}).
		AddRow(id, name, catType, icon, nil, time.Now(), time.Now())
}

func TestListTransactions_Filters(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local)

	// 所有筛选条件取交集，按 (date DESC, created_at DESC) 排序
	mock.ExpectQuery("SELECT .* FROM `transactions` WHERE user_id = .* ORDER BY date DESC, created_at DESC").
		WithArgs(uint(1), models.TypeExpense, start, end).
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow(2, 1, "70.00", "expense", 4, end, "超市", time.Now(), time.Now()).
			AddRow(1, 1, "30.00", "expense", 4, start, "午餐", time.Now(), time.Now()))

	// 预加载类别
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(categoryRows(4, "Food & Dining", "expense", "🍔"))

	list, err := ListTransactions(1, TransactionFilter{
		Type:      models.TypeExpense,
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(2), list[0].ID)
	assert.Equal(t, "Food & Dining", list[0].Category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransaction_OwnershipIsolation(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 记录属于其他用户时，结果与不存在完全一致
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(7), uint(2)).
		WillReturnRows(sqlmock.NewRows(txColumns))

	tx, err := GetTransaction(7, 2)
	assert.Nil(t, tx)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTransaction_Found(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(7), uint(1)).
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow(7, 1, "1500.00", "expense", 5, time.Now(), "房租", time.Now(), time.Now()))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(categoryRows(5, "Rent", "expense", "🏠"))

	tx, err := GetTransaction(7, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(7), tx.ID)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("1500.00")))
	assert.Equal(t, "Rent", tx.Category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransaction_OK(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 类别校验
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(5)).
		WillReturnRows(categoryRows(5, "Rent", "expense", "🏠"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transactions`").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	// 回读带类别的完整记录
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow(11, 1, "1500.00", "expense", 5, time.Now(), "房租", time.Now(), time.Now()))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(categoryRows(5, "Rent", "expense", "🏠"))

	tx := &models.Transaction{
		UserID:     1,
		Amount:     decimal.NewFromInt(1500),
		Type:       models.TypeExpense,
		CategoryID: 5,
		Date:       time.Now(),
		// 调用方传入的创建时间会被服务端覆盖
		CreatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, CreateTransaction(tx))
	assert.Equal(t, uint(11), tx.ID)
	assert.Equal(t, "Rent", tx.Category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransaction_InvalidCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(999)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	tx := &models.Transaction{
		UserID:     1,
		Amount:     decimal.NewFromInt(100),
		Type:       models.TypeExpense,
		CategoryID: 999,
		Date:       time.Now(),
	}
	err := CreateTransaction(tx)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	// 校验失败时不应产生任何写入
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransaction_ForeignPrivateCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 其他用户的私有类别按不存在处理
	otherUser := uint(99)
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "icon", "user_id", "created_at", "updated_at"}).
			AddRow(42, "My Hobby", "expense", "🎣", otherUser, time.Now(), time.Now()))

	tx := &models.Transaction{
		UserID:     1,
		Amount:     decimal.NewFromInt(100),
		Type:       models.TypeExpense,
		CategoryID: 42,
		Date:       time.Now(),
	}
	assert.ErrorIs(t, CreateTransaction(tx), ErrInvalidCategory)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTransaction_CategoryTypeMismatch(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 支出交易不能挂在收入类别下
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(1)).
		WillReturnRows(categoryRows(1, "Salary", "income", "💰"))

	tx := &models.Transaction{
		UserID:     1,
		Amount:     decimal.NewFromInt(100),
		Type:       models.TypeExpense,
		CategoryID: 1,
		Date:       time.Now(),
	}
	assert.ErrorIs(t, CreateTransaction(tx), ErrCategoryTypeMismatch)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTransaction_NotFoundOrForbidden(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// id 存在但属于其他用户：按 (id, user_id) 查询无结果，
	// 不执行任何 UPDATE，存储保持原样
	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(7), uint(2)).
		WillReturnRows(sqlmock.NewRows(txColumns))

	tx := &models.Transaction{
		ID:         7,
		UserID:     2,
		Amount:     decimal.NewFromInt(1),
		Type:       models.TypeExpense,
		CategoryID: 5,
		Date:       time.Now(),
	}
	assert.ErrorIs(t, UpdateTransaction(tx), ErrTransactionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTransaction_OK(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(7), uint(1)).
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow(7, 1, "100.00", "expense", 4, time.Now(), "旧描述", time.Now(), time.Now()))

	mock.ExpectQuery("SELECT .* FROM `categories`").
		WithArgs(uint(5)).
		WillReturnRows(categoryRows(5, "Rent", "expense", "🏠"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow(7, 1, "1500.00", "expense", 5, time.Now(), "", time.Now(), time.Now()))
	mock.ExpectQuery("SELECT .* FROM `categories`").
		WillReturnRows(categoryRows(5, "Rent", "expense", "🏠"))

	tx := &models.Transaction{
		ID:         7,
		UserID:     1,
		Amount:     decimal.NewFromInt(1500),
		Type:       models.TypeExpense,
		CategoryID: 5,
		Date:       time.Now(),
		// 描述允许清空
		Description: "",
	}
	require.NoError(t, UpdateTransaction(tx))
	assert.Equal(t, "Rent", tx.Category.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTransaction_OK(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(7), uint(1)).
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow(7, 1, "100.00", "expense", 4, time.Now(), "", time.Now(), time.Now()))

	// 物理删除
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `transactions`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, DeleteTransaction(7, 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTransaction_NotFoundOrForbidden(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `transactions`").
		WithArgs(uint(7), uint(2)).
		WillReturnRows(sqlmock.NewRows(txColumns))

	assert.ErrorIs(t, DeleteTransaction(7, 2), ErrTransactionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategoriesByType(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 目录接口无需登录，只对外列出全局类别
	mock.ExpectQuery("SELECT .* FROM `categories` WHERE type = .* AND user_id IS NULL ORDER BY name ASC").
		WithArgs(models.TypeIncome).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "icon", "user_id", "created_at", "updated_at"}).
			AddRow(2, "Freelance", "income", "💼", nil, time.Now(), time.Now()).
			AddRow(3, "Investments", "income", "📈", nil, time.Now(), time.Now()).
			AddRow(1, "Salary", "income", "💰", nil, time.Now(), time.Now()))

	list, err := ListCategoriesByType(models.TypeIncome)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Freelance", list[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllCategories_IncomeFirst(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 收入类别在前，支出类别在后，同方向内按名称升序；用户私有类别不出现
	mock.ExpectQuery("SELECT .* FROM `categories` WHERE user_id IS NULL ORDER BY FIELD\\(type, 'income', 'expense'\\), name ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "icon", "user_id", "created_at", "updated_at"}).
			AddRow(1, "Salary", "income", "💰", nil, time.Now(), time.Now()).
			AddRow(5, "Rent", "expense", "🏠", nil, time.Now(), time.Now()))

	list, err := ListAllCategories()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.TypeIncome, list[0].Type)
	require.NoError(t, mock.ExpectationsWereMet())
}
