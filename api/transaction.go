package api

import (
	"errors"
	"strconv"
	"time"

	"finboard/middleware"
	"finboard/models"
	"finboard/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler 交易记录处理器
type TransactionHandler struct{}

// NewTransactionHandler 创建交易记录处理器
func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// TransactionRequest 创建/更新交易请求
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required" example:"99.99"`
	Type        string          `json:"type" binding:"required,oneof=income expense" example:"expense"`
	CategoryID  uint            `json:"category_id" binding:"required" example:"4"`
	Date        string          `json:"date" binding:"required" example:"2024-01-15"`
	Description string          `json:"description" example:"午餐"`
}

// TransactionListRequest 交易列表请求
type TransactionListRequest struct {
	Type      string `form:"type" example:"expense"`
	StartDate string `form:"start_date" example:"2024-01-01"`
	EndDate   string `form:"end_date" example:"2024-12-31"`
}

// parseDay 解析 YYYY-MM-DD 格式的日期（本地时区）
func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// writeServiceError 将业务错误映射为 HTTP 响应
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrCategoryTypeMismatch):
		BadRequest(c, err.Error())
	default:
		InternalError(c, SafeErrorMessage(err, fallback))
	}
}

// Create 创建交易记录
// @Summary 创建交易记录
// @Description 创建一条新的收入或支出记录，类别必须存在且方向一致
// @Tags 交易记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 金额只保存绝对值，方向由 type 表示
	if req.Amount.IsNegative() {
		BadRequest(c, "金额不能为负数")
		return
	}

	date, err := parseDay(req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	tx := models.Transaction{
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Date:        date,
		Description: req.Description,
	}

	if err := service.CreateTransaction(&tx); err != nil {
		writeServiceError(c, err, "创建交易记录失败")
		return
	}

	SuccessWithMessage(c, "创建成功", tx)
}

// List 获取交易列表
// @Summary 获取交易列表
// @Description 获取当前用户的交易列表，支持按方向和日期范围筛选，按日期降序返回
// @Tags 交易记录
// @Produce json
// @Security BearerAuth
// @Param type query string false "方向筛选 income/expense"
// @Param start_date query string false "开始日期（含当天，2024-01-01）"
// @Param end_date query string false "结束日期（含当天，2024-12-31）"
// @Success 200 {object} Response{data=[]models.Transaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Type != "" && !models.IsValidType(req.Type) {
		BadRequest(c, "type 参数值错误，可选值：income、expense")
		return
	}

	filter := service.TransactionFilter{Type: req.Type}
	if req.StartDate != "" {
		start, err := parseDay(req.StartDate)
		if err != nil {
			BadRequest(c, "start_date 格式错误，应为: 2006-01-02")
			return
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := parseDay(req.EndDate)
		if err != nil {
			BadRequest(c, "end_date 格式错误，应为: 2006-01-02")
			return
		}
		// 包含结束日期当天
		end = end.Add(24*time.Hour - time.Second)
		filter.EndDate = &end
	}

	list, err := service.ListTransactions(userID, filter)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, list)
}

// Get 获取单条交易记录
// @Summary 获取单条交易记录
// @Description 根据ID获取交易详情，只能访问自己的记录
// @Tags 交易记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易记录ID"
// @Success 200 {object} Response{data=models.Transaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	tx, err := service.GetTransaction(uint(id), userID)
	if err != nil {
		writeServiceError(c, err, "查询失败")
		return
	}

	Success(c, tx)
}

// Update 更新交易记录
// @Summary 更新交易记录
// @Description 更新指定交易的金额、方向、类别、日期和描述，只能修改自己的记录
// @Tags 交易记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易记录ID"
// @Param request body TransactionRequest true "交易信息"
// @Success 200 {object} Response{data=models.Transaction} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	if req.Amount.IsNegative() {
		BadRequest(c, "金额不能为负数")
		return
	}

	date, err := parseDay(req.Date)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}

	tx := models.Transaction{
		ID:          uint(id),
		UserID:      userID,
		Amount:      req.Amount,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
		Date:        date,
		Description: req.Description,
	}

	if err := service.UpdateTransaction(&tx); err != nil {
		writeServiceError(c, err, "更新失败")
		return
	}

	SuccessWithMessage(c, "更新成功", tx)
}

// Delete 删除交易记录
// @Summary 删除交易记录
// @Description 删除指定的交易记录（物理删除），只能删除自己的记录
// @Tags 交易记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "交易记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	if err := service.DeleteTransaction(uint(id), userID); err != nil {
		writeServiceError(c, err, "删除失败")
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}
