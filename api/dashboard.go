package api

import (
	"finboard/middleware"
	"finboard/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct{}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// GetStats 获取仪表盘统计
// @Summary 获取仪表盘统计
// @Description 返回当前用户的仪表盘数据：当月收支总额与结余、近 6 个月收支趋势、
// @Description 当月支出的类别分布（金额降序）以及最近 5 条交易。每次请求实时计算。
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.DashboardStats} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	stats, err := service.GetDashboardStats(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "统计计算失败"))
		return
	}

	Success(c, stats)
}
