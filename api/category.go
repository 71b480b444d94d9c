package api

import (
	"finboard/models"
	"finboard/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 类别处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建类别处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List 获取类别列表
// @Summary 获取类别列表
// @Description 不传 type 返回全部类别（收入在前、支出在后，同方向内按名称升序）；
// @Description 传 type 则只返回指定方向的类别，按名称升序。
// @Tags 类别
// @Produce json
// @Param type query string false "方向筛选 income/expense"
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categoryType := c.Query("type")

	if categoryType == "" {
		list, err := service.ListAllCategories()
		if err != nil {
			InternalError(c, SafeErrorMessage(err, "查询失败"))
			return
		}
		Success(c, list)
		return
	}

	if !models.IsValidType(categoryType) {
		BadRequest(c, "type 参数值错误，可选值：income、expense")
		return
	}

	list, err := service.ListCategoriesByType(categoryType)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, list)
}
