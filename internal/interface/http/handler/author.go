package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/takinabradley/mdn-local-library/internal/application/author"
	"github.com/takinabradley/mdn-local-library/internal/domain/author"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	lifecycle *appauthor.Lifecycle
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(lifecycle *appauthor.Lifecycle) *AuthorHandler {
	return &AuthorHandler{lifecycle: lifecycle}
}

// List 作者列表
// @Summary      作者列表
// @Description  全部作者,按姓氏+名字升序
// @Tags         作者
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /catalog/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	result, err := h.lifecycle.List(c.Request.Context())
	writeResult(c, result, err)
}

// Detail 作者详情
// @Summary      作者详情
// @Description  作者信息及其名下全部图书
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /catalog/author/{id} [get]
func (h *AuthorHandler) Detail(c *gin.Context) {
	result, err := h.lifecycle.Detail(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// CreateForm 创建表单
// @Summary      作者创建表单
// @Tags         作者
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /catalog/author/create [get]
func (h *AuthorHandler) CreateForm(c *gin.Context) {
	writeResult(c, h.lifecycle.CreateForm(), nil)
}

// Create 创建作者
// @Summary      创建作者
// @Description  校验失败回显表单;展示名已存在(忽略大小写与重音)时重定向到已有作者
// @Tags         作者
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        first_name    formData string true  "名字"
// @Param        family_name   formData string true  "姓氏"
// @Param        date_of_birth formData string false "出生日期(YYYY-MM-DD)"
// @Param        date_of_death formData string false "去世日期(YYYY-MM-DD)"
// @Success      302 {string} string "重定向到作者详情"
// @Router       /catalog/author/create [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var form author.Form
	if !bindForm(c, &form) {
		return
	}
	result, err := h.lifecycle.Create(c.Request.Context(), form)
	writeResult(c, result, err)
}

// UpdateForm 更新表单
// @Summary      作者更新表单
// @Description  预填充当前字段值
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /catalog/author/{id}/update [get]
func (h *AuthorHandler) UpdateForm(c *gin.Context) {
	result, err := h.lifecycle.UpdateForm(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// Update 更新作者
// @Summary      更新作者
// @Tags         作者
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id            path     int    true  "作者ID"
// @Param        first_name    formData string true  "名字"
// @Param        family_name   formData string true  "姓氏"
// @Param        date_of_birth formData string false "出生日期(YYYY-MM-DD)"
// @Param        date_of_death formData string false "去世日期(YYYY-MM-DD)"
// @Success      302 {string} string "重定向到作者详情"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /catalog/author/{id}/update [post]
func (h *AuthorHandler) Update(c *gin.Context) {
	var form author.Form
	if !bindForm(c, &form) {
		return
	}
	result, err := h.lifecycle.Update(c.Request.Context(), c.Param("id"), form)
	writeResult(c, result, err)
}

// DeleteConfirm 删除确认
// @Summary      作者删除确认
// @Description  展示将被删除的作者与其名下图书;作者不存在时重定向到列表
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response
// @Router       /catalog/author/{id}/delete [get]
func (h *AuthorHandler) DeleteConfirm(c *gin.Context) {
	result, err := h.lifecycle.DeleteConfirm(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// Delete 删除作者
// @Summary      删除作者
// @Description  名下存在图书时拒绝删除并回显确认页;成功或记录已不存在时重定向到列表
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      302 {string} string "重定向到作者列表"
// @Router       /catalog/author/{id}/delete [post]
func (h *AuthorHandler) Delete(c *gin.Context) {
	result, err := h.lifecycle.Delete(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}
