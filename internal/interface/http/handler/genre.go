package handler

import (
	"github.com/gin-gonic/gin"

	appgenre "github.com/takinabradley/mdn-local-library/internal/application/genre"
	"github.com/takinabradley/mdn-local-library/internal/domain/genre"
)

// GenreHandler 图书类型HTTP处理器
// 每个路由只做两件事:绑定参数、调用生命周期控制器,结果交给writeResult
type GenreHandler struct {
	lifecycle *appgenre.Lifecycle
}

// NewGenreHandler 创建图书类型处理器
func NewGenreHandler(lifecycle *appgenre.Lifecycle) *GenreHandler {
	return &GenreHandler{lifecycle: lifecycle}
}

// List 图书类型列表
// @Summary      图书类型列表
// @Description  全部图书类型,按名称升序
// @Tags         图书类型
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /catalog/genres [get]
func (h *GenreHandler) List(c *gin.Context) {
	result, err := h.lifecycle.List(c.Request.Context())
	writeResult(c, result, err)
}

// Detail 图书类型详情
// @Summary      图书类型详情
// @Description  类型信息及归属该类型的全部图书
// @Tags         图书类型
// @Produce      json
// @Param        id path int true "类型ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "类型不存在"
// @Router       /catalog/genre/{id} [get]
func (h *GenreHandler) Detail(c *gin.Context) {
	result, err := h.lifecycle.Detail(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// CreateForm 创建表单
// @Summary      图书类型创建表单
// @Tags         图书类型
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /catalog/genre/create [get]
func (h *GenreHandler) CreateForm(c *gin.Context) {
	writeResult(c, h.lifecycle.CreateForm(), nil)
}

// Create 创建图书类型
// @Summary      创建图书类型
// @Description  校验失败回显表单;名称已存在(忽略大小写与重音)时重定向到已有类型
// @Tags         图书类型
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        name formData string true "类型名称"
// @Success      200 {object} response.Response "校验失败回显"
// @Success      302 {string} string "重定向到类型详情"
// @Router       /catalog/genre/create [post]
func (h *GenreHandler) Create(c *gin.Context) {
	var form genre.Form
	if !bindForm(c, &form) {
		return
	}
	result, err := h.lifecycle.Create(c.Request.Context(), form)
	writeResult(c, result, err)
}

// UpdateForm 更新表单
// @Summary      图书类型更新表单
// @Description  预填充当前字段值
// @Tags         图书类型
// @Produce      json
// @Param        id path int true "类型ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "类型不存在"
// @Router       /catalog/genre/{id}/update [get]
func (h *GenreHandler) UpdateForm(c *gin.Context) {
	result, err := h.lifecycle.UpdateForm(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// Update 更新图书类型
// @Summary      更新图书类型
// @Tags         图书类型
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id path int true "类型ID"
// @Param        name formData string true "类型名称"
// @Success      302 {string} string "重定向到类型详情"
// @Failure      404 {object} response.Response "类型不存在"
// @Router       /catalog/genre/{id}/update [post]
func (h *GenreHandler) Update(c *gin.Context) {
	var form genre.Form
	if !bindForm(c, &form) {
		return
	}
	result, err := h.lifecycle.Update(c.Request.Context(), c.Param("id"), form)
	writeResult(c, result, err)
}

// DeleteConfirm 删除确认
// @Summary      图书类型删除确认
// @Description  展示将被删除的类型与引用它的图书;类型不存在时重定向到列表
// @Tags         图书类型
// @Produce      json
// @Param        id path int true "类型ID"
// @Success      200 {object} response.Response
// @Router       /catalog/genre/{id}/delete [get]
func (h *GenreHandler) DeleteConfirm(c *gin.Context) {
	result, err := h.lifecycle.DeleteConfirm(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// Delete 删除图书类型
// @Summary      删除图书类型
// @Description  存在引用图书时拒绝删除并回显确认页;成功或记录已不存在时重定向到列表
// @Tags         图书类型
// @Produce      json
// @Param        id path int true "类型ID"
// @Success      302 {string} string "重定向到类型列表"
// @Router       /catalog/genre/{id}/delete [post]
func (h *GenreHandler) Delete(c *gin.Context) {
	result, err := h.lifecycle.Delete(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}
