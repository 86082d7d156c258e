package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/takinabradley/mdn-local-library/internal/application/book"
	"github.com/takinabradley/mdn-local-library/internal/domain/book"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	lifecycle *appbook.Lifecycle
}

// NewBookHandler 创建图书处理器
func NewBookHandler(lifecycle *appbook.Lifecycle) *BookHandler {
	return &BookHandler{lifecycle: lifecycle}
}

// List 图书列表
// @Summary      图书列表
// @Description  全部图书的最小投影,按书名升序
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /catalog/books [get]
func (h *BookHandler) List(c *gin.Context) {
	result, err := h.lifecycle.List(c.Request.Context())
	writeResult(c, result, err)
}

// Detail 图书详情
// @Summary      图书详情
// @Description  图书信息(经缓存)、作者与类型名称、馆藏副本列表
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /catalog/book/{id} [get]
func (h *BookHandler) Detail(c *gin.Context) {
	result, err := h.lifecycle.Detail(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// CreateForm 创建表单
// @Summary      图书创建表单
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /catalog/book/create [get]
func (h *BookHandler) CreateForm(c *gin.Context) {
	writeResult(c, h.lifecycle.CreateForm(), nil)
}

// Create 创建图书
// @Summary      创建图书
// @Description  校验含作者/类型引用的存在性;书名已存在(忽略大小写与重音)时重定向到已有图书
// @Tags         图书
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        title     formData string true "书名"
// @Param        summary   formData string true "内容简介"
// @Param        isbn      formData string true "ISBN(10位或13位数字)"
// @Param        author_id formData int    true "作者ID"
// @Param        genre_id  formData int    true "类型ID"
// @Success      302 {string} string "重定向到图书详情"
// @Router       /catalog/book/create [post]
func (h *BookHandler) Create(c *gin.Context) {
	var form book.Form
	if !bindForm(c, &form) {
		return
	}
	result, err := h.lifecycle.Create(c.Request.Context(), form)
	writeResult(c, result, err)
}

// UpdateForm 更新表单
// @Summary      图书更新表单
// @Description  预填充当前字段值
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /catalog/book/{id}/update [get]
func (h *BookHandler) UpdateForm(c *gin.Context) {
	result, err := h.lifecycle.UpdateForm(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// Update 更新图书
// @Summary      更新图书
// @Description  更新成功后失效详情缓存
// @Tags         图书
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id        path     int    true "图书ID"
// @Param        title     formData string true "书名"
// @Param        summary   formData string true "内容简介"
// @Param        isbn      formData string true "ISBN(10位或13位数字)"
// @Param        author_id formData int    true "作者ID"
// @Param        genre_id  formData int    true "类型ID"
// @Success      302 {string} string "重定向到图书详情"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /catalog/book/{id}/update [post]
func (h *BookHandler) Update(c *gin.Context) {
	var form book.Form
	if !bindForm(c, &form) {
		return
	}
	result, err := h.lifecycle.Update(c.Request.Context(), c.Param("id"), form)
	writeResult(c, result, err)
}

// DeleteConfirm 删除确认
// @Summary      图书删除确认
// @Description  展示将被删除的图书与其馆藏副本;图书不存在时重定向到列表
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /catalog/book/{id}/delete [get]
func (h *BookHandler) DeleteConfirm(c *gin.Context) {
	result, err := h.lifecycle.DeleteConfirm(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}

// Delete 删除图书
// @Summary      删除图书
// @Description  存在馆藏副本时拒绝删除并回显确认页;成功后失效详情缓存并重定向到列表
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      302 {string} string "重定向到图书列表"
// @Router       /catalog/book/{id}/delete [post]
func (h *BookHandler) Delete(c *gin.Context) {
	result, err := h.lifecycle.Delete(c.Request.Context(), c.Param("id"))
	writeResult(c, result, err)
}
