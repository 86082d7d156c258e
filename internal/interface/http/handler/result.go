package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takinabradley/mdn-local-library/internal/application/flow"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
	"github.com/takinabradley/mdn-local-library/pkg/response"
)

// writeResult 将生命周期流程的结果写入HTTP响应
// 设计说明:
// 1. 渲染结果 → 统一JSON信封(view标识页面,data是模板数据)
// 2. 重定向结果 → 302 Found + Location头
// 3. 失败 → 按业务错误码映射HTTP状态码(response.Error)
// 所有生命周期处理器都经由这一个出口,保证三种结果的表达一致
func writeResult(c *gin.Context, result flow.Result, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}

	switch r := result.(type) {
	case flow.Render:
		response.Success(c, gin.H{
			"view": r.View,
			"data": r.Data,
		})
	case flow.Redirect:
		c.Redirect(http.StatusFound, r.Path)
	default:
		response.ErrorWithCode(c, apperrors.ErrCodeInternal, "未知的流程结果类型")
	}
}

// bindForm 绑定表单参数(表单编码或JSON皆可)
// 绑定失败返回false并已写入错误响应
func bindForm(c *gin.Context, form any) bool {
	if err := c.ShouldBind(form); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return false
	}
	return true
}
