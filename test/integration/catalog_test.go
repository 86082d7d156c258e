package integration

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takinabradley/mdn-local-library/internal/domain/bookinstance"
)

func genreForm(name string) url.Values {
	return url.Values{"name": {name}}
}

func authorForm(first, family string) url.Values {
	return url.Values{
		"first_name":    {first},
		"family_name":   {family},
		"date_of_birth": {"1920-01-02"},
	}
}

func bookForm(title, authorID, genreID string) url.Values {
	return url.Values{
		"title":     {title},
		"summary":   {"集成测试用图书简介"},
		"isbn":      {"9780756404741"},
		"author_id": {authorID},
		"genre_id":  {genreID},
	}
}

// TestGenreLifecycle 图书类型全生命周期:创建→去重→详情→改名→删除
func TestGenreLifecycle(t *testing.T) {
	app := NewApp(t)

	// 创建表单
	render := DecodeRender(t, app.Get(t, "/catalog/genre/create"))
	assert.Equal(t, "genre_form", render.View)

	// 创建
	location := RequireRedirect(t, app.PostForm(t, "/catalog/genre/create", genreForm("Science Fiction")))
	assert.Equal(t, "/catalog/genre/1", location)

	// 忽略大小写的重复提交:重定向到已有记录,不新建
	location = RequireRedirect(t, app.PostForm(t, "/catalog/genre/create", genreForm("SCIENCE FICTION")))
	assert.Equal(t, "/catalog/genre/1", location)

	// 重音变体同样命中
	location = RequireRedirect(t, app.PostForm(t, "/catalog/genre/create", genreForm("Sciénce Fictión")))
	assert.Equal(t, "/catalog/genre/1", location)

	// 详情
	render = DecodeRender(t, app.Get(t, "/catalog/genre/1"))
	assert.Equal(t, "genre_detail", render.View)
	genreData := render.Data["genre"].(map[string]interface{})
	assert.Equal(t, "Science Fiction", genreData["name"])

	// 列表只有一条
	render = DecodeRender(t, app.Get(t, "/catalog/genres"))
	assert.Len(t, render.Data["genre_list"], 1)

	// 改名(大小写调整落到同一条记录上,允许覆盖)
	location = RequireRedirect(t, app.PostForm(t, "/catalog/genre/1/update", genreForm("science fiction")))
	assert.Equal(t, "/catalog/genre/1", location)

	render = DecodeRender(t, app.Get(t, "/catalog/genre/1"))
	genreData = render.Data["genre"].(map[string]interface{})
	assert.Equal(t, "science fiction", genreData["name"])

	// 删除
	location = RequireRedirect(t, app.PostForm(t, "/catalog/genre/1/delete", nil))
	assert.Equal(t, "/catalog/genres", location)

	// 删除后详情404
	w := app.Get(t, "/catalog/genre/1")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 删除幂等:重复删除仍然重定向到列表
	location = RequireRedirect(t, app.PostForm(t, "/catalog/genre/1/delete", nil))
	assert.Equal(t, "/catalog/genres", location)
}

// TestGenreValidationEcho 校验失败:回显表单与错误信息,不产生重定向
func TestGenreValidationEcho(t *testing.T) {
	app := NewApp(t)

	render := DecodeRender(t, app.PostForm(t, "/catalog/genre/create", genreForm("ab")))
	assert.Equal(t, "genre_form", render.View)
	assert.NotEmpty(t, render.Data["errors"])

	// 未写入任何记录
	listRender := DecodeRender(t, app.Get(t, "/catalog/genres"))
	assert.Empty(t, listRender.Data["genre_list"])
}

// TestDeleteBlockedByReferences 删除安全:被引用的类型/作者拒绝删除
func TestDeleteBlockedByReferences(t *testing.T) {
	app := NewApp(t)

	RequireRedirect(t, app.PostForm(t, "/catalog/genre/create", genreForm("Fantasy")))
	RequireRedirect(t, app.PostForm(t, "/catalog/author/create", authorForm("Patrick", "Rothfuss")))
	RequireRedirect(t, app.PostForm(t, "/catalog/book/create", bookForm("The Name of the Wind", "1", "1")))

	// 类型删除被图书引用阻止,回显确认页
	render := DecodeRender(t, app.PostForm(t, "/catalog/genre/1/delete", nil))
	assert.Equal(t, "genre_delete", render.View)
	assert.Len(t, render.Data["genre_books"], 1)

	// 作者删除同样被阻止
	render = DecodeRender(t, app.PostForm(t, "/catalog/author/1/delete", nil))
	assert.Equal(t, "author_delete", render.View)
	assert.Len(t, render.Data["author_books"], 1)

	// 删除图书后两者都可以删除
	location := RequireRedirect(t, app.PostForm(t, "/catalog/book/1/delete", nil))
	assert.Equal(t, "/catalog/books", location)

	location = RequireRedirect(t, app.PostForm(t, "/catalog/genre/1/delete", nil))
	assert.Equal(t, "/catalog/genres", location)

	location = RequireRedirect(t, app.PostForm(t, "/catalog/author/1/delete", nil))
	assert.Equal(t, "/catalog/authors", location)
}

// TestBookLifecycle 图书全生命周期:引用校验→详情→副本阻止删除
func TestBookLifecycle(t *testing.T) {
	app := NewApp(t)
	ctx := context.Background()

	RequireRedirect(t, app.PostForm(t, "/catalog/genre/create", genreForm("Fantasy")))
	RequireRedirect(t, app.PostForm(t, "/catalog/author/create", authorForm("Patrick", "Rothfuss")))

	// 悬空引用按校验错误回显
	render := DecodeRender(t, app.PostForm(t, "/catalog/book/create", bookForm("The Name of the Wind", "99", "1")))
	assert.Equal(t, "book_form", render.View)
	assert.NotEmpty(t, render.Data["errors"])

	// 正常创建
	location := RequireRedirect(t, app.PostForm(t, "/catalog/book/create", bookForm("The Name of the Wind", "1", "1")))
	assert.Equal(t, "/catalog/book/1", location)

	// 详情补全作者与类型名称
	render = DecodeRender(t, app.Get(t, "/catalog/book/1"))
	assert.Equal(t, "book_detail", render.View)
	bookData := render.Data["book"].(map[string]interface{})
	assert.Equal(t, "Rothfuss, Patrick", bookData["author_name"])
	assert.Equal(t, "Fantasy", bookData["genre_name"])

	// 添加馆藏副本后删除被阻止
	require.NoError(t, app.Instances.Create(ctx, &bookinstance.Instance{
		BookID:  1,
		Imprint: "DAW Books, 2007",
		Status:  bookinstance.StatusAvailable,
	}))

	render = DecodeRender(t, app.PostForm(t, "/catalog/book/1/delete", nil))
	assert.Equal(t, "book_delete", render.View)
	assert.Len(t, render.Data["book_instances"], 1)

	// 移除副本后删除成功
	require.NoError(t, app.Instances.Delete(ctx, 1))
	location = RequireRedirect(t, app.PostForm(t, "/catalog/book/1/delete", nil))
	assert.Equal(t, "/catalog/books", location)
}

// TestDetailNotFound 详情404:不存在的ID与非法格式的ID
func TestDetailNotFound(t *testing.T) {
	app := NewApp(t)

	for _, path := range []string{
		"/catalog/genre/999",
		"/catalog/genre/abc",
		"/catalog/author/999",
		"/catalog/book/999",
	} {
		w := app.Get(t, path)
		assert.Equal(t, http.StatusNotFound, w.Code, "path=%s", path)
	}
}

// TestPing 健康检查
func TestPing(t *testing.T) {
	app := NewApp(t)

	w := app.Get(t, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}
