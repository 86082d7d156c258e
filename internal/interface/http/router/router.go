package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/takinabradley/mdn-local-library/internal/infrastructure/config"
	"github.com/takinabradley/mdn-local-library/internal/interface/http/handler"
	"github.com/takinabradley/mdn-local-library/internal/interface/http/middleware"
	"github.com/takinabradley/mdn-local-library/pkg/response"
)

// New 创建并配置Gin引擎
// 设计说明:
// 1. 路由按实体分组,每种实体一套生命周期路由(列表/详情/创建/更新/删除)
// 2. 详情路径是/catalog/genre/:id,列表是复数/catalog/genres,
//    创建/更新/删除在详情路径下挂子路径,GET展示表单、POST提交
// 3. /metrics暴露Prometheus指标,/swagger/*any暴露API文档
func New(
	cfg *config.Config,
	genreHandler *handler.GenreHandler,
	authorHandler *handler.AuthorHandler,
	bookHandler *handler.BookHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	catalog := r.Group("/catalog")
	{
		// 图书类型
		catalog.GET("/genres", genreHandler.List)
		catalog.GET("/genre/create", genreHandler.CreateForm)
		catalog.POST("/genre/create", genreHandler.Create)
		catalog.GET("/genre/:id", genreHandler.Detail)
		catalog.GET("/genre/:id/update", genreHandler.UpdateForm)
		catalog.POST("/genre/:id/update", genreHandler.Update)
		catalog.GET("/genre/:id/delete", genreHandler.DeleteConfirm)
		catalog.POST("/genre/:id/delete", genreHandler.Delete)

		// 作者
		catalog.GET("/authors", authorHandler.List)
		catalog.GET("/author/create", authorHandler.CreateForm)
		catalog.POST("/author/create", authorHandler.Create)
		catalog.GET("/author/:id", authorHandler.Detail)
		catalog.GET("/author/:id/update", authorHandler.UpdateForm)
		catalog.POST("/author/:id/update", authorHandler.Update)
		catalog.GET("/author/:id/delete", authorHandler.DeleteConfirm)
		catalog.POST("/author/:id/delete", authorHandler.Delete)

		// 图书
		catalog.GET("/books", bookHandler.List)
		catalog.GET("/book/create", bookHandler.CreateForm)
		catalog.POST("/book/create", bookHandler.Create)
		catalog.GET("/book/:id", bookHandler.Detail)
		catalog.GET("/book/:id/update", bookHandler.UpdateForm)
		catalog.POST("/book/:id/update", bookHandler.Update)
		catalog.GET("/book/:id/delete", bookHandler.DeleteConfirm)
		catalog.POST("/book/:id/delete", bookHandler.Delete)
	}

	return r
}
