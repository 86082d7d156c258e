//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 教学说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appauthor "github.com/takinabradley/mdn-local-library/internal/application/author"
	appbook "github.com/takinabradley/mdn-local-library/internal/application/book"
	appgenre "github.com/takinabradley/mdn-local-library/internal/application/genre"
	"github.com/takinabradley/mdn-local-library/internal/infrastructure/config"
	"github.com/takinabradley/mdn-local-library/internal/infrastructure/persistence/mysql"
	"github.com/takinabradley/mdn-local-library/internal/infrastructure/persistence/redis"
	"github.com/takinabradley/mdn-local-library/internal/interface/http/handler"
	"github.com/takinabradley/mdn-local-library/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、详情缓存
var infrastructureSet = wire.NewSet(
	config.Load,        // 加载配置文件
	mysql.NewDB,        // 创建MySQL连接
	provideDetailCache, // 创建图书详情缓存(Redis未启用时为nil)
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewGenreRepository,    // 图书类型仓储
	mysql.NewAuthorRepository,   // 作者仓储
	mysql.NewBookRepository,     // 图书仓储
	mysql.NewInstanceRepository, // 馆藏副本仓储
)

// applicationSet 应用层依赖
// 包含：每种实体的生命周期控制器
var applicationSet = wire.NewSet(
	appgenre.NewLifecycle,  // 图书类型生命周期
	appauthor.NewLifecycle, // 作者生命周期
	appbook.NewLifecycle,   // 图书生命周期
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewGenreHandler,  // 图书类型处理器
	handler.NewAuthorHandler, // 作者处理器
	handler.NewBookHandler,   // 图书处理器
)

// provideDetailCache 从配置创建图书详情缓存
// 教学要点：Redis是可选依赖；未启用时返回nil接口值，
// 图书生命周期控制器对nil缓存自动退化为直查数据库
func provideDetailCache(cfg *config.Config) (appbook.DetailCache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return redis.NewDetailCache(client, cfg.Cache.BookDetailTTL), nil
}

// InitializeApp 初始化整个应用
// Wire会按正确的顺序调用所有构造函数并生成wire_gen.go
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		applicationSet,
		handlerSet,
		router.New,
	)
	return nil, nil
}
