package main

import (
	"fmt"
	"log"

	appauthor "github.com/takinabradley/mdn-local-library/internal/application/author"
	appbook "github.com/takinabradley/mdn-local-library/internal/application/book"
	appgenre "github.com/takinabradley/mdn-local-library/internal/application/genre"
	"github.com/takinabradley/mdn-local-library/internal/infrastructure/config"
	"github.com/takinabradley/mdn-local-library/internal/infrastructure/persistence/mysql"
	"github.com/takinabradley/mdn-local-library/internal/infrastructure/persistence/redis"
	"github.com/takinabradley/mdn-local-library/internal/interface/http/handler"
	"github.com/takinabradley/mdn-local-library/internal/interface/http/router"
	"github.com/takinabradley/mdn-local-library/pkg/metrics"
)

// main 主程序入口
// 说明：手动依赖注入；wire.go提供等价的Wire版本（wire gen ./cmd/api）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	if cfg.Redis.Enabled {
		fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	} else {
		fmt.Printf("  - Redis: 未启用(详情缓存关闭)\n")
	}

	// 2. 初始化指标
	metrics.InitMetrics()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化详情缓存(可选)
	var detailCache appbook.DetailCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			log.Fatalf("初始化Redis失败: %v", err)
		}
		detailCache = redis.NewDetailCache(redisClient, cfg.Cache.BookDetailTTL)
	}

	// 5. 依赖注入（手动组装）
	// Repository ← Lifecycle ← Handler

	// 基础设施层
	genreRepo := mysql.NewGenreRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	instanceRepo := mysql.NewInstanceRepository(db)

	// 应用层:每种实体一个生命周期控制器
	genreLifecycle := appgenre.NewLifecycle(genreRepo, bookRepo)
	authorLifecycle := appauthor.NewLifecycle(authorRepo, bookRepo)
	bookLifecycle := appbook.NewLifecycle(bookRepo, authorRepo, genreRepo, instanceRepo, detailCache)

	// 接口层
	genreHandler := handler.NewGenreHandler(genreLifecycle)
	authorHandler := handler.NewAuthorHandler(authorLifecycle)
	bookHandler := handler.NewBookHandler(bookLifecycle)

	// 6. 初始化Gin引擎并注册路由
	r := router.New(cfg, genreHandler, authorHandler, bookHandler)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   图书目录: http://localhost%s/catalog/books\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}
