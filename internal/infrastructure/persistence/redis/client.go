// Package redis 提供目录服务的Redis接入:客户端工厂与图书详情缓存
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/takinabradley/mdn-local-library/internal/infrastructure/config"
)

// NewClient 创建Redis客户端并验证连通性
// 设计说明：
// 1. Redis在目录服务中是可选依赖(config.Redis.Enabled)，只有启用时才会走到这里；
//    启动期Ping失败视为配置错误直接返回，而不是带着坏连接降级运行
// 2. 连接池与超时参数全部来自配置，缓存只服务图书详情这一条读路径，
//    池子不需要很大
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("连接Redis失败: %w", err)
	}

	fmt.Println("✓ Redis连接成功(图书详情缓存已启用)")
	return client, nil
}
