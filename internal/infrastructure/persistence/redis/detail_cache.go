package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/takinabradley/mdn-local-library/internal/domain/book"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// DetailCache 图书详情缓存(Redis实现)
// 设计说明：
// 1. Key设计：book:detail:{id}，冒号分隔命名空间，便于管理和监控
// 2. 值为JSON序列化的领域实体，过期时间由配置决定
// 3. 未命中返回(nil, nil)，调用方回源数据库并回填
type DetailCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDetailCache 创建图书详情缓存
func NewDetailCache(client *redis.Client, ttl time.Duration) *DetailCache {
	return &DetailCache{client: client, ttl: ttl}
}

func detailKey(id uint) string {
	return fmt.Sprintf("book:detail:%d", id)
}

// GetBook 读取缓存，未命中返回(nil, nil)
func (c *DetailCache) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	data, err := c.client.Get(ctx, detailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.WrapWithCode(apperrors.ErrCodeCacheError, err, "读取图书缓存失败")
	}

	var b book.Book
	if err := json.Unmarshal(data, &b); err != nil {
		// 缓存内容损坏按未命中处理,回源后覆盖
		return nil, nil
	}
	return &b, nil
}

// SetBook 写入缓存
func (c *DetailCache) SetBook(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(b)
	if err != nil {
		return apperrors.WrapWithCode(apperrors.ErrCodeCacheError, err, "序列化图书失败")
	}

	if err := c.client.Set(ctx, detailKey(b.ID), data, c.ttl).Err(); err != nil {
		return apperrors.WrapWithCode(apperrors.ErrCodeCacheError, err, "写入图书缓存失败")
	}
	return nil
}

// DeleteBook 删除缓存(更新/删除图书后调用)
func (c *DetailCache) DeleteBook(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, detailKey(id)).Err(); err != nil {
		return apperrors.WrapWithCode(apperrors.ErrCodeCacheError, err, "删除图书缓存失败")
	}
	return nil
}
