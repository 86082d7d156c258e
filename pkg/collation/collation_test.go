package collation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestKey 测试自然键归一化
func TestKey(t *testing.T) {
	t.Run("忽略大小写", func(t *testing.T) {
		assert.Equal(t, Key("Fiction"), Key("fiction"))
		assert.Equal(t, Key("Fiction"), Key("FICTION"))
	})

	t.Run("忽略重音", func(t *testing.T) {
		assert.Equal(t, Key("Fiction"), Key("Fictión"))
		assert.Equal(t, Key("Poesie"), Key("Poésie"))
	})

	t.Run("不同基础字母不相等", func(t *testing.T) {
		assert.NotEqual(t, Key("Fiction"), Key("Friction"))
	})

	t.Run("中文名称保持原样", func(t *testing.T) {
		assert.Equal(t, "科幻", Key("科幻"))
	})
}

// TestKeyConcurrent 测试并发调用下归一化结果稳定
// 重复检测在每个请求里都会计算归一化键，转换器必须是请求私有的
func TestKeyConcurrent(t *testing.T) {
	const workers = 16
	results := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				results[i] = Key("Fictión Fantasy MYSTERY")
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		assert.Equal(t, "fiction fantasy mystery", results[i])
	}
}

// TestEqual 测试归一化等值判断
func TestEqual(t *testing.T) {
	assert.True(t, Equal("Fantasy", "fantasy"))
	assert.True(t, Equal("Café", "CAFE"))
	assert.False(t, Equal("Fantasy", "Fantastique"))
}
