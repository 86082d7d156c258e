package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, "查询图书失败")

	assert.Equal(t, ErrCodeInternal, err.Code)
	assert.Equal(t, "查询图书失败", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("redis: connection pool timeout")
	err := WrapWithCode(ErrCodeCacheError, cause, "读取图书缓存失败")

	assert.Equal(t, ErrCodeCacheError, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestGetAppError(t *testing.T) {
	t.Run("直接提取AppError", func(t *testing.T) {
		original := New(ErrCodeGenreNotFound, "图书类型不存在")
		extracted := GetAppError(original)
		assert.Equal(t, ErrCodeGenreNotFound, extracted.Code)
	})

	t.Run("穿透fmt.Errorf包装", func(t *testing.T) {
		original := New(ErrCodeBookNotFound, "图书不存在")
		wrapped := fmt.Errorf("处理请求: %w", original)

		extracted := GetAppError(wrapped)
		assert.Equal(t, ErrCodeBookNotFound, extracted.Code)
	})

	t.Run("非AppError包装为内部错误", func(t *testing.T) {
		extracted := GetAppError(errors.New("some io error"))
		assert.Equal(t, ErrCodeInternal, extracted.Code)
	})
}

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"通用NotFound", ErrNotFound, true},
		{"类型不存在", New(ErrCodeGenreNotFound, "图书类型不存在"), true},
		{"副本不存在", New(ErrCodeInstanceNotFound, "馆藏副本不存在"), true},
		{"包装后的NotFound", fmt.Errorf("读取: %w", New(ErrCodeAuthorNotFound, "作者不存在")), true},
		{"重复记录不属于NotFound", New(ErrCodeDuplicateEntry, "重复"), false},
		{"内部错误不属于NotFound", ErrInternal, false},
		{"普通error不属于NotFound", errors.New("not found"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNotFound(tc.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	// 携带底层错误时Error()包含两者,便于日志排查
	cause := errors.New("dial tcp: timeout")
	err := Wrap(cause, "数据库错误")
	require.Contains(t, err.Error(), "数据库错误")
	require.Contains(t, err.Error(), "dial tcp: timeout")

	// 无底层错误时是"[错误码] 消息"
	bare := New(ErrCodeBusinessError, "业务错误")
	assert.Equal(t, "[40000] 业务错误", bare.Error())
}
