package bookinstance

import (
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// 馆藏副本领域错误定义
var (
	// ErrInstanceNotFound 馆藏副本不存在
	ErrInstanceNotFound = apperrors.New(apperrors.ErrCodeInstanceNotFound, "馆藏副本不存在")
)
