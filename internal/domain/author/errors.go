package author

import (
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrNameDuplicate 同名作者已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "同名作者已存在")
)
