package genre

import (
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// 图书类型领域错误定义
var (
	// ErrGenreNotFound 图书类型不存在
	ErrGenreNotFound = apperrors.New(apperrors.ErrCodeGenreNotFound, "图书类型不存在")

	// ErrNameDuplicate 同名图书类型已存在(归一化键唯一索引冲突)
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "同名图书类型已存在")
)
