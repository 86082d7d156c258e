package book

import (
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrTitleDuplicate 同名图书已存在
	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "同名图书已存在")
)
