package model

import "errors"

// 错误类型，所有错误对本次运行都是终止性的
// 调用方使用 errors.Is 判断类型，需要上下文时用 fmt.Errorf("...: %w", ErrX) 包装
var (
	// ErrInvalidParameter N 不是正整数，或算法类型为空
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNotFound 求解器运行后数据文件不存在
	ErrNotFound = errors.New("not found")

	// ErrMalformedData 数据文件某一行无法解析
	ErrMalformedData = errors.New("malformed data")

	// ErrIOFailure 创建目录或写文件失败
	ErrIOFailure = errors.New("io failure")
)
