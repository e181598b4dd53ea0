package convert

import (
	"fmt"
	"strconv"
	"unsafe"
)

// Signed 是所有支持的有符号整数类型的约束接口
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// bitSize 返回 T 的位宽，用于 strconv.ParseInt 的范围检查
func bitSize[T Signed]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// ParseString 将十进制字符串解析为 T，超出 T 的范围视为错误
func ParseString[T Signed](s string) (T, error) {
	val, err := strconv.ParseInt(s, 10, bitSize[T]())
	if err != nil {
		return 0, err
	}
	return T(val), nil
}

// ParseStrings 将字符串切片逐个解析为 T 的切片
func ParseStrings[T Signed](strings []string) ([]T, error) {
	result := make([]T, len(strings))
	for i, s := range strings {
		val, err := ParseString[T](s)
		if err != nil {
			return nil, fmt.Errorf("parse index %d (%q): %w", i, s, err)
		}
		result[i] = val
	}
	return result, nil
}

// FormatString 返回 v 的十进制表示
func FormatString[T Signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

// FormatStrings 将整数切片格式化为十进制字符串切片
func FormatStrings[T Signed](values []T) []string {
	result := make([]string, len(values))
	for i, v := range values {
		result[i] = FormatString(v)
	}
	return result
}
