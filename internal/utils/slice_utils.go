// Package utils
package utils

// ReverseForEach 逆序遍历切片, 每次回调独立执行, 回调内的defer在本次迭代结束时运行
func ReverseForEach[T any](slice []T, f func(index int, value T)) {
	for i := len(slice) - 1; i >= 0; i-- {
		f(i, slice[i])
	}
}
