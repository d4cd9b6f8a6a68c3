//go:build !debug

package collide

func assert(truth bool, msg ...interface{}) {}
