package util

import (
	"os"
	"sort"

	"golang.org/x/exp/constraints"
)

func Gcd[A constraints.Integer](a, b A) A {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func Lcm[A constraints.Integer](a, b A) A {
	if a == 0 || b == 0 {
		return 0
	}
	return a / Gcd(a, b) * b
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func OpenFileOrPanic(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		panic("Could not open file: " + err.Error())
	}
	return f
}
