// Package random потокобезопасный источник случайных чисел для usecase-ов
package random

import "math/rand/v2"

// Source обёртка над глобальным генератором math/rand/v2, безопасна для горутин
type Source struct{}

func New() Source {
	return Source{}
}

func (Source) Intn(n int) int {
	return rand.IntN(n)
}

func (Source) Float64() float64 {
	return rand.Float64()
}
