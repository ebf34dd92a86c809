package benchmark_test

const (
	sizeSmall  = 1_000
	sizeMedium = 10_000
	sizeLarge  = 100_000
)

var sizes = []int{sizeSmall, sizeMedium}
