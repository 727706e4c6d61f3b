package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalExact(t *testing.T) {
	cases := []struct {
		seats int
		base  Cents
		want  Cents
	}{
		{0, 1000, 0},
		{1, 1000, 1000},
		{5, 1000, 5000},
		{80, 1000, 80000},
		{0, 1250, 0},
		{1, 1250, 1250},
		{5, 1250, 6250},
		{80, 1250, 100000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ComputeTotal(tc.seats, tc.base))
	}
}

func TestComputeTotalMonotonic(t *testing.T) {
	prev := Cents(-1)
	for n := 0; n <= 100; n++ {
		total := ComputeTotal(n, 1250)
		assert.GreaterOrEqual(t, total, prev)
		prev = total
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "$25.00", Cents(2500).String())
	assert.Equal(t, "$1000.00", Cents(100000).String())
	assert.Equal(t, "$12.50", Cents(1250).String())
	assert.Equal(t, "$0.05", Cents(5).String())
	assert.Equal(t, "-$2.50", Cents(-250).String())
}

func TestDollarsToCents(t *testing.T) {
	assert.Equal(t, Cents(1250), DollarsToCents(12.50))
	assert.Equal(t, Cents(1000), DollarsToCents(10.00))
	// 19.99 không biểu diễn chính xác bằng float, Round phải cứu lại
	assert.Equal(t, Cents(1999), DollarsToCents(19.99))
}
