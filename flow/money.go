package flow

import (
	"fmt"
	"math"
)

// Cents giữ tiền theo số nguyên, chỉ format ra chuỗi ở biên hiển thị
// để tránh lệch số thập phân khi cộng dồn float.
type Cents int64

// Giá vé fallback khi suất chiếu không có basePrice.
const DefaultBasePrice = Cents(1000)

func DollarsToCents(d float64) Cents {
	return Cents(math.Round(d * 100))
}

func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}

// ComputeTotal tính tổng tiền ghế: luôn tính lại từ số ghế đang chọn,
// không cộng dồn theo từng lần toggle.
func ComputeTotal(seatCount int, basePrice Cents) Cents {
	if seatCount < 0 {
		return 0
	}
	return Cents(seatCount) * basePrice
}
