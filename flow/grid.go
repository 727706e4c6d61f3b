package flow

import (
	"fmt"

	"movie_booking/client"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatOccupied  SeatStatus = "occupied"
	SeatSelected  SeatStatus = "selected"
)

// RowLength là số ghế mỗi hàng khi dựng sơ đồ từ danh sách phẳng.
const RowLength = 10

type GridSeat struct {
	ID     uint       `json:"id"`
	Label  string     `json:"label"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
}

type GridRow struct {
	Label string     `json:"label"`
	Seats []GridSeat `json:"seats"`
}

// SeatGrid là sơ đồ ghế của một (rạp, phòng chiếu). Occupancy được chốt
// lúc dựng grid từ backend; chỉ trạng thái selected thay đổi cục bộ.
type SeatGrid struct {
	rows  []GridRow
	index map[string][2]int // label -> (row, col)
}

func rowLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}

// BuildGrid chia danh sách ghế thành các hàng rowLength ghế. Hàng và vị
// trí trong hàng chỉ phụ thuộc thứ tự phần tử trong danh sách, không phụ
// thuộc seatId, nên cùng input luôn cho cùng một grid.
func BuildGrid(seats []client.Seat, rowLength int) SeatGrid {
	grid := SeatGrid{index: make(map[string][2]int)}
	if rowLength <= 0 {
		rowLength = RowLength
	}

	for i, seat := range seats {
		r := i / rowLength
		if r >= len(grid.rows) {
			grid.rows = append(grid.rows, GridRow{Label: rowLabel(r)})
		}

		status := SeatAvailable
		if seat.Status == string(SeatOccupied) {
			status = SeatOccupied
		}

		num := i%rowLength + 1
		gs := GridSeat{
			ID:     seat.SeatID,
			Row:    grid.rows[r].Label,
			Number: num,
			Label:  fmt.Sprintf("%s%d", grid.rows[r].Label, num),
			Status: status,
		}
		grid.index[gs.Label] = [2]int{r, len(grid.rows[r].Seats)}
		grid.rows[r].Seats = append(grid.rows[r].Seats, gs)
	}
	return grid
}

func (g *SeatGrid) Rows() []GridRow {
	return g.rows
}

func (g *SeatGrid) Empty() bool {
	return len(g.rows) == 0
}

func (g *SeatGrid) seatAt(label string) *GridSeat {
	pos, ok := g.index[label]
	if !ok {
		return nil
	}
	return &g.rows[pos[0]].Seats[pos[1]]
}

// Toggle đảo trạng thái available <-> selected của một ghế. Ghế occupied
// hoặc label không tồn tại thì bỏ qua, không báo lỗi.
func (g *SeatGrid) Toggle(label string) bool {
	seat := g.seatAt(label)
	if seat == nil || seat.Status == SeatOccupied {
		return false
	}
	if seat.Status == SeatSelected {
		seat.Status = SeatAvailable
	} else {
		seat.Status = SeatSelected
	}
	return true
}

// Selected trả về ghế đang chọn theo thứ tự grid.
func (g *SeatGrid) Selected() []GridSeat {
	var selected []GridSeat
	for _, row := range g.rows {
		for _, seat := range row.Seats {
			if seat.Status == SeatSelected {
				selected = append(selected, seat)
			}
		}
	}
	return selected
}

func (g *SeatGrid) SelectedCount() int {
	return len(g.Selected())
}

func (g *SeatGrid) ClearSelection() {
	for r := range g.rows {
		for s := range g.rows[r].Seats {
			if g.rows[r].Seats[s].Status == SeatSelected {
				g.rows[r].Seats[s].Status = SeatAvailable
			}
		}
	}
}
