package entity

import "strings"

// Mark is the symbol a side places on the board.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	// EmptyCell is the zero Mark: the slot holds no mark.
	EmptyCell Mark = ""
)

// BoardSize is the number of slots on the 3x3 grid.
const BoardSize = 9

// WinPatterns - all rows, columns and diagonals, indexed row-major.
var WinPatterns = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other side's mark, or EmptyCell for an invalid mark.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

// Board is the 3x3 grid in row-major order. Board is a value type: assigning it copies every slot.
type Board [BoardSize]Mark

// HasWinner reports whether mark occupies all three slots of any win pattern.
func (that Board) HasWinner(mark Mark) bool {
	_, ok := that.WinningPattern(mark)
	return ok
}

// WinningPattern returns the first completed pattern of mark, used for highlighting.
func (that Board) WinningPattern(mark Mark) ([3]int, bool) {
	if !mark.IsValid() {
		return [3]int{}, false
	}

	for _, pattern := range WinPatterns {
		if that[pattern[0]] == mark && that[pattern[1]] == mark && that[pattern[2]] == mark {
			return pattern, true
		}
	}

	return [3]int{}, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// AvailableMoves lists the empty slots in ascending index order.
func (that Board) AvailableMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

func (that Board) IsEmptyCell(cell int) bool {
	return IsValidCell(cell) && that[cell] == EmptyCell
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Board) String() string {
	return that.Format(func(int) string { return " " })
}

// Format lays the board out as a 3x3 grid. empty names the slots that hold no mark.
func (that Board) Format(empty func(cell int) string) string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("\n---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}

			cell := row*3 + col

			label := string(that[cell])
			if that[cell] == EmptyCell {
				label = empty(cell)
			}

			sb.WriteString(" " + label + " ")
		}
	}

	return sb.String()
}
