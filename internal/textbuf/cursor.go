package textbuf

// BorderInset is the number of cells a bordered widget reserves on each side.
const BorderInset = 1

// InnerWidth returns the wrap width of a bordered widget that is columns wide.
func InnerWidth(columns int) int {
	w := columns - 2*BorderInset
	if w < 1 {
		return 1
	}
	return w
}

// CursorCell maps a character offset onto a hard-wrapped grid of the given
// width and returns the 0-based (column, row) of the cursor.
//
// The text is never broken into lines; wrapping is a projection. When the
// cursor sits exactly on a wrap boundary it stays on the end of the filled row
// (column == width) rather than jumping to column 0 of an empty next row.
func CursorCell(charPos, width int) (col, row int) {
	if width < 1 {
		width = 1
	}
	if charPos < 0 {
		charPos = 0
	}
	m := charPos % width
	if m == 0 && charPos != 0 {
		return width, (charPos - 1) / width
	}
	return m, charPos / width
}

// Place returns the absolute screen cell for the cursor inside a bordered
// widget whose top-left corner is at (originX, originY).
func Place(charPos, width, originX, originY int) (x, y int) {
	col, row := CursorCell(charPos, width)
	return originX + BorderInset + col, originY + BorderInset + row
}

// Rows returns how many wrapped rows chars characters occupy at width,
// counting the row the cursor needs. An empty buffer still takes one row.
func Rows(chars, width int) int {
	_, row := CursorCell(chars, width)
	return row + 1
}
