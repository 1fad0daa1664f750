package game

// StartPosition returns the standard opening: Black men on rows 0-2 and
// White men on rows 5-7, on the dark squares where row+col is odd.
func StartPosition() Position {
	var p Position
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if (row+col)%2 == 0 {
				continue
			}
			switch {
			case row < 3:
				p[row][col] = BlackMan
			case row > 4:
				p[row][col] = WhiteMan
			}
		}
	}
	return p
}
