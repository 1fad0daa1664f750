package utils

// FindIndex returns the index of the first element equal to item, or -1.
func FindIndex[T interface{ Equal(T) bool }](slice []T, item T) int {
	for i, v := range slice {
		if v.Equal(item) {
			return i
		}
	}
	return -1
}
