package utils

// Second discards its first argument and returns the second one.
func Second[T any](_ any, t T) T { return t }

// Unpack2 destructures the first two elements of a slice. Missing elements
// come back as zero values.
func Unpack2[Slice ~[]T, T any](s Slice) (first T, second T) {
	switch len(s) {
	default:
		return s[0], s[1]
	case 0:
		return
	case 1:
		first = s[0]
		return
	}
}
