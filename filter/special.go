package filter

import "golang.org/x/text/unicode/norm"

// CheckSpecialChars reports whether the filename contains characters that
// do not survive NFD normalization, a common source of trouble for codec
// libraries with naive path handling.
func CheckSpecialChars(filename string) bool {
	return norm.NFD.String(filename) != filename
}
