// Package nanoid generates short random ids.
package nanoid

import gonanoid "github.com/matoous/go-nanoid/v2"

// Character sets
const (
	Number    = "0123456789"                 // Numbers
	Lowercase = "abcdefghijklmnopqrstuvwxyz" // Lowercase letters
	NumLower  = Number + Lowercase           // Numbers + Lowercase letters
)

const defaultSize = 16

func getSize(l ...int) int {
	size := defaultSize
	if len(l) > 0 && l[0] > 0 {
		size = l[0]
	}
	return size
}

// NumberLower generates an optional length id of digits and lowercase
// letters.
func NumberLower(l ...int) (string, error) {
	return gonanoid.Generate(NumLower, getSize(l...))
}
