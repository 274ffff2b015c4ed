// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// VecClipBounds clips each element of a to lie between the elements of
// lower and upper at the same index
func VecClipBounds(a *mat.VecDense, lower, upper mat.Vector) {
	if a.Len() != lower.Len() || a.Len() != upper.Len() {
		panic(fmt.Sprintf("vecClipBounds: lengths differ: %v, %v, %v",
			a.Len(), lower.Len(), upper.Len()))
	}

	for i := 0; i < a.Len(); i++ {
		value := a.AtVec(i)

		if value < lower.AtVec(i) {
			a.SetVec(i, lower.AtVec(i))
		} else if value > upper.AtVec(i) {
			a.SetVec(i, upper.AtVec(i))
		}
	}
}
