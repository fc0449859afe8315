package costmatrix_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
)

// ExampleFromAnimation scores every window of a three-frame clip with a
// constant operation and prints the resulting table.
func ExampleFromAnimation() {
	anim, err := animation.FromCSV("clip", [][]string{
		{"time", "a-x"},
		{"0", "1"},
		{"1", "2"},
		{"2", "3"},
	})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	op := costmatrix.OperationFunc(func([]animation.Frame) (float64, int, error) {
		return 0.5, 1, nil
	})

	cm, err := costmatrix.FromAnimation(context.Background(), anim, op)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, row := range cm.AsCSV() {
		fmt.Println(row)
	}
	// Output:
	// [i j max_error_value max_error_index]
	// [0 0 0.50000000 1]
	// [0 1 0.50000000 1]
	// [0 2 0.50000000 1]
	// [1 1 0.50000000 1]
	// [1 2 0.50000000 1]
	// [2 2 0.50000000 1]
}
