package dtw

import (
	"fmt"
	"math"
)

// DTW computes the Dynamic Time Warping distance between a and b, two
// sequences of equally sized samples (poses). The local cost of matching
// a[i] with b[j] is their Euclidean distance.
//
// Algorithm Outline (FullMatrix):
//  1. Let n = len(a), m = len(b). Allocate (n+1)x(m+1) table D.
//  2. D[0][0] = 0, D[i][0] = D[0][j] = +Inf.
//  3. For i = 1..n, j = 1..m with |i-j| <= Window (if banded):
//     D[i][j] = cost(i-1, j-1) + min(D[i-1][j-1], D[i-1][j]+p, D[i][j-1]+p)
//  4. distance = D[n][m].
//  5. If ReturnPath, backtrack from (n, m) to (1, 1) choosing the argmin
//     predecessor (diagonal first on ties).
//
// A band too narrow for |n-m| yields +Inf and a nil path.
//
// Complexity: O(n·m·d) time; memory per MemoryMode.
func DTW(a, b [][]float64, opts *Options) (distance float64, path []Coord, err error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err = validate(a, b, o); err != nil {
		return 0, nil, err
	}

	n, m := len(a), len(b)
	window := o.Window
	if window < 0 {
		window = max(n, m)
	}
	p := o.SlopePenalty
	inf := math.Inf(1)

	switch o.MemoryMode {
	case FullMatrix:
		dp := make([][]float64, n+1)
		for i := range dp {
			dp[i] = make([]float64, m+1)
			for j := range dp[i] {
				dp[i][j] = inf
			}
		}
		dp[0][0] = 0
		for i := 1; i <= n; i++ {
			lo, hi := band(i, m, window)
			for j := lo; j <= hi; j++ {
				dp[i][j] = Distance(a[i-1], b[j-1]) + min(dp[i-1][j-1], dp[i-1][j]+p, dp[i][j-1]+p)
			}
		}
		distance = dp[n][m]
		if o.ReturnPath && !math.IsInf(distance, 1) {
			path = backtrack(dp, p)
		}

	case TwoRows:
		prev := make([]float64, m+1)
		curr := make([]float64, m+1)
		for j := range prev {
			prev[j] = inf
		}
		prev[0] = 0
		for i := 1; i <= n; i++ {
			for j := range curr {
				curr[j] = inf
			}
			lo, hi := band(i, m, window)
			for j := lo; j <= hi; j++ {
				curr[j] = Distance(a[i-1], b[j-1]) + min(prev[j-1], prev[j]+p, curr[j-1]+p)
			}
			prev, curr = curr, prev
		}
		distance = prev[m]

	case NoMemory:
		row := make([]float64, m+1)
		for j := range row {
			row[j] = inf
		}
		row[0] = 0
		for i := 1; i <= n; i++ {
			diag := row[0]
			row[0] = inf
			lo, hi := band(i, m, window)
			for j := 1; j <= m; j++ {
				up := row[j]
				if j < lo || j > hi {
					row[j] = inf
				} else {
					row[j] = Distance(a[i-1], b[j-1]) + min(diag, up+p, row[j-1]+p)
				}
				diag = up
			}
		}
		distance = row[m]
	}

	return distance, path, nil
}

// Series runs DTW on two scalar series by lifting them to 1-D samples.
func Series(a, b []float64, opts *Options) (float64, []Coord, error) {
	return DTW(lift(a), lift(b), opts)
}

// Distance is the Euclidean distance between two equally sized samples.
func Distance(x, y []float64) float64 {
	if len(x) == 1 {
		return math.Abs(x[0] - y[0])
	}
	s := 0.0
	for k := range x {
		d := x[k] - y[k]
		s += d * d
	}

	return math.Sqrt(s)
}

func validate(a, b [][]float64, o Options) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptyInput
	}
	if o.Window < -1 {
		return fmt.Errorf("window %d: %w", o.Window, ErrBadInput)
	}
	if o.SlopePenalty < 0 || math.IsNaN(o.SlopePenalty) || math.IsInf(o.SlopePenalty, 0) {
		return fmt.Errorf("slope penalty %v: %w", o.SlopePenalty, ErrBadInput)
	}
	switch o.MemoryMode {
	case FullMatrix, TwoRows, NoMemory:
	default:
		return fmt.Errorf("memory mode %d: %w", o.MemoryMode, ErrBadInput)
	}
	if o.ReturnPath && o.MemoryMode != FullMatrix {
		return ErrPathNeedsMatrix
	}

	d := len(a[0])
	for _, seq := range [][][]float64{a, b} {
		for i, s := range seq {
			if len(s) != d || d == 0 {
				return fmt.Errorf("sample %d has %d values, want %d: %w", i, len(s), d, ErrDimensionMismatch)
			}
			for _, v := range s {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("sample %d: %w", i, ErrBadInput)
				}
			}
		}
	}

	return nil
}

// band returns the columns [lo, hi] of row i inside the Sakoe-Chiba band.
func band(i, m, window int) (lo, hi int) {
	return max(1, i-window), min(m, i+window)
}

// backtrack walks the filled table from (n, m) to (1, 1).
func backtrack(dp [][]float64, p float64) []Coord {
	i, j := len(dp)-1, len(dp[0])-1
	path := make([]Coord, 0, i+j)
	for {
		path = append(path, Coord{I: i - 1, J: j - 1})
		if i == 1 && j == 1 {
			break
		}
		diag, up, left := dp[i-1][j-1], dp[i-1][j]+p, dp[i][j-1]+p
		switch {
		case diag <= up && diag <= left:
			i, j = i-1, j-1
		case up <= left:
			i--
		default:
			j--
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return path
}

func lift(xs []float64) [][]float64 {
	out := make([][]float64, len(xs))
	for i := range xs {
		out[i] = xs[i : i+1]
	}

	return out
}
