package geom

import "math"

// Circumsphere finds the center of a sphere equidistant from all given
// points, if one exists within Eps. Used when re-centering saved facet
// polytopes; callers fall back to the centroid when ok is false.
func Circumsphere(points []Point) (center Point, ok bool) {
	if len(points) < 2 {
		return nil, false
	}
	dim := len(points[0])

	// 2(v_i - v_0) . c = |v_i|^2 - |v_0|^2 for every i. Solve the
	// normal equations of this overdetermined system.
	rows := make([][]float64, 0, len(points)-1)
	rhs := make([]float64, 0, len(points)-1)
	n0 := points[0].Dot(points[0])
	for _, p := range points[1:] {
		row := make([]float64, dim)
		for j := range row {
			row[j] = 2 * (p[j] - points[0][j])
		}
		rows = append(rows, row)
		rhs = append(rhs, p.Dot(p)-n0)
	}

	ata := make([][]float64, dim)
	atb := make([]float64, dim)
	for i := range ata {
		ata[i] = make([]float64, dim)
	}
	for k, row := range rows {
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				ata[i][j] += row[i] * row[j]
			}
			atb[i] += row[i] * rhs[k]
		}
	}

	c, solved := solve(ata, atb)
	if !solved {
		return nil, false
	}

	r := Dist(c, points[0])
	for _, p := range points[1:] {
		if math.Abs(Dist(c, p)-r) > Eps {
			return nil, false
		}
	}
	return c, true
}

// solve runs Gaussian elimination with partial pivoting on a square
// system. Reports false when the matrix is singular within Eps.
func solve(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < Eps {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}
	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, true
}
