package solver

import "poisson/model"

// 通用 Thomas 算法，a 为下对角线，b 为对角线，c 为上对角线
func solveGeneral(n int) (model.Series, error) {
	g, err := newGrid(n)
	if err != nil {
		return nil, err
	}
	a := fill(n, -1)
	b := fill(n, 2)
	c := fill(n, -1)
	q := g.q
	v := make([]float64, n)

	// 向前消元
	for i := 1; i < n; i++ {
		b[i] = b[i] - a[i-1]*c[i-1]/b[i-1]
		q[i] = q[i] - a[i-1]*q[i-1]/b[i-1]
	}
	// 回代
	v[n-1] = q[n-1] / b[n-1]
	for i := n - 2; i >= 0; i-- {
		v[i] = (q[i] - c[i]*v[i+1]) / b[i]
	}
	return g.series(v), nil
}

// 特殊 Thomas 算法，消元后的对角元为 (i+2)/(i+1)，无需存储矩阵
func solveSpecial(n int) (model.Series, error) {
	g, err := newGrid(n)
	if err != nil {
		return nil, err
	}
	q := g.q
	v := make([]float64, n)

	for i := 1; i < n; i++ {
		q[i] = q[i] + float64(i)/float64(i+1)*q[i-1]
	}
	v[n-1] = float64(n) / float64(n+1) * q[n-1]
	for i := n - 2; i >= 0; i-- {
		v[i] = float64(i+1) / float64(i+2) * (q[i] + v[i+1])
	}
	return g.series(v), nil
}

func fill(n int, val float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = val
	}
	return s
}
