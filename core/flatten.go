package core

import "gonum.org/v1/gonum/mat"

// Flatten returns the elements of m in row major order
func Flatten(m mat.Matrix) []float64 {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

// OpponentAction concatenates the actions of every agent except agent,
// in ascending agent order.
func OpponentAction(actions [][]float64, agent int) []float64 {
	size := 0
	for j, a := range actions {
		if j != agent {
			size += len(a)
		}
	}
	out := make([]float64, 0, size)
	for j, a := range actions {
		if j == agent {
			continue
		}
		out = append(out, a...)
	}
	return out
}

func terminalFlags(dones []bool) []int8 {
	out := make([]int8, len(dones))
	for i, d := range dones {
		out[i] = terminalFlag(d)
	}
	return out
}

func terminalFlag(done bool) int8 {
	if done {
		return 1
	}
	return 0
}
