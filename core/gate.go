package core

// BatchReady reports whether the fullest buffer holds at least minPoolSize
// transitions. With many agents the gate opens as soon as any single
// agent's buffer is full enough.
func BatchReady(sizes []int, minPoolSize float64) bool {
	if len(sizes) == 0 {
		return false
	}
	max := sizes[0]
	for _, s := range sizes[1:] {
		if s > max {
			max = s
		}
	}
	return max > 0 && float64(max) >= minPoolSize
}
