package dpfilter

// narrow converts v to a byte the way a C (unsigned char) cast of a double
// does on the reference build: truncate toward zero, then keep the low 8 bits.
// Values above 255 wrap instead of saturating.
func narrow(v float64) uint8 {
	return uint8(int64(v))
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
