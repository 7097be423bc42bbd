package ssrf

// LoadCoeff computes the per-day load coefficient LC[i] for parallel
// sequences of daily workloads w and average difficulties ad, of equal
// length >= 1. Every LC[i] lies in [0.0, 1.0].
func LoadCoeff(w []int, ad []float64) []float64 {
	wMin := w[0]
	for _, v := range w[1:] {
		if v < wMin {
			wMin = v
		}
	}
	adMin := ad[0]
	for _, v := range ad[1:] {
		if v < adMin {
			adMin = v
		}
	}

	lc := make([]float64, len(w))
	for i := range w {
		var termW, termD float64
		if w[i] != 0 {
			r := float64(wMin)/float64(w[i]) - 1
			termW = r * r
		}
		if ad[i] != 0 {
			r := adMin/ad[i] - 1
			termD = r * r
		}
		lc[i] = (termW + termD) / 2
	}
	return lc
}
