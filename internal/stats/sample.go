package stats

import (
	"github.com/aclements/go-moremath/stats"
)

// Description summarizes the distribution of one numeric column.
type Description struct {
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	IQR    float64 `json:"iqr"`
	Mean   float64 `json:"mean"`
	SD     float64 `json:"sd"`
}

// Describe computes order statistics, mean and standard deviation of xs.
// Quartiles use Hyndman and Fan's method 8. An empty input yields the zero
// Description; SD is zero for fewer than two observations.
func Describe(xs []float64) Description {
	if len(xs) == 0 {
		return Description{}
	}
	s := stats.Sample{Xs: append([]float64(nil), xs...)}
	s.Sort()

	lo, hi := s.Bounds()
	q1, q3 := s.Quantile(0.25), s.Quantile(0.75)
	return Description{
		N:      len(xs),
		Min:    lo,
		Q1:     q1,
		Median: s.Quantile(0.5),
		Q3:     q3,
		Max:    hi,
		IQR:    q3 - q1,
		Mean:   s.Mean(),
		SD:     sampleSD(s),
	}
}

// MeanSD returns the mean and sample standard deviation of xs.
func MeanSD(xs []float64) (mean, sd float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	s := stats.Sample{Xs: xs}
	return s.Mean(), sampleSD(s)
}

func sampleSD(s stats.Sample) float64 {
	if len(s.Xs) < 2 {
		return 0
	}
	return s.StdDev()
}

func median(xs []float64) float64 {
	return stats.Sample{Xs: xs}.Quantile(0.5)
}
