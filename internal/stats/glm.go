package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	glmMaxIter   = 25
	glmTolerance = 1e-8
)

// Coefficient is one fitted GLM parameter with its Wald test.
type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
	StdErr   float64 `json:"std_error"`
	Z        float64 `json:"z"`
	P        float64 `json:"p_value"`
}

// PoissonFit is a fitted log-link Poisson regression.
type PoissonFit struct {
	Coefficients []Coefficient `json:"coefficients"`
	Fitted       []float64     `json:"fitted"`
	Leverage     []float64     `json:"leverage"`

	Deviance     float64 `json:"deviance"`
	NullDeviance float64 `json:"null_deviance"`
	ResidualDF   int     `json:"residual_df"`
	NullDF       int     `json:"null_df"`
	AIC          float64 `json:"aic"`
	Iterations   int     `json:"iterations"`
	Converged    bool    `json:"converged"`
}

// FitPoisson fits y ~ X with a log link by iteratively reweighted least
// squares. X is row-major with one row per observation and must include an
// intercept column if one is wanted; names labels its columns.
func FitPoisson(x [][]float64, y []float64, names []string) (*PoissonFit, error) {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil, fmt.Errorf("%d rows for %d responses: %w", len(x), n, ErrTooFewObservations)
	}
	p := len(names)
	if n <= p {
		return nil, fmt.Errorf("%d observations for %d parameters: %w", n, p, ErrTooFewObservations)
	}
	for i, row := range x {
		if len(row) != p {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), p)
		}
	}
	for i, v := range y {
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("response %d is %g, counts must be non-negative", i, v)
		}
	}

	mu := make([]float64, n)
	eta := make([]float64, n)
	for i, v := range y {
		mu[i] = v + 0.1
		eta[i] = math.Log(mu[i])
	}

	fit := &PoissonFit{}
	beta := mat.NewVecDense(p, nil)
	var chol mat.Cholesky
	dev := poissonDeviance(y, mu)

	for iter := 1; iter <= glmMaxIter; iter++ {
		// Working response z and weights w = mu for the log link.
		xtwx := mat.NewSymDense(p, nil)
		xtwz := mat.NewVecDense(p, nil)
		for i := 0; i < n; i++ {
			w := mu[i]
			z := eta[i] + (y[i]-mu[i])/mu[i]
			for a := 0; a < p; a++ {
				xtwz.SetVec(a, xtwz.AtVec(a)+x[i][a]*w*z)
				for b := a; b < p; b++ {
					xtwx.SetSym(a, b, xtwx.At(a, b)+x[i][a]*w*x[i][b])
				}
			}
		}
		if ok := chol.Factorize(xtwx); !ok {
			return nil, ErrSingular
		}
		if err := chol.SolveVecTo(beta, xtwz); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}

		for i := 0; i < n; i++ {
			var e float64
			for a := 0; a < p; a++ {
				e += x[i][a] * beta.AtVec(a)
			}
			eta[i] = e
			mu[i] = math.Exp(e)
		}

		prev := dev
		dev = poissonDeviance(y, mu)
		fit.Iterations = iter
		if math.Abs(dev-prev)/(math.Abs(dev)+0.1) < glmTolerance {
			fit.Converged = true
			break
		}
	}

	// Covariance from the final weights.
	xtwx := mat.NewSymDense(p, nil)
	for i := 0; i < n; i++ {
		for a := 0; a < p; a++ {
			for b := a; b < p; b++ {
				xtwx.SetSym(a, b, xtwx.At(a, b)+x[i][a]*mu[i]*x[i][b])
			}
		}
	}
	if ok := chol.Factorize(xtwx); !ok {
		return nil, ErrSingular
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	fit.Coefficients = make([]Coefficient, p)
	for a := 0; a < p; a++ {
		est := beta.AtVec(a)
		se := math.Sqrt(cov.At(a, a))
		z := est / se
		fit.Coefficients[a] = Coefficient{Name: names[a], Estimate: est, StdErr: se, Z: z, P: TwoSidedNormalP(z)}
	}

	fit.Fitted = mu
	fit.Leverage = make([]float64, n)
	for i := 0; i < n; i++ {
		var h float64
		for a := 0; a < p; a++ {
			for b := 0; b < p; b++ {
				h += x[i][a] * cov.At(a, b) * x[i][b]
			}
		}
		fit.Leverage[i] = mu[i] * h
	}

	var ybar float64
	for _, v := range y {
		ybar += v
	}
	ybar /= float64(n)
	null := make([]float64, n)
	for i := range null {
		null[i] = ybar
	}

	fit.Deviance = dev
	fit.NullDeviance = poissonDeviance(y, null)
	fit.ResidualDF = n - p
	fit.NullDF = n - 1
	fit.AIC = -2*poissonLogLik(y, mu) + 2*float64(p)
	return fit, nil
}

// GoodnessOfFitP is P(chi-square(residual df) > residual deviance). Small
// values mean the model does not fit the counts.
func (f *PoissonFit) GoodnessOfFitP() float64 {
	return distuv.ChiSquared{K: float64(f.ResidualDF)}.Survival(f.Deviance)
}

// Residuals computes per-observation diagnostics for the fit.
func (f *PoissonFit) Residuals(y []float64) []Residual {
	p := float64(len(f.Coefficients))
	out := make([]Residual, len(y))
	for i, obs := range y {
		mu, h := f.Fitted[i], f.Leverage[i]
		dev := math.Copysign(math.Sqrt(math.Max(0, 2*poissonUnitDeviance(obs, mu))), obs-mu)
		pearson := (obs - mu) / math.Sqrt(mu)
		r := Residual{Fitted: mu, Deviance: dev, Pearson: pearson, Leverage: h}
		// A leverage of one leaves no residual variance; R reports NaN there.
		if h < 1 {
			r.Standardized = dev / math.Sqrt(1-h)
			r.CooksDistance = pearson * pearson * h / (p * (1 - h) * (1 - h))
		}
		r.ScaleLocation = math.Sqrt(math.Abs(r.Standardized))
		out[i] = r
	}

	std := make([]float64, len(out))
	for i, r := range out {
		std[i] = r.Standardized
	}
	qq := NormalQQ(std)
	order := argsort(std)
	for rank, idx := range order {
		out[idx].TheoreticalQuantile = qq[rank].Theoretical
	}
	return out
}

// Residual holds the diagnostic values plotted for one observation.
type Residual struct {
	Fitted              float64 `json:"fitted"`
	Deviance            float64 `json:"deviance_residual"`
	Pearson             float64 `json:"pearson_residual"`
	Standardized        float64 `json:"standardized_residual"`
	ScaleLocation       float64 `json:"sqrt_abs_standardized"`
	TheoreticalQuantile float64 `json:"theoretical_quantile"`
	Leverage            float64 `json:"leverage"`
	CooksDistance       float64 `json:"cooks_distance"`
}

func poissonUnitDeviance(y, mu float64) float64 {
	if y == 0 {
		return mu
	}
	return y*math.Log(y/mu) - (y - mu)
}

func poissonDeviance(y, mu []float64) float64 {
	var d float64
	for i := range y {
		d += 2 * poissonUnitDeviance(y[i], mu[i])
	}
	return d
}

func poissonLogLik(y, mu []float64) float64 {
	var ll float64
	for i := range y {
		lg, _ := math.Lgamma(y[i] + 1)
		ll += y[i]*math.Log(mu[i]) - mu[i] - lg
	}
	return ll
}
