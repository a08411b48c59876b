// Package stats holds the numeric kernels behind the hypothesis tests:
// one-way and Welch ANOVA, pairwise t-tests with Bonferroni adjustment,
// normality and equal-variance diagnostics, count dispersion tests and a
// Poisson GLM fitted by iteratively reweighted least squares.
//
// Functions take plain float64 slices and know nothing about earthquakes.
// Distribution tails come from gonum's distuv package; sample summaries and
// Welch t-tests from go-moremath.
package stats
