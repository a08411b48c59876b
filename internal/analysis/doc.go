// Package analysis computes the descriptive summary and the three hypothesis
// tests of the earthquake report over a derived domain.Dataset.
//
// Every function here is a pure reduction: the dataset is never modified and
// may be shared across goroutines. Tests always compute their statistics;
// when a precondition does not hold the result carries a failed Check and
// Valid is false. A test whose required group is empty returns an
// *InsufficientDataError instead of a number.
package analysis
