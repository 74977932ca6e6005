// Package binomial computes the theoretical outcome distribution of a
// sequence of independent left/right choices.
//
// Bucket k counts the sequences with exactly k right choices out of n:
//
//   - [Coeff]: binomial coefficient C(n, k)
//   - [PMF]: probability of landing in bucket k
//   - [Distribution]: expected unit count per bucket, rounded per bucket
//
// Inputs are not validated. A probability outside [0, 1] or a negative unit
// count yields whatever the arithmetic produces; nothing panics.
package binomial
