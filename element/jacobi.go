package element

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiP evaluates the orthonormal Jacobi polynomial of type
// (alpha,beta) and order n at the points x, using the three-term
// recurrence from Hesthaven & Warburton.
func JacobiP(x []float64, alpha, beta float64, n int) []float64 {
	np := len(x)
	P := make([]float64, np)

	gamma0 := math.Pow(2, alpha+beta+1) / (alpha + beta + 1) *
		math.Gamma(alpha+1) * math.Gamma(beta+1) / math.Gamma(alpha+beta+1)

	for i := range P {
		P[i] = 1.0 / math.Sqrt(gamma0)
	}
	if n == 0 {
		return P
	}

	gamma1 := (alpha + 1) * (beta + 1) / (alpha + beta + 3) * gamma0
	prev := P
	cur := make([]float64, np)
	for i := range cur {
		cur[i] = ((alpha+beta+2)*x[i]/2 + (alpha-beta)/2) / math.Sqrt(gamma1)
	}
	if n == 1 {
		return cur
	}

	aold := 2.0 / (2.0 + alpha + beta) * math.Sqrt((alpha+1)*(beta+1)/(alpha+beta+3))
	for i := 1; i < n; i++ {
		h1 := 2*float64(i) + alpha + beta
		anew := 2.0 / (h1 + 2) * math.Sqrt((float64(i)+1)*(float64(i)+1+alpha+beta)*
			(float64(i)+1+alpha)*(float64(i)+1+beta)/(h1+1)/(h1+3))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2)

		next := make([]float64, np)
		for j := range next {
			next[j] = (-aold*prev[j] + (x[j]-bnew)*cur[j]) / anew
		}
		prev, cur = cur, next
		aold = anew
	}
	return cur
}

// GradJacobiP evaluates the derivative of the orthonormal Jacobi
// polynomial of type (alpha,beta) and order n at the points x.
func GradJacobiP(x []float64, alpha, beta float64, n int) []float64 {
	dP := make([]float64, len(x))
	if n == 0 {
		return dP
	}
	fac := math.Sqrt(float64(n) * (float64(n) + alpha + beta + 1))
	inner := JacobiP(x, alpha+1, beta+1, n-1)
	for i := range dP {
		dP[i] = fac * inner[i]
	}
	return dP
}

// Vandermonde1D builds the generalized Vandermonde matrix
// V[i,j] = P_j(r_i) for the orthonormal Legendre basis up to degree.
func Vandermonde1D(degree int, r []float64) *mat.Dense {
	nr := len(r)
	V := mat.NewDense(nr, degree+1, nil)
	for j := 0; j <= degree; j++ {
		P := JacobiP(r, 0, 0, j)
		for i := 0; i < nr; i++ {
			V.Set(i, j, P[i])
		}
	}
	return V
}

// GradVandermonde1D builds Vr[i,j] = P_j'(r_i) for the orthonormal
// Legendre basis up to degree.
func GradVandermonde1D(degree int, r []float64) *mat.Dense {
	nr := len(r)
	Vr := mat.NewDense(nr, degree+1, nil)
	for j := 0; j <= degree; j++ {
		dP := GradJacobiP(r, 0, 0, j)
		for i := 0; i < nr; i++ {
			Vr.Set(i, j, dP[i])
		}
	}
	return Vr
}
