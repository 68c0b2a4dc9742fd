package mfdfa

import "fmt"

// MassExponents returns the mass exponents τ(q) = H(q)·q − 1, one entry
// per q-order of the last computation. Requires a prior scaling fit.
func (a *Analyzer) MassExponents() ([]float64, error) {
	if a.state < stateFitted {
		return nil, fmt.Errorf("%w: call FitFluctuations first", ErrNotFitted)
	}

	tau := make([]float64, len(a.qOrders))
	for i, q := range a.qOrders {
		tau[i] = a.hq[i]*q - 1
	}

	return tau, nil
}

// MultifractalSpectrum returns the singularity spectrum (α, f(α)) derived
// from the mass exponents by a first-order finite difference between
// consecutive q-orders:
//
//	α_i    = (τ(q_{i+1}) − τ(q_i)) / (q_{i+1} − q_i)
//	f(α_i) = q_i·α_i − τ(q_i)
//
// The difference uses each interval's own q-gap, so non-uniformly spaced
// q-orders are handled exactly; for uniform spacing this reduces to the
// classical single-gap formula. Both outputs have one entry fewer than
// the q-order set. Requires a prior scaling fit and at least two q-orders;
// consecutive duplicate q-orders are rejected.
func (a *Analyzer) MultifractalSpectrum() (alpha, f []float64, err error) {
	if a.state < stateFitted {
		return nil, nil, fmt.Errorf("%w: call FitFluctuations first", ErrNotFitted)
	}

	if len(a.qOrders) < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInsufficientOrders, len(a.qOrders))
	}

	tau, err := a.MassExponents()
	if err != nil {
		return nil, nil, err
	}

	alpha = make([]float64, len(tau)-1)
	f = make([]float64, len(tau)-1)

	for i := range alpha {
		dq := a.qOrders[i+1] - a.qOrders[i]
		if dq == 0 {
			return nil, nil, fmt.Errorf("%w: duplicate consecutive q-order %v", ErrInvalidParameter, a.qOrders[i])
		}

		alpha[i] = (tau[i+1] - tau[i]) / dq
		f[i] = a.qOrders[i]*alpha[i] - tau[i]
	}

	return alpha, f, nil
}
