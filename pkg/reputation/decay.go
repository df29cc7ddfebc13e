package reputation

import (
	"fmt"
	"math"
)

type decayKind string

const (
	decayExponential decayKind = "exponential"
	decayWeibull     decayKind = "weibull"
	decayGamma       decayKind = "gamma"
)

// DecayModel is a tagged variant over the supported survival functions.
// Every model satisfies decay(0)=1, is monotonically non-increasing, and
// tends to 0 as t grows. Construct via the New*Decay functions, which
// validate shape parameters.
type DecayModel struct {
	kind   decayKind
	lambda float64
	k      float64
	alpha  float64
	beta   float64
}

// NewExponentialDecay returns e^(-lambda*t).
func NewExponentialDecay(lambda float64) (DecayModel, error) {
	if lambda <= 0 {
		return DecayModel{}, fmt.Errorf("lambda must be strictly positive, got %v", lambda)
	}
	return DecayModel{kind: decayExponential, lambda: lambda}, nil
}

// NewWeibullDecay returns e^(-(t/lambda)^k). k=1 reduces to exponential
// decay with rate 1/lambda.
func NewWeibullDecay(k, lambda float64) (DecayModel, error) {
	if k <= 0 {
		return DecayModel{}, fmt.Errorf("k must be strictly positive, got %v", k)
	}
	if lambda <= 0 {
		return DecayModel{}, fmt.Errorf("lambda must be strictly positive, got %v", lambda)
	}
	return DecayModel{kind: decayWeibull, k: k, lambda: lambda}, nil
}

// NewGammaDecay returns the survival function of the Gamma(alpha, beta)
// distribution. alpha=1 reduces to exponential decay with rate beta.
func NewGammaDecay(alpha, beta float64) (DecayModel, error) {
	if alpha <= 0 {
		return DecayModel{}, fmt.Errorf("alpha must be strictly positive, got %v", alpha)
	}
	if beta <= 0 {
		return DecayModel{}, fmt.Errorf("beta must be strictly positive, got %v", beta)
	}
	return DecayModel{kind: decayGamma, alpha: alpha, beta: beta}, nil
}

// Decay evaluates the survival function at elapsed time t (in recency
// periods). Negative t is rejected.
func (m DecayModel) Decay(t float64) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("elapsed time must be non-negative, got %v", t)
	}
	switch m.kind {
	case decayExponential:
		return math.Exp(-m.lambda * t), nil
	case decayWeibull:
		return math.Exp(-math.Pow(t/m.lambda, m.k)), nil
	case decayGamma:
		return upperIncompleteGammaRegularized(m.alpha, m.beta*t), nil
	default:
		return 0, fmt.Errorf("decay model not initialized")
	}
}

// upperIncompleteGammaRegularized computes Q(a, x) = Γ(a,x)/Γ(a), the
// survival function of Gamma(a, 1) at x. Series expansion for x < a+1,
// continued fraction otherwise.
func upperIncompleteGammaRegularized(a, x float64) float64 {
	if x <= 0 {
		return 1
	}
	if x < a+1 {
		return 1 - lowerGammaSeries(a, x)
	}
	return upperGammaContinuedFraction(a, x)
}

func lowerGammaSeries(a, x float64) float64 {
	const maxIter = 500
	const eps = 1e-14
	lg, _ := math.Lgamma(a)
	ap := a
	sum := 1.0 / a
	del := sum
	for i := 0; i < maxIter; i++ {
		ap++
		del *= x / ap
		sum += del
		if math.Abs(del) < math.Abs(sum)*eps {
			break
		}
	}
	return sum * math.Exp(-x+a*math.Log(x)-lg)
}

func upperGammaContinuedFraction(a, x float64) float64 {
	const maxIter = 500
	const eps = 1e-14
	const tiny = 1e-300
	lg, _ := math.Lgamma(a)
	b := x + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i <= maxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return math.Exp(-x+a*math.Log(x)-lg) * h
}
