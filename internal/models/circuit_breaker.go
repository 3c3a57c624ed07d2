package models

// CircuitBreakerState is the state of the backend circuit breaker.
type CircuitBreakerState int

func (s CircuitBreakerState) String() string {
	switch s {
	case 0:
		return "closed"
	case 1:
		return "open"
	case 2:
		return "half_open"
	default:
		return "unknown"
	}
}
