package infra

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Guards calls to the ERP gateway (Closed → Open → Half-Open).
//
//   - Closed:    calls pass through; consecutive failures are counted
//   - Open:      calls fail fast with ErrCircuitOpen until OpenTimeout elapses
//   - Half-Open: calls probe the upstream; SuccessThreshold successes close it,
//     one failure reopens it

type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	Name             string
	FailureThreshold int           // consecutive failures to trip open
	SuccessThreshold int           // consecutive half-open successes to close
	OpenTimeout      time.Duration // time spent open before probing
}

// DefaultCBConfig is tuned for the ERP sync: a sync tick every few minutes
// makes five straight failures a real outage.
func DefaultCBConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      2 * time.Minute,
	}
}

type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      CircuitBreakerConfig
	state    CBState
	falhas   int
	sucessos int
	abertoEm time.Time
	agora    func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig(cfg.Name)
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, state: CBClosed, agora: time.Now}
}

// State reports the current state, moving Open to Half-Open once the open
// timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.estadoAtual()
}

// must hold cb.mu
func (cb *CircuitBreaker) estadoAtual() CBState {
	if cb.state == CBOpen && cb.agora().Sub(cb.abertoEm) >= cb.cfg.OpenTimeout {
		cb.transicionar(CBHalfOpen)
	}
	return cb.state
}

// Execute runs fn unless the breaker is open. Context cancellation is not
// counted as an upstream failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	cb.mu.Lock()
	if cb.estadoAtual() == CBOpen {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	cb.mu.Unlock()

	err := fn(ctx)

	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch {
	case err == nil:
		cb.registrarSucesso()
	case errors.Is(err, context.Canceled):
	default:
		cb.registrarFalha()
	}
	return err
}

func (cb *CircuitBreaker) registrarFalha() {
	cb.falhas++
	switch cb.state {
	case CBClosed:
		if cb.falhas >= cb.cfg.FailureThreshold {
			cb.transicionar(CBOpen)
		}
	case CBHalfOpen:
		cb.transicionar(CBOpen)
	}
}

func (cb *CircuitBreaker) registrarSucesso() {
	switch cb.state {
	case CBClosed:
		cb.falhas = 0
	case CBHalfOpen:
		cb.sucessos++
		if cb.sucessos >= cb.cfg.SuccessThreshold {
			cb.transicionar(CBClosed)
		}
	}
}

func (cb *CircuitBreaker) transicionar(novo CBState) {
	if cb.state == novo {
		return
	}
	log.Warn().
		Str("breaker", cb.cfg.Name).
		Str("from", cb.state.String()).
		Str("to", novo.String()).
		Msg("circuit breaker state change")

	cb.state = novo
	cb.falhas = 0
	cb.sucessos = 0
	if novo == CBOpen {
		cb.abertoEm = cb.agora()
	}
}
