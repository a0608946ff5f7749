package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errUpstream = errors.New("erp fora do ar")

func falhar(context.Context) error  { return errUpstream }
func suceder(context.Context) error { return nil }

func novoCB(agora *time.Time) *CircuitBreaker {
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		Name:             "teste",
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      time.Minute,
	})
	cb.agora = func() time.Time { return *agora }
	return cb
}

func TestCircuitBreaker_AbreAposFalhasConsecutivas(t *testing.T) {
	agora := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	cb := novoCB(&agora)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, falhar), errUpstream)
	}
	assert.Equal(t, CBOpen, cb.State())

	chamou := false
	err := cb.Execute(ctx, func(context.Context) error { chamou = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, chamou)
}

func TestCircuitBreaker_SucessoZeraContagem(t *testing.T) {
	agora := time.Now()
	cb := novoCB(&agora)
	ctx := context.Background()

	_ = cb.Execute(ctx, falhar)
	_ = cb.Execute(ctx, falhar)
	_ = cb.Execute(ctx, suceder)
	_ = cb.Execute(ctx, falhar)
	_ = cb.Execute(ctx, falhar)
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_MeioAbertoFechaAposSucessos(t *testing.T) {
	agora := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	cb := novoCB(&agora)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, falhar)
	}
	agora = agora.Add(61 * time.Second)
	assert.Equal(t, CBHalfOpen, cb.State())

	assert.NoError(t, cb.Execute(ctx, suceder))
	assert.Equal(t, CBHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(ctx, suceder))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_MeioAbertoReabreNaFalha(t *testing.T) {
	agora := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	cb := novoCB(&agora)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, falhar)
	}
	agora = agora.Add(2 * time.Minute)
	_ = cb.Execute(ctx, falhar)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreaker_CancelamentoNaoConta(t *testing.T) {
	agora := time.Now()
	cb := novoCB(&agora)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = cb.Execute(ctx, func(context.Context) error { return context.Canceled })
	}
	assert.Equal(t, CBClosed, cb.State())
}

func TestCBStateString(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
	assert.Equal(t, "unknown", CBState(9).String())
}
