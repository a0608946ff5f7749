package service

import (
	"errors"
	"fmt"

	"orcaobra/internal/calculo"
)

var (
	ErrRevisaoNaoEncontrada = errors.New("revisão não encontrada")
	ErrItemNaoEncontrado    = errors.New("item de custo não encontrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")

	// ErrResumoNaoCalculado wraps calculo.ErrConfiguracao: downstream steps
	// cannot run before the summary exists.
	ErrResumoNaoCalculado = fmt.Errorf("%w: resumo do orçamento ainda não calculado", calculo.ErrConfiguracao)
)
