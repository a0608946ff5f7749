package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"orcaobra/internal/calculo"
	"orcaobra/internal/dto"
	"orcaobra/internal/infra"
	"orcaobra/internal/model"
	"orcaobra/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Cache is the key/value store the DRE report is memoized in.
// infra.RedisCache implements it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Chaves(ctx context.Context, padrao string) ([]string, error)
}

const prefixoCacheDRE = "dre:"

func chaveDRE(ano int) string { return prefixoCacheDRE + strconv.Itoa(ano) }

type DREService interface {
	Relatorio(ctx context.Context, ano int) (*calculo.RelatorioDRE, error)
	NaoMapeadas(ctx context.Context, ano int) ([]calculo.NaoMapeada, error)
	CSV(ctx context.Context, ano int, w io.Writer) error
	PDF(ctx context.Context, ano int, w io.Writer) error

	ListarMapeamentos(ctx context.Context) ([]dto.MapeamentoResponse, error)
	// SalvarMapeamento upserts by (codigo_categoria, tipo) and drops every
	// cached report, since a mapping can move values in any year.
	SalvarMapeamento(ctx context.Context, req dto.MapeamentoRequest) (*dto.MapeamentoResponse, error)
	InvalidarAnos(ctx context.Context, anos []int) error
}

type dreService struct {
	mapeamentos repository.MapeamentoRepository
	lancamentos repository.LancamentoRepository
	cache       Cache
	ttl         time.Duration
	aliquotas   calculo.AliquotasDRE
}

func NewDREService(
	mapeamentos repository.MapeamentoRepository,
	lancamentos repository.LancamentoRepository,
	cache Cache,
	ttl time.Duration,
	aliquotas calculo.AliquotasDRE,
) DREService {
	return &dreService{
		mapeamentos: mapeamentos,
		lancamentos: lancamentos,
		cache:       cache,
		ttl:         ttl,
		aliquotas:   aliquotas,
	}
}

// ── Relatório ─────────────────────────────────────────────────────────────────

func (s *dreService) Relatorio(ctx context.Context, ano int) (*calculo.RelatorioDRE, error) {
	if ano < 2000 || ano > 2100 {
		return nil, fmt.Errorf("%w: ano %d fora do intervalo 2000-2100", ErrEntradaInvalida, ano)
	}

	if rel, ok := s.lerCache(ctx, ano); ok {
		return rel, nil
	}

	rel, err := s.calcular(ctx, ano)
	if err != nil {
		return nil, err
	}
	s.gravarCache(ctx, ano, rel)
	return rel, nil
}

func (s *dreService) calcular(ctx context.Context, ano int) (*calculo.RelatorioDRE, error) {
	mapeamentos, err := s.mapeamentos.List(ctx)
	if err != nil {
		return nil, err
	}
	receber, err := s.lancamentos.ListPorAno(ctx, model.TipoReceber, ano)
	if err != nil {
		return nil, err
	}
	pagar, err := s.lancamentos.ListPorAno(ctx, model.TipoPagar, ano)
	if err != nil {
		return nil, err
	}

	aliquotas := s.aliquotas
	res := calculo.AgregarDRE(calculo.EntradaDRE{
		Ano:         ano,
		Mapeamentos: mapeamentos,
		Receber:     receber,
		Pagar:       pagar,
		Aliquotas:   &aliquotas,
	})
	for _, e := range res.Erros {
		log.Warn().
			Int("ano", ano).
			Str("lancamento_id", e.LancamentoID.String()).
			Str("codigo_erp", e.CodigoERP).
			Str("motivo", e.Motivo).
			Msg("dre: lançamento ignorado")
	}

	log.Info().
		Int("ano", ano).
		Int("receber", len(receber)).
		Int("pagar", len(pagar)).
		Int("nao_mapeadas", len(res.NaoMapeadas)).
		Msg("dre: relatório calculado")

	return calculo.MontarDRE(res), nil
}

// lerCache treats any cache failure as a miss.
func (s *dreService) lerCache(ctx context.Context, ano int) (*calculo.RelatorioDRE, bool) {
	b, ok, err := s.cache.Get(ctx, chaveDRE(ano))
	if err != nil {
		log.Warn().Err(err).Int("ano", ano).Msg("dre: cache indisponível")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var rel calculo.RelatorioDRE
	if err := json.Unmarshal(b, &rel); err != nil {
		log.Warn().Err(err).Int("ano", ano).Msg("dre: entrada de cache corrompida")
		return nil, false
	}
	return &rel, true
}

func (s *dreService) gravarCache(ctx context.Context, ano int, rel *calculo.RelatorioDRE) {
	b, err := json.Marshal(rel)
	if err != nil {
		log.Warn().Err(err).Int("ano", ano).Msg("dre: serializar relatório")
		return
	}
	if err := s.cache.Set(ctx, chaveDRE(ano), b, s.ttl); err != nil {
		log.Warn().Err(err).Int("ano", ano).Msg("dre: gravar cache")
	}
}

func (s *dreService) NaoMapeadas(ctx context.Context, ano int) ([]calculo.NaoMapeada, error) {
	rel, err := s.Relatorio(ctx, ano)
	if err != nil {
		return nil, err
	}
	if rel.NaoMapeadas == nil {
		return []calculo.NaoMapeada{}, nil
	}
	return rel.NaoMapeadas, nil
}

func (s *dreService) CSV(ctx context.Context, ano int, w io.Writer) error {
	rel, err := s.Relatorio(ctx, ano)
	if err != nil {
		return err
	}
	return infra.EscreverDRECSV(w, rel)
}

func (s *dreService) PDF(ctx context.Context, ano int, w io.Writer) error {
	rel, err := s.Relatorio(ctx, ano)
	if err != nil {
		return err
	}
	return infra.EscreverDREPDF(w, rel)
}

// ── Mapeamentos ───────────────────────────────────────────────────────────────

func (s *dreService) ListarMapeamentos(ctx context.Context) ([]dto.MapeamentoResponse, error) {
	mapeamentos, err := s.mapeamentos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MapeamentoResponse, 0, len(mapeamentos))
	for i := range mapeamentos {
		out = append(out, mapeamentoToResponse(&mapeamentos[i]))
	}
	return out, nil
}

func (s *dreService) SalvarMapeamento(ctx context.Context, req dto.MapeamentoRequest) (*dto.MapeamentoResponse, error) {
	m := &model.CategoriaMapeamento{
		CodigoCategoria:  req.CodigoCategoria,
		Tipo:             req.Tipo,
		Descricao:        req.Descricao,
		ContaDREOverride: req.ContaDREOverride,
		Ativo:            true,
	}
	if req.Ativo != nil {
		m.Ativo = *req.Ativo
	}

	if req.CategoriaContabilID != nil {
		id, err := uuid.Parse(*req.CategoriaContabilID)
		if err != nil {
			return nil, fmt.Errorf("%w: categoria_contabil_id: %v", ErrEntradaInvalida, err)
		}
		if _, err := s.mapeamentos.FindCategoriaContabil(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: categoria contábil %s não existe", ErrEntradaInvalida, id)
			}
			return nil, err
		}
		m.CategoriaContabilID = &id
	}
	if m.CategoriaContabilID == nil && (m.ContaDREOverride == nil || *m.ContaDREOverride == "") {
		return nil, fmt.Errorf("%w: informe categoria_contabil_id ou conta_dre_override", ErrEntradaInvalida)
	}

	if err := s.mapeamentos.Upsert(ctx, m); err != nil {
		return nil, err
	}
	if err := s.invalidarTudo(ctx); err != nil {
		return nil, fmt.Errorf("invalidar cache do DRE: %w", err)
	}

	log.Info().
		Str("codigo_categoria", m.CodigoCategoria).
		Str("tipo", m.Tipo).
		Bool("ativo", m.Ativo).
		Msg("dre: mapeamento salvo")

	resp := mapeamentoToResponse(m)
	return &resp, nil
}

// ── Cache ─────────────────────────────────────────────────────────────────────

func (s *dreService) InvalidarAnos(ctx context.Context, anos []int) error {
	if len(anos) == 0 {
		return nil
	}
	chaves := make([]string, 0, len(anos))
	for _, ano := range anos {
		chaves = append(chaves, chaveDRE(ano))
	}
	return s.cache.Del(ctx, chaves...)
}

func (s *dreService) invalidarTudo(ctx context.Context) error {
	chaves, err := s.cache.Chaves(ctx, prefixoCacheDRE+"*")
	if err != nil {
		return err
	}
	return s.cache.Del(ctx, chaves...)
}

func mapeamentoToResponse(m *model.CategoriaMapeamento) dto.MapeamentoResponse {
	resp := dto.MapeamentoResponse{
		ID:               m.ID.String(),
		CodigoCategoria:  m.CodigoCategoria,
		Tipo:             m.Tipo,
		Descricao:        m.Descricao,
		ContaDREOverride: m.ContaDREOverride,
		Ativo:            m.Ativo,
	}
	if m.CategoriaContabilID != nil {
		id := m.CategoriaContabilID.String()
		resp.CategoriaContabilID = &id
	}
	return resp
}
