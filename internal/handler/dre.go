package handler

import (
	"fmt"
	"io"
	"net/http"

	"orcaobra/internal/dto"
	"orcaobra/internal/service"

	"github.com/gin-gonic/gin"
)

type DREHandler struct{ svc service.DREService }

func NewDREHandler(svc service.DREService) *DREHandler {
	return &DREHandler{svc: svc}
}

// Relatorio godoc
// @Summary DRE gerencial do ano (doze meses, total e análise vertical)
// @Tags dre
// @Produce json
// @Security BearerAuth
// @Param ano path int true "Ano"
// @Success 200 {object} calculo.RelatorioDRE
// @Failure 400 {object} apierror.APIError
// @Router /v1/dre/{ano} [get]
func (h *DREHandler) Relatorio(c *gin.Context) {
	ano, ok := paramAno(c)
	if !ok {
		return
	}
	resp, err := h.svc.Relatorio(c.Request.Context(), ano)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CSV godoc
// @Summary DRE do ano em CSV
// @Tags dre
// @Produce text/csv
// @Security BearerAuth
// @Param ano path int true "Ano"
// @Success 200 {file} binary
// @Router /v1/dre/{ano}/csv [get]
func (h *DREHandler) CSV(c *gin.Context) {
	ano, ok := paramAno(c)
	if !ok {
		return
	}
	enviarArquivo(c, "text/csv; charset=utf-8", fmt.Sprintf("dre_%d.csv", ano), func(w io.Writer) error {
		return h.svc.CSV(c.Request.Context(), ano, w)
	})
}

// PDF godoc
// @Summary DRE do ano em PDF
// @Tags dre
// @Produce application/pdf
// @Security BearerAuth
// @Param ano path int true "Ano"
// @Success 200 {file} binary
// @Router /v1/dre/{ano}/pdf [get]
func (h *DREHandler) PDF(c *gin.Context) {
	ano, ok := paramAno(c)
	if !ok {
		return
	}
	enviarArquivo(c, "application/pdf", fmt.Sprintf("dre_%d.pdf", ano), func(w io.Writer) error {
		return h.svc.PDF(c.Request.Context(), ano, w)
	})
}

// NaoMapeadas godoc
// @Summary Categorias do ERP sem mapeamento contábil no ano
// @Tags dre
// @Produce json
// @Security BearerAuth
// @Param ano path int true "Ano"
// @Success 200 {array} calculo.NaoMapeada
// @Router /v1/dre/{ano}/nao-mapeadas [get]
func (h *DREHandler) NaoMapeadas(c *gin.Context) {
	ano, ok := paramAno(c)
	if !ok {
		return
	}
	resp, err := h.svc.NaoMapeadas(c.Request.Context(), ano)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMapeamentos godoc
// @Summary Lista os mapeamentos de categoria ERP → conta DRE
// @Tags dre
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MapeamentoResponse
// @Router /v1/categorias-mapeamento [get]
func (h *DREHandler) ListarMapeamentos(c *gin.Context) {
	resp, err := h.svc.ListarMapeamentos(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SalvarMapeamento godoc
// @Summary Cria ou atualiza o mapeamento de uma categoria do ERP
// @Description Invalida todos os DREs em cache.
// @Tags dre
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MapeamentoRequest true "Mapeamento"
// @Success 200 {object} dto.MapeamentoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/categorias-mapeamento [put]
func (h *DREHandler) SalvarMapeamento(c *gin.Context) {
	var req dto.MapeamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SalvarMapeamento(c.Request.Context(), req)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
