package handler

import (
	"fmt"
	"io"
	"net/http"

	"orcaobra/internal/dto"
	"orcaobra/internal/service"

	"github.com/gin-gonic/gin"
)

type FluxoCaixaHandler struct {
	fluxo      service.FluxoCaixaService
	histograma service.HistogramaService
}

func NewFluxoCaixaHandler(fluxo service.FluxoCaixaService, histograma service.HistogramaService) *FluxoCaixaHandler {
	return &FluxoCaixaHandler{fluxo: fluxo, histograma: histograma}
}

// Gerar godoc
// @Summary Gera (substitui) o fluxo de caixa mensal da revisão
// @Tags fluxo-caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Param body body dto.GerarFluxoCaixaRequest false "Prazo e mês inicial"
// @Success 200 {object} dto.FluxoCaixaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/revisoes/{id}/fluxo-caixa [post]
func (h *FluxoCaixaHandler) Gerar(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	// body is optional
	var req dto.GerarFluxoCaixaRequest
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	resp, err := h.fluxo.Gerar(c.Request.Context(), id, req)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary Lista o fluxo de caixa gravado da revisão
// @Tags fluxo-caixa
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {object} dto.FluxoCaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/revisoes/{id}/fluxo-caixa [get]
func (h *FluxoCaixaHandler) Listar(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.fluxo.Listar(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Histograma godoc
// @Summary Histograma mensal de mão de obra (horas e custo por função)
// @Tags fluxo-caixa
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {object} calculo.Histograma
// @Failure 404 {object} apierror.APIError
// @Router /v1/revisoes/{id}/histograma [get]
func (h *FluxoCaixaHandler) Histograma(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.histograma.Calcular(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HistogramaCSV godoc
// @Summary Histograma de mão de obra em CSV
// @Tags fluxo-caixa
// @Produce text/csv
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/revisoes/{id}/histograma/csv [get]
func (h *FluxoCaixaHandler) HistogramaCSV(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	enviarArquivo(c, "text/csv; charset=utf-8", fmt.Sprintf("histograma_%s.csv", id), func(w io.Writer) error {
		return h.histograma.CSV(c.Request.Context(), id, w)
	})
}
