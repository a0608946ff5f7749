package handler

import (
	"fmt"
	"io"
	"net/http"

	"orcaobra/internal/dto"
	"orcaobra/internal/service"

	"github.com/gin-gonic/gin"
)

type OrcamentoHandler struct{ svc service.OrcamentoService }

func NewOrcamentoHandler(svc service.OrcamentoService) *OrcamentoHandler {
	return &OrcamentoHandler{svc: svc}
}

// CriarItem godoc
// @Summary Cria um item de custo na revisão
// @Tags orcamento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Param body body dto.ItemCustoRequest true "Item de custo"
// @Success 201 {object} dto.ItemCustoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/revisoes/{id}/itens [post]
func (h *OrcamentoHandler) CriarItem(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ItemCustoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CriarItem(c.Request.Context(), id, req)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarItens godoc
// @Summary Lista os itens de custo da revisão
// @Tags orcamento
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {array} dto.ItemCustoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/revisoes/{id}/itens [get]
func (h *OrcamentoHandler) ListarItens(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarItens(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoverItem godoc
// @Summary Remove um item de custo
// @Tags orcamento
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Param item_id path string true "ID do item"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/revisoes/{id}/itens/{item_id} [delete]
func (h *OrcamentoHandler) RemoverItem(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramUUID(c, "item_id")
	if !ok {
		return
	}
	if err := h.svc.RemoverItem(c.Request.Context(), id, itemID); err != nil {
		responderErro(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecalcularResumo godoc
// @Summary Recalcula o resumo (markup, impostos, preço de venda) da revisão
// @Tags orcamento
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {object} dto.ResumoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/revisoes/{id}/resumo/recalcular [post]
func (h *OrcamentoHandler) RecalcularResumo(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.RecalcularResumo(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObterResumo godoc
// @Summary Retorna o resumo gravado da revisão
// @Tags orcamento
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {object} dto.ResumoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/revisoes/{id}/resumo [get]
func (h *OrcamentoHandler) ObterResumo(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObterResumo(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumoPDF godoc
// @Summary Resumo do orçamento em PDF
// @Tags orcamento
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/revisoes/{id}/resumo/pdf [get]
func (h *OrcamentoHandler) ResumoPDF(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	enviarArquivo(c, "application/pdf", fmt.Sprintf("resumo_%s.pdf", id), func(w io.Writer) error {
		return h.svc.ResumoPDF(c.Request.Context(), id, w)
	})
}
