package handler

import (
	"net/http"

	"orcaobra/internal/service"

	"github.com/gin-gonic/gin"
)

type MaoObraHandler struct{ svc service.MaoObraService }

func NewMaoObraHandler(svc service.MaoObraService) *MaoObraHandler {
	return &MaoObraHandler{svc: svc}
}

// Recalcular godoc
// @Summary Recalcula o custo horário de todas as funções ativas da revisão
// @Tags mao-de-obra
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {object} dto.RecalculoMaoObraResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/revisoes/{id}/mao-obra/recalcular [post]
func (h *MaoObraHandler) Recalcular(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Recalcular(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarCustos godoc
// @Summary Lista os custos horários calculados da revisão
// @Tags mao-de-obra
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Success 200 {array} dto.CustoMaoObraResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/revisoes/{id}/mao-obra/custos [get]
func (h *MaoObraHandler) ListarCustos(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarCustos(c.Request.Context(), id)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
