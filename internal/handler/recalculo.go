package handler

import (
	"net/http"

	"orcaobra/internal/dto"
	"orcaobra/internal/service"

	"github.com/gin-gonic/gin"
)

type RecalculoHandler struct{ svc service.RecalculoService }

func NewRecalculoHandler(svc service.RecalculoService) *RecalculoHandler {
	return &RecalculoHandler{svc: svc}
}

// Agendar godoc
// @Summary Agenda o recálculo completo da revisão (mão de obra, resumo, fluxo de caixa)
// @Description O recálculo roda no pool de workers. Com email, o PDF do resumo é enviado ao final.
// @Tags recalculo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da revisão"
// @Param body body dto.RecalcularRequest false "Destinatário do PDF"
// @Success 202 {object} dto.RecalculoAgendadoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 429 {object} apierror.APIError
// @Router /v1/revisoes/{id}/recalcular [post]
func (h *RecalculoHandler) Agendar(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var req dto.RecalcularRequest
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	resp, err := h.svc.Agendar(c.Request.Context(), id, req)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
