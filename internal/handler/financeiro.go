package handler

import (
	"net/http"

	"orcaobra/internal/apierror"
	"orcaobra/internal/dto"
	"orcaobra/internal/service"

	"github.com/gin-gonic/gin"
)

type FinanceiroHandler struct {
	financeiro    service.FinanceiroService
	sincronizacao service.SincronizacaoService
}

func NewFinanceiroHandler(financeiro service.FinanceiroService, sincronizacao service.SincronizacaoService) *FinanceiroHandler {
	return &FinanceiroHandler{financeiro: financeiro, sincronizacao: sincronizacao}
}

// Aging godoc
// @Summary Aging dos títulos em aberto (a receber ou a pagar)
// @Tags financeiro
// @Produce json
// @Security BearerAuth
// @Param tipo query string true "AR ou AP"
// @Success 200 {object} dto.AgingResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/financeiro/aging [get]
func (h *FinanceiroHandler) Aging(c *gin.Context) {
	var filter dto.AgingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if !validar(c, &filter) {
		return
	}
	resp, err := h.financeiro.Aging(c.Request.Context(), filter.Tipo)
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Sincronizar godoc
// @Summary Sincroniza contas a receber e a pagar com o ERP
// @Tags financeiro
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SincronizacaoResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/financeiro/sincronizar [post]
func (h *FinanceiroHandler) Sincronizar(c *gin.Context) {
	resp, err := h.sincronizacao.Sincronizar(c.Request.Context())
	if err != nil {
		responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
