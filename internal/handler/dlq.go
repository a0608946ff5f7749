package handler

import (
	"net/http"
	"slices"
	"strconv"

	"orcaobra/internal/apierror"
	"orcaobra/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type DLQHandler struct{ rdb *redis.Client }

func NewDLQHandler(rdb *redis.Client) *DLQHandler { return &DLQHandler{rdb: rdb} }

// Listar godoc
// @Summary Lista os jobs que esgotaram as tentativas de uma fila
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param fila path string true "jobs:recalculo, jobs:email ou jobs:sincronizacao"
// @Param limite query int false "Máximo de entradas (padrão 50)"
// @Success 200 {array} worker.DLQEntry
// @Failure 404 {object} apierror.APIError
// @Router /v1/dlq/{fila} [get]
func (h *DLQHandler) Listar(c *gin.Context) {
	fila := c.Param("fila")
	if !slices.Contains(worker.FilasMonitoradas, fila) {
		c.JSON(http.StatusNotFound, apierror.New("fila desconhecida"))
		return
	}
	limite, _ := strconv.ParseInt(c.DefaultQuery("limite", "50"), 10, 64)
	entradas, err := worker.ListarDLQ(c.Request.Context(), h.rdb, fila, limite)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entradas)
}
