package handler

import (
	"net/http"

	"github.com/nplaytv001-byte/vendas-ovos/internal/apierror"
	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Resumo godoc
// @Summary      Resumo do negócio
// @Description  Faturamento, contas a receber, número de vendas e clientes, saldo após despesas.
// @Tags         relatorios
// @Produce      json
// @Success      200 {object} dto.ResumoResponse
// @Router       /v1/relatorios/resumo [get]
func (h *RelatoriosHandler) Resumo(c *gin.Context) {
	resp, err := h.svc.Resumo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar resumo"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Diario godoc
// @Summary      Relatório por dia
// @Description  Somatórios de vendas por data (vendido, recebido, pendente).
// @Tags         relatorios
// @Produce      json
// @Param        de  query string false "Data inicial YYYY-MM-DD"
// @Param        ate query string false "Data final YYYY-MM-DD"
// @Success      200 {object} dto.RelatorioDiarioResponse
// @Router       /v1/relatorios/diario [get]
func (h *RelatoriosHandler) Diario(c *gin.Context) {
	var filter dto.RelatorioDiarioFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Diario(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
