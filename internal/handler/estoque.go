package handler

import (
	"net/http"

	"github.com/nplaytv001-byte/vendas-ovos/internal/apierror"
	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/service"

	"github.com/gin-gonic/gin"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// Listar godoc
// @Summary      Saldo atual por produto
// @Tags         estoque
// @Produce      json
// @Success      200 {array} dto.ItemEstoqueResponse
// @Router       /v1/estoque [get]
func (h *EstoqueHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar estoque"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada de estoque
// @Description  Credita bandejas no saldo do produto e grava o movimento na mesma transação.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Param        body body dto.EntradaEstoqueRequest true "Entrada"
// @Success      200  {object} dto.ItemEstoqueResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/estoque/entradas [post]
func (h *EstoqueHandler) RegistrarEntrada(c *gin.Context) {
	var req dto.EntradaEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntrada(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMovimentos godoc
// @Summary      Histórico de movimentos de estoque
// @Tags         estoque
// @Produce      json
// @Param        produto query string false "Filtrar por produto"
// @Param        limit   query int    false "Máximo de registros (default 100)"
// @Success      200 {array} dto.MovimentoEstoqueResponse
// @Router       /v1/estoque/movimentos [get]
func (h *EstoqueHandler) ListarMovimentos(c *gin.Context) {
	var filter dto.MovimentoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimentos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar movimentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
