package handler

import (
	"net/http"

	"github.com/nplaytv001-byte/vendas-ovos/internal/apierror"
	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DespesasHandler struct{ svc service.DespesaService }

func NewDespesasHandler(svc service.DespesaService) *DespesasHandler {
	return &DespesasHandler{svc: svc}
}

// Criar godoc
// @Summary      Registrar despesa
// @Tags         despesas
// @Accept       json
// @Produce      json
// @Param        body body dto.DespesaRequest true "Despesa"
// @Success      201  {object} dto.DespesaResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/despesas [post]
func (h *DespesasHandler) Criar(c *gin.Context) {
	var req dto.DespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar despesas
// @Tags         despesas
// @Produce      json
// @Param        de  query string false "Data inicial YYYY-MM-DD"
// @Param        ate query string false "Data final YYYY-MM-DD"
// @Success      200 {array} dto.DespesaResponse
// @Router       /v1/despesas [get]
func (h *DespesasHandler) Listar(c *gin.Context) {
	var filter dto.DespesaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excluir godoc
// @Summary      Excluir despesa
// @Tags         despesas
// @Produce      json
// @Param        id path string true "UUID da despesa"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/despesas/{id} [delete]
func (h *DespesasHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
