package handler

import (
	"fmt"
	"net/http"

	"github.com/nplaytv001-byte/vendas-ovos/internal/apierror"
	"github.com/nplaytv001-byte/vendas-ovos/internal/dto"
	"github.com/nplaytv001-byte/vendas-ovos/internal/infra"
	"github.com/nplaytv001-byte/vendas-ovos/internal/repository"
	"github.com/nplaytv001-byte/vendas-ovos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendasHandler struct {
	svc  service.VendaService
	repo repository.VendaRepository
}

func NewVendasHandler(svc service.VendaService, repo repository.VendaRepository) *VendasHandler {
	return &VendasHandler{svc: svc, repo: repo}
}

// RegistrarVenda godoc
// @Summary      Registrar uma nova venda
// @Description  Cria uma venda ACID: debita estoque, grava pagamentos e movimento de estoque na mesma transação.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        body body dto.RegistrarVendaRequest true "Detalhe da venda"
// @Success      201  {object} dto.VendaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/vendas [post]
func (h *VendasHandler) RegistrarVenda(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenda(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarPagamento godoc
// @Summary      Registrar pagamento em uma venda
// @Description  Acumula o valor no canal informado e recalcula o pendente (nunca negativo).
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        id   path string                        true "UUID da venda"
// @Param        body body dto.RegistrarPagamentoRequest true "Pagamento"
// @Success      200  {object} dto.VendaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/vendas/{id}/pagamentos [post]
func (h *VendasHandler) RegistrarPagamento(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPagamento(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CorrigirVenda godoc
// @Summary      Corrigir preço e/ou pagamentos de uma venda
// @Description  Recalcula total e pendente. Quantidade e produto não são editáveis.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Param        id   path string                   true "UUID da venda"
// @Param        body body dto.CorrigirVendaRequest true "Campos a corrigir"
// @Success      200  {object} dto.VendaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/vendas/{id} [patch]
func (h *VendasHandler) CorrigirVenda(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CorrigirVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CorrigirVenda(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstornarVenda godoc
// @Summary      Estornar venda
// @Description  Devolve ao estoque a quantidade vendida e remove a venda. Um segundo estorno falha com 404.
// @Tags         vendas
// @Produce      json
// @Param        id path string true "UUID da venda"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id} [delete]
func (h *VendasHandler) EstornarVenda(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.EstornarVenda(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ObterVenda godoc
// @Summary      Obter venda por ID
// @Tags         vendas
// @Produce      json
// @Param        id path string true "UUID da venda"
// @Success      200 {object} dto.VendaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id} [get]
func (h *VendasHandler) ObterVenda(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObterVenda(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVendas godoc
// @Summary      Listar vendas
// @Description  Lista paginada filtrada por data e situação (abertas | quitadas | all).
// @Tags         vendas
// @Produce      json
// @Param        data     query string false "Data YYYY-MM-DD"
// @Param        situacao query string false "abertas | quitadas | all"
// @Param        page     query int    false "Página (default 1)"
// @Param        limit    query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.VendaListResponse
// @Router       /v1/vendas [get]
func (h *VendasHandler) ListarVendas(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarVendas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BaixarRecibo godoc
// @Summary      Baixar recibo da venda em PDF
// @Tags         vendas
// @Produce      application/pdf
// @Param        id path string true "UUID da venda"
// @Success      200
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id}/recibo [get]
func (h *VendasHandler) BaixarRecibo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	venda, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("venda não encontrada"))
		return
	}
	pdf, err := infra.GerarReciboPDF(venda)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar recibo"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=recibo_%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
