package handler

import (
	"net/http"

	"github.com/HarryYanarico/my-proyect/internal/apierror"
	"github.com/HarryYanarico/my-proyect/internal/dto"
	"github.com/HarryYanarico/my-proyect/internal/middleware"
	"github.com/HarryYanarico/my-proyect/internal/service"

	"github.com/gin-gonic/gin"
)

type PagosHandler struct{ svc service.PagoService }

func NewPagosHandler(svc service.PagoService) *PagosHandler { return &PagosHandler{svc: svc} }

// RegistrarPago godoc
// @Summary      Registrar pago de cuota
// @Description  Aplica un pago a una cuota bloqueándola; el monto no puede superar el saldo. El empleado se toma del token.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarPagoRequest true "Pago"
// @Success      201  {object} dto.RegistroPagoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/pagos [post]
func (h *PagosHandler) RegistrarPago(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empleadoID, ok := middleware.EmpleadoID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New(apierror.CodeNoAutorizado, "Autenticación requerida"))
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), empleadoID, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RevertirPago godoc
// @Summary      Revertir pago
// @Description  Elimina un pago y devuelve su monto a la cuota, recalculando el estado.
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "UUID del pago"
// @Success      200 {object} dto.ReversionPagoResponse
// @Failure      404 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/pagos/{id} [delete]
func (h *PagosHandler) RevertirPago(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.RevertirPago(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarPago godoc
// @Summary      Actualizar datos del pago
// @Description  Modifica método de pago y comprobante. El monto no se edita: se revierte y se registra de nuevo.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string                    true "UUID del pago"
// @Param        body body     dto.ActualizarPagoRequest true "Campos a modificar"
// @Success      200  {object} dto.PagoResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/pagos/{id} [patch]
func (h *PagosHandler) ActualizarPago(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPago(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPago godoc
// @Summary      Obtener pago
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "UUID del pago"
// @Success      200 {object} dto.PagoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pagos/{id} [get]
func (h *PagosHandler) ObtenerPago(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPago(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarRecientes godoc
// @Summary      Últimos pagos
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        limit query    int false "Cantidad (1-100, default 10)"
// @Success      200   {object} dto.PagoListResponse
// @Router       /v1/pagos [get]
func (h *PagosHandler) ListarRecientes(c *gin.Context) {
	var q dto.PagosRecientesQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.ListarRecientes(c.Request.Context(), q.Limit)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorCuota godoc
// @Summary      Pagos de una cuota
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "UUID de la cuota"
// @Success      200 {object} dto.PagoListResponse
// @Router       /v1/cuotas/{id}/pagos [get]
func (h *PagosHandler) ListarPorCuota(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorCuota(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarPorVenta godoc
// @Summary      Pagos de una venta a crédito
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "UUID de la venta"
// @Success      200 {object} dto.PagoListResponse
// @Router       /v1/ventas/{id}/pagos [get]
func (h *PagosHandler) ListarPorVenta(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorVenta(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CuotasPorLote godoc
// @Summary      Cuotas de un lote
// @Description  Lista las cuotas del plan de pagos del lote con su saldo.
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path     string true "UUID del lote"
// @Success      200 {object} dto.CuotaListResponse
// @Router       /v1/lotes/{id}/cuotas [get]
func (h *PagosHandler) CuotasPorLote(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ListarCuotasPorLote(c.Request.Context(), id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
