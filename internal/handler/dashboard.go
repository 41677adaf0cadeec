package handler

import (
	"net/http"

	"github.com/HarryYanarico/my-proyect/internal/dto"
	"github.com/HarryYanarico/my-proyect/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// VentasMensuales godoc
// @Summary      Ventas por mes
// @Description  Sin parámetros: ventana móvil que termina en el mes actual. Con year: los 12 meses del año paginados. Con page: historial completo paginado.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        ventana query    int false "Meses por página (default configurado)"
// @Param        page    query    int false "Página, 1 = más reciente"
// @Param        year    query    int false "Año calendario"
// @Success      200     {object} dto.VentasMensualesResponse
// @Failure      400     {object} apierror.APIError
// @Router       /v1/dashboard/ventas-mensuales [get]
func (h *DashboardHandler) VentasMensuales(c *gin.Context) {
	var q dto.DashboardQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.VentasMensuales(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CuotasVencidas godoc
// @Summary      Cuotas vencidas por mes
// @Description  Cuotas pendientes con vencimiento pasado, agrupadas por mes de vencimiento con los mismos modos de rango que ventas-mensuales. Los meses por página son los configurados en DASHBOARD_VENTANA.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        page    query    int false "Página, 1 = más reciente"
// @Param        year    query    int false "Año calendario"
// @Success      200     {object} dto.CuotasVencidasResponse
// @Failure      400     {object} apierror.APIError
// @Failure      422     {object} apierror.ValidationError
// @Router       /v1/dashboard/cuotas-vencidas [get]
func (h *DashboardHandler) CuotasVencidas(c *gin.Context) {
	var q dto.DashboardQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.CuotasVencidas(c.Request.Context(), q)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary      Indicadores del tablero
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardResumenResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VentasRecientes godoc
// @Summary      Últimas ventas
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.VentaRecienteItem
// @Router       /v1/dashboard/ventas-recientes [get]
func (h *DashboardHandler) VentasRecientes(c *gin.Context) {
	resp, err := h.svc.VentasRecientes(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
