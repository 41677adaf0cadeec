package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/HarryYanarico/my-proyect/internal/apperror"
	"github.com/HarryYanarico/my-proyect/internal/dto"
	"github.com/HarryYanarico/my-proyect/internal/repository"
)

type DashboardService interface {
	VentasMensuales(ctx context.Context, q dto.DashboardQuery) (*dto.VentasMensualesResponse, error)
	CuotasVencidas(ctx context.Context, q dto.DashboardQuery) (*dto.CuotasVencidasResponse, error)
	Resumen(ctx context.Context) (*dto.DashboardResumenResponse, error)
	VentasRecientes(ctx context.Context) ([]dto.VentaRecienteItem, error)
}

// DashboardConfig holds the calendar defaults.
type DashboardConfig struct {
	Ventana         int // months per page when the caller gives none
	CuotasPorMes    int // overdue installments listed per month
	VentasRecientes int
}

type dashboardService struct {
	repo  repository.DashboardRepository
	cache DashboardCache
	reloj Reloj
	cfg   DashboardConfig
}

func NewDashboardService(repo repository.DashboardRepository, cache DashboardCache, reloj Reloj, cfg DashboardConfig) DashboardService {
	if cfg.Ventana <= 0 {
		cfg.Ventana = 4
	}
	if cfg.CuotasPorMes <= 0 {
		cfg.CuotasPorMes = 5
	}
	if cfg.VentasRecientes <= 0 {
		cfg.VentasRecientes = 5
	}
	return &dashboardService{repo: repo, cache: cache, reloj: reloj, cfg: cfg}
}

// seleccionarMeses resolves the month sequence of a request:
// year → paged calendar year, page only → paged full history, neither → trailing window.
func (s *dashboardService) seleccionarMeses(
	ctx context.Context,
	op string,
	q dto.DashboardQuery,
	ventana int,
	rango func(context.Context) (repository.RangoFechas, error),
) (PaginaMeses, error) {
	pagina := 1
	if q.Page != nil {
		if *q.Page < 1 {
			return PaginaMeses{}, apperror.Validacion(op, "page debe ser mayor o igual a 1")
		}
		pagina = *q.Page
	}

	switch {
	case q.Year != nil:
		if *q.Year < 1 {
			return PaginaMeses{}, apperror.Validacion(op, "year inválido")
		}
		return PaginaAnual(*q.Year, pagina, ventana), nil
	case q.Page != nil:
		r, err := rango(ctx)
		if err != nil {
			return PaginaMeses{}, fmt.Errorf("%s: rango: %w", op, err)
		}
		if r.Min == nil || r.Max == nil {
			return SinHistoria(pagina), nil
		}
		return PaginaHistorica(mesDe(*r.Min), mesDe(*r.Max), pagina, ventana), nil
	default:
		return VentanaMovil(s.reloj.Hoy(), ventana), nil
	}
}

func claveCache(prefijo string, q dto.DashboardQuery, ventana int, hoy string) string {
	page, year := "-", "-"
	if q.Page != nil {
		page = fmt.Sprint(*q.Page)
	}
	if q.Year != nil {
		year = fmt.Sprint(*q.Year)
	}
	return fmt.Sprintf("%s:%s:%d:%s:%s", prefijo, hoy, ventana, page, year)
}

// ── Ventas mensuales ──────────────────────────────────────────────────────────

func (s *dashboardService) VentasMensuales(ctx context.Context, q dto.DashboardQuery) (*dto.VentasMensualesResponse, error) {
	const op = "dashboard.ventas_mensuales"

	ventana := s.cfg.Ventana
	if q.Ventana != 0 {
		if q.Ventana < 1 {
			return nil, apperror.Validacion(op, "ventana debe ser mayor o igual a 1")
		}
		ventana = q.Ventana
	}

	key := claveCache("ventas-mensuales", q, ventana, formatearFecha(s.reloj.Hoy()))
	var (
		cached dto.VentasMensualesResponse
		gen    int64 = -1
	)
	if s.cache != nil {
		var ok bool
		if gen, ok = s.cache.Get(ctx, key, &cached); ok {
			return &cached, nil
		}
	}

	pagina, err := s.seleccionarMeses(ctx, op, q, ventana, s.repo.RangoVentas)
	if err != nil {
		return nil, err
	}

	resp := &dto.VentasMensualesResponse{
		Data:         make([]dto.VentaMensualBucket, 0, len(pagina.Meses)),
		PaginaActual: pagina.PaginaActual,
		TotalPaginas: pagina.TotalPaginas,
	}
	if len(pagina.Meses) == 0 {
		return resp, nil
	}

	desde, hasta := pagina.Rango()
	rows, err := s.repo.VentasPorMes(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	porMes := make(map[int]repository.VentasMesRow, len(rows))
	for _, r := range rows {
		porMes[Mes{Anio: r.Anio, Mes: r.Mes}.indice()] = r
	}

	for _, m := range pagina.Meses {
		r := porMes[m.indice()]
		resp.Data = append(resp.Data, dto.VentaMensualBucket{
			Anio:     m.Anio,
			Mes:      m.Mes,
			Etiqueta: m.Etiqueta(),
			Contado:  r.Contado,
			Credito:  r.Credito,
			Total:    r.Contado + r.Credito,
		})
	}

	if s.cache != nil {
		s.cache.Set(ctx, gen, key, resp)
	}
	return resp, nil
}

// ── Cuotas vencidas ───────────────────────────────────────────────────────────

func (s *dashboardService) CuotasVencidas(ctx context.Context, q dto.DashboardQuery) (*dto.CuotasVencidasResponse, error) {
	const op = "dashboard.cuotas_vencidas"

	hoy := s.reloj.Hoy()
	ventana := s.cfg.Ventana
	key := claveCache("cuotas-vencidas", dto.DashboardQuery{Page: q.Page, Year: q.Year}, ventana, formatearFecha(hoy))
	var (
		cached dto.CuotasVencidasResponse
		gen    int64 = -1
	)
	if s.cache != nil {
		var ok bool
		if gen, ok = s.cache.Get(ctx, key, &cached); ok {
			return &cached, nil
		}
	}

	rango := func(ctx context.Context) (repository.RangoFechas, error) {
		return s.repo.RangoCuotasVencidas(ctx, hoy)
	}
	pagina, err := s.seleccionarMeses(ctx, op, q, ventana, rango)
	if err != nil {
		return nil, err
	}

	resp := &dto.CuotasVencidasResponse{
		Data:         make([]dto.CuotasVencidasBucket, 0, len(pagina.Meses)),
		PaginaActual: pagina.PaginaActual,
		TotalPaginas: pagina.TotalPaginas,
	}
	if len(pagina.Meses) == 0 {
		return resp, nil
	}

	desde, hasta := pagina.Rango()
	rows, err := s.repo.CuotasVencidasPorMes(ctx, hoy, desde, hasta, s.cfg.CuotasPorMes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	porMes := make(map[int][]repository.CuotaVencidaRow)
	for _, r := range rows {
		idx := Mes{Anio: r.Anio, Mes: r.Mes}.indice()
		porMes[idx] = append(porMes[idx], r)
	}

	for _, m := range pagina.Meses {
		grupo := porMes[m.indice()]
		sort.SliceStable(grupo, func(i, j int) bool {
			if !grupo[i].FechaVenc.Equal(grupo[j].FechaVenc) {
				return grupo[i].FechaVenc.Before(grupo[j].FechaVenc)
			}
			return grupo[i].DiasVencido > grupo[j].DiasVencido
		})
		if len(grupo) > s.cfg.CuotasPorMes {
			grupo = grupo[:s.cfg.CuotasPorMes]
		}
		bucket := dto.CuotasVencidasBucket{
			Anio:     m.Anio,
			Mes:      m.Mes,
			Etiqueta: m.Etiqueta(),
			Cuotas:   make([]dto.CuotaVencidaItem, 0, len(grupo)),
		}
		for _, r := range grupo {
			bucket.Cuotas = append(bucket.Cuotas, dto.CuotaVencidaItem{
				CuotaID:          r.CuotaID.String(),
				Cliente:          r.Cliente,
				Lote:             r.Lote,
				Monto:            r.Monto,
				FechaVencimiento: formatearFecha(r.FechaVenc),
				DiasVencido:      r.DiasVencido,
			})
		}
		resp.Data = append(resp.Data, bucket)
	}

	if s.cache != nil {
		s.cache.Set(ctx, gen, key, resp)
	}
	return resp, nil
}

// ── Resumen ───────────────────────────────────────────────────────────────────

func (s *dashboardService) Resumen(ctx context.Context) (*dto.DashboardResumenResponse, error) {
	mes := mesDe(s.reloj.Hoy())
	desde := mes.Inicio()
	hasta := mesDesdeIndice(mes.indice() + 1).Inicio()

	r, err := s.repo.Resumen(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("dashboard.resumen: %w", err)
	}
	return &dto.DashboardResumenResponse{
		TotalClientes:    r.TotalClientes,
		LotesDisponibles: r.LotesDisponibles,
		LotesVendidos:    r.LotesVendidos,
		VentasMes:        r.VentasMes,
		IngresosMes:      r.IngresosContado.Add(r.IngresosCuotas),
		CuotasPendientes: r.CuotasPendientes,
		EmpleadosActivos: r.EmpleadosActivos,
	}, nil
}

func (s *dashboardService) VentasRecientes(ctx context.Context) ([]dto.VentaRecienteItem, error) {
	rows, err := s.repo.VentasRecientes(ctx, s.cfg.VentasRecientes)
	if err != nil {
		return nil, fmt.Errorf("dashboard.ventas_recientes: %w", err)
	}
	items := make([]dto.VentaRecienteItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.VentaRecienteItem{
			VentaID:    r.VentaID.String(),
			FechaVenta: formatearFecha(r.FechaVenta),
			TipoVenta:  r.TipoVenta,
			Cliente:    r.Cliente,
			Lote:       r.Lote,
			Monto:      r.Monto,
		})
	}
	return items, nil
}
