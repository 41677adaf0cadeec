//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/config"
	"github.com/HarryYanarico/my-proyect/internal/infra"
	"github.com/HarryYanarico/my-proyect/internal/middleware"
	"github.com/HarryYanarico/my-proyect/internal/model"
	"github.com/HarryYanarico/my-proyect/internal/repository"
	"github.com/HarryYanarico/my-proyect/internal/router"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key"

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	server   *httptest.Server
	db       *gorm.DB
	vendedor string // JWT
	admin    string // JWT
	empleado *model.Empleado
	cliente  *model.Cliente
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (e *testEnv) nuevoLote(t *testing.T) *model.Lote {
	t.Helper()
	l := &model.Lote{Nombre: "Lote " + uuid.NewString()[:8], Precio: decimal.NewFromInt(20000), Estado: model.LoteDisponible}
	require.NoError(t, repository.NewLoteRepository(e.db).Create(context.Background(), l))
	return l
}

func (e *testEnv) ventaCredito(lote *model.Lote) map[string]any {
	return map[string]any{
		"fecha_venta": "2024-01-10",
		"tipo_venta":  "credito",
		"id_empleado": e.empleado.ID.String(),
		"id_cliente":  e.cliente.ID.String(),
		"id_lote":     lote.ID.String(),
		"datos_credito": map[string]any{
			"plan_financiamiento": "3 cuotas",
			"cuota_inicial":       "0",
			"saldo_pendiente":     "20000.00",
			"plazo":               3,
			"tasa_interes":        "0",
			"plan_pago": map[string]any{
				"cuota_inicial": "0",
				"fecha_inicial": "2024-02-01",
				"fecha_final":   "2024-04-01",
				"plazo_anio":    1,
				"monto_final":   "20000.00",
				"cuotas": []map[string]any{
					{"monto_cuota": "7000.00", "fecha_venc": "2024-02-01"},
					{"monto_cuota": "7000.00", "fecha_venc": "2024-03-01"},
					{"monto_cuota": "6000.00", "fecha_venc": "2024-04-01"},
				},
			},
		},
	}
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("lotes_test"),
		tcPostgres.WithUsername("lotes"),
		tcPostgres.WithPassword("lotes"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                     8000,
		Env:                      "test",
		Timezone:                 "America/La_Paz",
		RateLimit:                "10000-M",
		CORSOrigins:              "*",
		DatabaseURL:              pgURL,
		DBLockTimeoutMS:          2000,
		RedisURL:                 rdURL,
		JWTSecret:                testSecret,
		JWTExpirationHours:       1,
		DashboardVentana:         4,
		DashboardCacheTTLSeconds: 60,
		CuotasVencidasPorMes:     5,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	require.NoError(t, err)

	r, err := router.New(cfg, db, rdb)
	require.NoError(t, err)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv, db: db}
	env.empleado = &model.Empleado{Nombre: "Vera", Email: "vera@lotes.bo", PasswordHash: "x", Rol: model.RolVendedor, Activo: true}
	require.NoError(t, repository.NewEmpleadoRepository(db).Create(ctx, env.empleado))
	admin := &model.Empleado{Nombre: "Ada", Email: "ada@lotes.bo", PasswordHash: "x", Rol: model.RolAdministrador, Activo: true}
	require.NoError(t, repository.NewEmpleadoRepository(db).Create(ctx, admin))
	env.cliente = &model.Cliente{Nombre: "Juan", Apellido: "Mamani"}
	require.NoError(t, repository.NewClienteRepository(db).Create(ctx, env.cliente))

	env.vendedor, err = middleware.GenerarToken(testSecret, env.empleado.ID, env.empleado.Email, env.empleado.Rol, time.Hour)
	require.NoError(t, err)
	env.admin, err = middleware.GenerarToken(testSecret, admin.ID, admin.Email, admin.Rol, time.Hour)
	require.NoError(t, err)
	return env
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("health", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, "/health", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "connected", body["db"])
		assert.Equal(t, "connected", body["redis"])
	})

	t.Run("sin token", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodGet, "/v1/dashboard", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("venta a credito, pagos y reversion", func(t *testing.T) {
		lote := env.nuevoLote(t)
		resp, venta := env.do(t, http.MethodPost, "/v1/ventas", env.ventaCredito(lote), env.vendedor)
		require.Equal(t, http.StatusCreated, resp.StatusCode, venta)
		ventaID := venta["id"].(string)

		resp, _ = env.do(t, http.MethodPost, "/v1/ventas", env.ventaCredito(lote), env.vendedor)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		resp, cuotas := env.do(t, http.MethodGet, "/v1/lotes/"+lote.ID.String()+"/cuotas", nil, env.vendedor)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data := cuotas["data"].([]any)
		require.Len(t, data, 3)
		primera := data[0].(map[string]any)
		cuotaID := primera["id"].(string)

		pago := func(monto string) (*http.Response, map[string]any) {
			return env.do(t, http.MethodPost, "/v1/pagos", map[string]any{
				"id_cuota": cuotaID, "monto": monto, "fecha_pago": "2024-02-01",
			}, env.vendedor)
		}

		resp, p1 := pago("3000.00")
		require.Equal(t, http.StatusCreated, resp.StatusCode, p1)
		assert.Equal(t, "parcial", p1["estado"])

		resp, rechazo := pago("5000.00")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, rechazo["detail"], "4000.00")

		resp, p2 := pago("4000.00")
		require.Equal(t, http.StatusCreated, resp.StatusCode, p2)
		assert.Equal(t, "pagado", p2["estado"])

		resp, v := env.do(t, http.MethodGet, "/v1/ventas/"+ventaID, nil, env.vendedor)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		credito := v["datos_credito"].(map[string]any)
		saldo, err := decimal.NewFromString(fmt.Sprint(credito["saldo_pendiente"]))
		require.NoError(t, err)
		assert.True(t, saldo.Equal(decimal.NewFromInt(16000)), saldo.String())

		resp, lista := env.do(t, http.MethodGet, "/v1/ventas/"+ventaID+"/pagos", nil, env.vendedor)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, lista["data"], 2)

		p2ID := p2["pago"].(map[string]any)["id"].(string)
		resp, _ = env.do(t, http.MethodDelete, "/v1/pagos/"+p2ID, nil, env.vendedor)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, rev := env.do(t, http.MethodDelete, "/v1/pagos/"+p2ID, nil, env.admin)
		require.Equal(t, http.StatusOK, resp.StatusCode, rev)
		assert.Equal(t, "parcial", rev["estado"])

		resp, _ = env.do(t, http.MethodDelete, "/v1/pagos/"+p2ID, nil, env.admin)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = env.do(t, http.MethodGet, "/v1/ventas/"+ventaID, nil, env.vendedor)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var vc model.VentaCredito
		require.NoError(t, env.db.First(&vc, "venta_id = ?", ventaID).Error)
		assert.True(t, vc.SaldoPendiente.Equal(decimal.NewFromInt(20000)), vc.SaldoPendiente.String())
	})

	t.Run("un solo comprador por lote", func(t *testing.T) {
		lote := env.nuevoLote(t)
		const n = 6
		codes := make([]int, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				resp, _ := env.do(t, http.MethodPost, "/v1/ventas", env.ventaCredito(lote), env.vendedor)
				codes[i] = resp.StatusCode
			}(i)
		}
		wg.Wait()

		var creadas, conflictos int
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				creadas++
			case http.StatusConflict:
				conflictos++
			}
		}
		assert.Equal(t, 1, creadas)
		assert.Equal(t, n-1, conflictos)
	})

	t.Run("pagos concurrentes no exceden la cuota", func(t *testing.T) {
		lote := env.nuevoLote(t)
		resp, _ := env.do(t, http.MethodPost, "/v1/ventas", env.ventaCredito(lote), env.vendedor)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_, cuotas := env.do(t, http.MethodGet, "/v1/lotes/"+lote.ID.String()+"/cuotas", nil, env.vendedor)
		cuotaID := cuotas["data"].([]any)[2].(map[string]any)["id"].(string) // 6000

		const n = 10
		codes := make([]int, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				resp, _ := env.do(t, http.MethodPost, "/v1/pagos", map[string]any{
					"id_cuota": cuotaID, "monto": "1000.00", "fecha_pago": "2024-04-01",
				}, env.vendedor)
				codes[i] = resp.StatusCode
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, c := range codes {
			if c == http.StatusCreated {
				ok++
			}
		}
		assert.Equal(t, 6, ok)

		var c model.Cuota
		require.NoError(t, env.db.First(&c, "id = ?", cuotaID).Error)
		assert.Equal(t, model.CuotaPagada, c.Estado)
		assert.True(t, c.MontoPagado.Equal(decimal.NewFromInt(6000)))
	})

	t.Run("dashboard", func(t *testing.T) {
		resp, resumen := env.do(t, http.MethodGet, "/v1/dashboard", nil, env.vendedor)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 3, resumen["lotes_vendidos"])
		assert.EqualValues(t, 2, resumen["empleados_activos"])

		resp, anual := env.do(t, http.MethodGet, "/v1/dashboard/ventas-mensuales?year=2024&ventana=12", nil, env.vendedor)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		meses := anual["data"].([]any)
		require.Len(t, meses, 12)
		enero := meses[0].(map[string]any)
		assert.EqualValues(t, 1, enero["mes"])
		assert.EqualValues(t, 3, enero["credito"])

		resp, vencidas := env.do(t, http.MethodGet, "/v1/dashboard/cuotas-vencidas?year=2024&ventana=12", nil, env.vendedor)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, vencidas["data"], 12)

		resp, _ = env.do(t, http.MethodGet, "/v1/dashboard/ventas-mensuales?page=0", nil, env.vendedor)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}
