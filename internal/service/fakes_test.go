package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/model"
	"github.com/HarryYanarico/my-proyect/internal/repository"
	"github.com/HarryYanarico/my-proyect/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory store ───────────────────────────────────────────────────────────

// memStore backs every stub repository. txMu serialises transactions the way
// row locks serialise them in PostgreSQL; a failed transaction restores the
// snapshot taken when it began.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	lotes      map[uuid.UUID]model.Lote
	clientes   map[uuid.UUID]model.Cliente
	empleados  map[uuid.UUID]model.Empleado
	ventas     map[uuid.UUID]model.Venta
	documentos map[uuid.UUID]model.DocumentoVenta
	contados   map[uuid.UUID]model.VentaContado
	creditos   map[uuid.UUID]model.VentaCredito
	planes     map[uuid.UUID]model.PlanPago
	cuotas     map[uuid.UUID]model.Cuota
	pagos      map[uuid.UUID]model.PagoCuota
	pagoSeq    map[uuid.UUID]int64
	seq        int64

	// fallas makes the named repository method fail.
	fallas map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		lotes:      map[uuid.UUID]model.Lote{},
		clientes:   map[uuid.UUID]model.Cliente{},
		empleados:  map[uuid.UUID]model.Empleado{},
		ventas:     map[uuid.UUID]model.Venta{},
		documentos: map[uuid.UUID]model.DocumentoVenta{},
		contados:   map[uuid.UUID]model.VentaContado{},
		creditos:   map[uuid.UUID]model.VentaCredito{},
		planes:     map[uuid.UUID]model.PlanPago{},
		cuotas:     map[uuid.UUID]model.Cuota{},
		pagos:      map[uuid.UUID]model.PagoCuota{},
		pagoSeq:    map[uuid.UUID]int64{},
		fallas:     map[string]error{},
	}
}

func clonar[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &memStore{
		lotes:      clonar(s.lotes),
		clientes:   clonar(s.clientes),
		empleados:  clonar(s.empleados),
		ventas:     clonar(s.ventas),
		documentos: clonar(s.documentos),
		contados:   clonar(s.contados),
		creditos:   clonar(s.creditos),
		planes:     clonar(s.planes),
		cuotas:     clonar(s.cuotas),
		pagos:      clonar(s.pagos),
		pagoSeq:    clonar(s.pagoSeq),
		seq:        s.seq,
	}
}

func (s *memStore) restore(snap *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lotes, s.clientes, s.empleados = snap.lotes, snap.clientes, snap.empleados
	s.ventas, s.documentos, s.contados, s.creditos = snap.ventas, snap.documentos, snap.contados, snap.creditos
	s.planes, s.cuotas, s.pagos, s.pagoSeq, s.seq = snap.planes, snap.cuotas, snap.pagos, snap.pagoSeq, snap.seq
}

func (s *memStore) falla(metodo string) error {
	return s.fallas[metodo]
}

func nuevoID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.Must(uuid.NewV7())
	}
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type stubTx struct{ s *memStore }

func (t *stubTx) Run(_ context.Context, fn func(tx *gorm.DB) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	snap := t.s.snapshot()
	if err := fn(&gorm.DB{}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

var _ repository.TxRunner = (*stubTx)(nil)

// ── Collaborators ─────────────────────────────────────────────────────────────

type stubLoteRepo struct{ s *memStore }

func (r *stubLoteRepo) Create(_ context.Context, l *model.Lote) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&l.ID)
	r.s.lotes[l.ID] = *l
	return nil
}

func (r *stubLoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *stubLoteRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Lote, error) {
	return r.FindByID(ctx, id)
}

func (r *stubLoteRepo) MarcarVendidoTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (bool, error) {
	if err := r.s.falla("MarcarVendidoTx"); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lotes[id]
	if !ok || l.Estado != model.LoteDisponible {
		return false, nil
	}
	l.Estado = model.LoteVendido
	r.s.lotes[id] = l
	return true, nil
}

var _ repository.LoteRepository = (*stubLoteRepo)(nil)

type stubClienteRepo struct{ s *memStore }

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&c.ID)
	r.s.clientes[c.ID] = *c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubEmpleadoRepo struct{ s *memStore }

func (r *stubEmpleadoRepo) Create(_ context.Context, e *model.Empleado) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&e.ID)
	r.s.empleados[e.ID] = *e
	return nil
}

func (r *stubEmpleadoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Empleado, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.empleados[id]
	if !ok || !e.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (r *stubEmpleadoRepo) FindByEmail(_ context.Context, email string) (*model.Empleado, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.empleados {
		if e.Email == email {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

var _ repository.EmpleadoRepository = (*stubEmpleadoRepo)(nil)

// ── Ventas ────────────────────────────────────────────────────────────────────

type stubVentaRepo struct{ s *memStore }

func (r *stubVentaRepo) CreateTx(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if err := r.s.falla("CreateTx"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&v.ID)
	v.CreatedAt = time.Now()
	r.s.ventas[v.ID] = *v
	return nil
}

func (r *stubVentaRepo) CreateDocumentoTx(_ context.Context, _ *gorm.DB, d *model.DocumentoVenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&d.ID)
	r.s.documentos[d.ID] = *d
	return nil
}

func (r *stubVentaRepo) CreateContadoTx(_ context.Context, _ *gorm.DB, vc *model.VentaContado) error {
	if err := r.s.falla("CreateContadoTx"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&vc.ID)
	stored := *vc
	stored.Documento = nil
	r.s.contados[vc.ID] = stored
	return nil
}

func (r *stubVentaRepo) CreateCreditoTx(_ context.Context, _ *gorm.DB, vc *model.VentaCredito) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&vc.ID)
	stored := *vc
	stored.Plan = nil
	r.s.creditos[vc.ID] = stored
	return nil
}

func (r *stubVentaRepo) VincularPlanTx(_ context.Context, _ *gorm.DB, creditoID, planID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	vc, ok := r.s.creditos[creditoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	vc.PlanPagoID = &planID
	r.s.creditos[creditoID] = vc
	return nil
}

func (r *stubVentaRepo) AjustarSaldoPendienteTx(_ context.Context, _ *gorm.DB, creditoID uuid.UUID, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	vc, ok := r.s.creditos[creditoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	vc.SaldoPendiente = vc.SaldoPendiente.Add(delta)
	r.s.creditos[creditoID] = vc
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, vc := range r.s.contados {
		if vc.VentaID == id {
			vc := vc
			doc := r.s.documentos[vc.DocumentoID]
			vc.Documento = &doc
			v.Contado = &vc
		}
	}
	for _, vc := range r.s.creditos {
		if vc.VentaID == id {
			vc := vc
			for _, p := range r.s.planes {
				if p.VentaCreditoID == vc.ID {
					p := p
					p.Cuotas = r.s.cuotasDePlan(p.ID)
					vc.Plan = &p
				}
			}
			v.Credito = &vc
		}
	}
	return &v, nil
}

func (r *stubVentaRepo) FindDocumento(_ context.Context, id uuid.UUID) (*model.DocumentoVenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.documentos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r *stubVentaRepo) FindContadoByDocumento(_ context.Context, documentoID uuid.UUID) (*model.VentaContado, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, vc := range r.s.contados {
		if vc.DocumentoID == documentoID {
			return &vc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) UpdateDocumento(_ context.Context, d *model.DocumentoVenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.documentos[d.ID] = *d
	return nil
}

func (r *stubVentaRepo) ListDocumentosPendientes(_ context.Context, _ time.Time, _ int) ([]model.DocumentoVenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.DocumentoVenta
	for _, d := range r.s.documentos {
		if d.Estado == model.DocumentoPendiente {
			out = append(out, d)
		}
	}
	return out, nil
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Plan / cuotas / pagos ─────────────────────────────────────────────────────

type stubPlanRepo struct{ s *memStore }

func (r *stubPlanRepo) CreatePlanTx(_ context.Context, _ *gorm.DB, p *model.PlanPago) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&p.ID)
	stored := *p
	stored.Cuotas = nil
	r.s.planes[p.ID] = stored
	return nil
}

func (r *stubPlanRepo) CreateCuotaTx(_ context.Context, _ *gorm.DB, c *model.Cuota) error {
	if err := r.s.falla("CreateCuotaTx"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&c.ID)
	r.s.cuotas[c.ID] = *c
	return nil
}

func (r *stubPlanRepo) FindByIDTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.PlanPago, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.planes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

var _ repository.PlanPagoRepository = (*stubPlanRepo)(nil)

// cuotasDePlan must be called with mu held.
func (s *memStore) cuotasDePlan(planID uuid.UUID) []model.Cuota {
	var out []model.Cuota
	for _, c := range s.cuotas {
		if c.PlanID == planID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out
}

type stubCuotaRepo struct{ s *memStore }

func (r *stubCuotaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cuotas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *stubCuotaRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Cuota, error) {
	return r.FindByID(ctx, id)
}

func (r *stubCuotaRepo) UpdateSaldoTx(_ context.Context, _ *gorm.DB, c *model.Cuota) error {
	if err := r.s.falla("UpdateSaldoTx"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.cuotas[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.MontoPagado = c.MontoPagado
	stored.Estado = c.Estado
	stored.FechaPago = c.FechaPago
	r.s.cuotas[c.ID] = stored
	return nil
}

func (r *stubCuotaRepo) ListByLote(_ context.Context, loteID uuid.UUID) ([]model.Cuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Cuota
	for _, v := range r.s.ventas {
		if v.LoteID != loteID {
			continue
		}
		for _, vc := range r.s.creditos {
			if vc.VentaID != v.ID || vc.PlanPagoID == nil {
				continue
			}
			out = append(out, r.s.cuotasDePlan(*vc.PlanPagoID)...)
		}
	}
	return out, nil
}

var _ repository.CuotaRepository = (*stubCuotaRepo)(nil)

type stubPagoRepo struct{ s *memStore }

func (r *stubPagoRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.PagoCuota) error {
	if err := r.s.falla("CreatePagoTx"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	nuevoID(&p.ID)
	p.CreatedAt = time.Now()
	r.s.seq++
	r.s.pagoSeq[p.ID] = r.s.seq
	r.s.pagos[p.ID] = *p
	return nil
}

func (r *stubPagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PagoCuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pagos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *stubPagoRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.PagoCuota, error) {
	return r.FindByID(ctx, id)
}

func (r *stubPagoRepo) DeleteTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.pagos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.pagos, id)
	delete(r.s.pagoSeq, id)
	return nil
}

func (r *stubPagoRepo) UltimoPagoTx(_ context.Context, _ *gorm.DB, cuotaID uuid.UUID) (*model.PagoCuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ultimo *model.PagoCuota
	var maxSeq int64
	for id, p := range r.s.pagos {
		if p.CuotaID == cuotaID && r.s.pagoSeq[id] > maxSeq {
			p := p
			ultimo, maxSeq = &p, r.s.pagoSeq[id]
		}
	}
	if ultimo == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return ultimo, nil
}

func (r *stubPagoRepo) UpdateDatos(_ context.Context, p *model.PagoCuota) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.pagos[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.MetodoPago = p.MetodoPago
	stored.Comprobante = p.Comprobante
	r.s.pagos[p.ID] = stored
	return nil
}

func (r *stubPagoRepo) ListByCuota(_ context.Context, cuotaID uuid.UUID) ([]model.PagoCuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.PagoCuota
	for _, p := range r.s.pagos {
		if p.CuotaID == cuotaID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.pagoSeq[out[i].ID] < r.s.pagoSeq[out[j].ID] })
	return out, nil
}

func (r *stubPagoRepo) ListByVenta(_ context.Context, _ uuid.UUID) ([]model.PagoCuota, error) {
	return nil, nil
}

func (r *stubPagoRepo) ListRecientes(_ context.Context, limit int) ([]model.PagoCuota, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.PagoCuota, 0, len(r.s.pagos))
	for _, p := range r.s.pagos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return r.s.pagoSeq[out[i].ID] > r.s.pagoSeq[out[j].ID] })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPagoRepo) FindRecibo(_ context.Context, id uuid.UUID) (*repository.ReciboPago, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pagos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	rec := &repository.ReciboPago{Pago: p, Cuota: r.s.cuotas[p.CuotaID]}
	credito := r.s.creditos[r.s.planes[rec.Cuota.PlanID].VentaCreditoID]
	rec.Venta = r.s.ventas[credito.VentaID]
	return rec, nil
}

var _ repository.PagoRepository = (*stubPagoRepo)(nil)

// ── Side effects ──────────────────────────────────────────────────────────────

type stubDespachador struct {
	mu         sync.Mutex
	documentos []uuid.UUID
	recibos    []uuid.UUID
	err        error
}

func (d *stubDespachador) EncolarDocumentoVenta(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.documentos = append(d.documentos, id)
	return d.err
}

func (d *stubDespachador) EncolarReciboPago(_ context.Context, id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recibos = append(d.recibos, id)
	return d.err
}

var _ service.Despachador = (*stubDespachador)(nil)

// stubCache mirrors the generation scheme of the Redis cache: Invalidar bumps
// the generation and old entries stay in place, unreachable.
type stubCache struct {
	mu            sync.Mutex
	gen           int64
	entradas      map[string][]byte
	hits          int
	invalidations int
}

func newStubCache() *stubCache { return &stubCache{entradas: map[string][]byte{}} }

func (c *stubCache) Get(_ context.Context, key string, dst interface{}) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entradas[fmt.Sprintf("%d:%s", c.gen, key)]
	if !ok || json.Unmarshal(raw, dst) != nil {
		return c.gen, false
	}
	c.hits++
	return c.gen, true
}

func (c *stubCache) Set(_ context.Context, gen int64, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entradas[fmt.Sprintf("%d:%s", gen, key)] = raw
}

func (c *stubCache) Invalidar(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	c.gen++
}

var _ service.DashboardCache = (*stubCache)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

var hoyFijo = time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)

func relojFijo() service.Reloj {
	return service.Reloj{Loc: time.UTC, Now: func() time.Time { return hoyFijo }}
}

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(fmt.Sprintf("fecha %q: %v", s, err))
	}
	return t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memStore
	empleado model.Empleado
	cliente  model.Cliente
	lote     model.Lote
}

func newFixture() *fixture {
	s := newMemStore()
	f := &fixture{
		store:    s,
		empleado: model.Empleado{ID: uuid.New(), Nombre: "Ana", Email: "ana@lotes.bo", Rol: model.RolVendedor, Activo: true},
		cliente:  model.Cliente{ID: uuid.New(), Nombre: "Juan", Apellido: "Pérez", CINit: "4455667"},
		lote:     model.Lote{ID: uuid.New(), Nombre: "Lote 12-B", Precio: dec("25000"), Estado: model.LoteDisponible},
	}
	s.empleados[f.empleado.ID] = f.empleado
	s.clientes[f.cliente.ID] = f.cliente
	s.lotes[f.lote.ID] = f.lote
	return f
}

// nuevaCuota seeds a credit sale with a single installment of monto.
func (f *fixture) nuevaCuota(monto string) model.Cuota {
	s := f.store
	venta := model.Venta{ID: uuid.New(), TipoVenta: model.TipoCredito, LoteID: f.lote.ID, ClienteID: f.cliente.ID, EmpleadoID: f.empleado.ID}
	credito := model.VentaCredito{ID: uuid.New(), VentaID: venta.ID, SaldoPendiente: dec(monto)}
	plan := model.PlanPago{ID: uuid.New(), VentaCreditoID: credito.ID}
	credito.PlanPagoID = &plan.ID
	cuota := model.Cuota{
		ID:          uuid.New(),
		PlanID:      plan.ID,
		Numero:      1,
		MontoCuota:  dec(monto),
		FechaVenc:   fecha("2024-03-01"),
		MontoPagado: decimal.Zero,
		Estado:      model.CuotaPendiente,
	}
	s.ventas[venta.ID] = venta
	s.creditos[credito.ID] = credito
	s.planes[plan.ID] = plan
	s.cuotas[cuota.ID] = cuota
	return cuota
}

func (f *fixture) ventaSvc(desp service.Despachador, cache service.DashboardCache) service.VentaService {
	s := f.store
	return service.NewVentaService(
		&stubTx{s},
		&stubVentaRepo{s},
		&stubLoteRepo{s},
		&stubClienteRepo{s},
		&stubEmpleadoRepo{s},
		service.NewPlanBuilder(&stubPlanRepo{s}),
		desp,
		cache,
		relojFijo(),
	)
}

func (f *fixture) pagoSvc(desp service.Despachador, cache service.DashboardCache) service.PagoService {
	s := f.store
	return service.NewPagoService(
		&stubTx{s},
		&stubPagoRepo{s},
		&stubCuotaRepo{s},
		&stubPlanRepo{s},
		&stubVentaRepo{s},
		&stubEmpleadoRepo{s},
		desp,
		cache,
		relojFijo(),
	)
}

func (f *fixture) cuota(id uuid.UUID) model.Cuota {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.cuotas[id]
}

func (f *fixture) creditoDe(c model.Cuota) model.VentaCredito {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.creditos[f.store.planes[c.PlanID].VentaCreditoID]
}

func (f *fixture) sumaPagos(cuotaID uuid.UUID) decimal.Decimal {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	total := decimal.Zero
	for _, p := range f.store.pagos {
		if p.CuotaID == cuotaID {
			total = total.Add(p.Monto)
		}
	}
	return total
}
