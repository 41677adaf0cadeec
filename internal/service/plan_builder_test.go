package service_test

import (
	"context"
	"testing"

	"github.com/HarryYanarico/my-proyect/internal/apperror"
	"github.com/HarryYanarico/my-proyect/internal/model"
	"github.com/HarryYanarico/my-proyect/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func planSpec() service.PlanSpec {
	return service.PlanSpec{
		CuotaInicial: dec("1000"),
		FechaInicial: fecha("2024-03-01"),
		FechaFinal:   fecha("2024-04-01"),
		PlazoAnios:   1,
		MontoFinal:   dec("4000"),
		Cuotas: []service.CuotaSpec{
			{Monto: dec("2000"), FechaVenc: fecha("2024-03-01")},
			{Monto: dec("2000"), FechaVenc: fecha("2024-04-01")},
		},
	}
}

func TestPlanBuilder_Construir(t *testing.T) {
	s := newMemStore()
	b := service.NewPlanBuilder(&stubPlanRepo{s})
	creditoID := uuid.New()

	plan, err := b.Construir(context.Background(), &gorm.DB{}, creditoID, planSpec())
	require.NoError(t, err)
	assert.Equal(t, creditoID, plan.VentaCreditoID)
	require.Len(t, plan.Cuotas, 2)
	for i, c := range plan.Cuotas {
		assert.Equal(t, i+1, c.Numero)
		assert.Equal(t, plan.ID, c.PlanID)
		assert.Equal(t, model.CuotaPendiente, c.Estado)
		assert.True(t, c.MontoPagado.IsZero())
		assert.NoError(t, c.Validar())
	}
	assert.Len(t, s.cuotas, 2)
	assert.Len(t, s.planes, 1)
}

func TestPlanBuilder_RequiereTransaccion(t *testing.T) {
	s := newMemStore()
	b := service.NewPlanBuilder(&stubPlanRepo{s})

	_, err := b.Construir(context.Background(), nil, uuid.New(), planSpec())
	require.Error(t, err)
	assert.Empty(t, s.planes)
}

func TestPlanSpec_Validar(t *testing.T) {
	cases := map[string]func(*service.PlanSpec){
		"sin cuotas":                 func(p *service.PlanSpec) { p.Cuotas = nil },
		"monto negativo":             func(p *service.PlanSpec) { p.Cuotas[0].Monto = dec("-1") },
		"sin vencimiento":            func(p *service.PlanSpec) { p.Cuotas[1].FechaVenc = fecha("0001-01-01") },
		"fechas invertidas":          func(p *service.PlanSpec) { p.FechaFinal = fecha("2024-01-01") },
		"plazo negativo":             func(p *service.PlanSpec) { p.PlazoAnios = -1 },
		"cuota bajo un centavo":      func(p *service.PlanSpec) { p.Cuotas[0].Monto = dec("0.004") },
		"cuota con tres decimales":   func(p *service.PlanSpec) { p.Cuotas[1].Monto = dec("2000.006") },
		"inicial con tres decimales": func(p *service.PlanSpec) { p.CuotaInicial = dec("1000.001") },
		"final con tres decimales":   func(p *service.PlanSpec) { p.MontoFinal = dec("4000.009") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			spec := planSpec()
			mutate(&spec)
			assert.ErrorIs(t, spec.Validar(), apperror.ErrValidation)
		})
	}
	assert.NoError(t, planSpec().Validar())
}
