package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/order"
)

// Tabla completa de transiciones: el flujo feliz avanza en línea, CANCELLED es
// alcanzable desde cualquier estado no terminal y los terminales no salen.
func TestCanTransition_Tabla(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.OrderStatusPENDING, entity.OrderStatusINPROGRESS, true},
		{entity.OrderStatusPENDING, entity.OrderStatusCANCELLED, true},
		{entity.OrderStatusPENDING, entity.OrderStatusCOMPLETED, false},
		{entity.OrderStatusPENDING, entity.OrderStatusDELIVERED, false},
		{entity.OrderStatusINPROGRESS, entity.OrderStatusCOMPLETED, true},
		{entity.OrderStatusINPROGRESS, entity.OrderStatusCANCELLED, true},
		{entity.OrderStatusINPROGRESS, entity.OrderStatusPENDING, false},
		{entity.OrderStatusINPROGRESS, entity.OrderStatusDELIVERED, false},
		{entity.OrderStatusCOMPLETED, entity.OrderStatusDELIVERED, true},
		{entity.OrderStatusCOMPLETED, entity.OrderStatusCANCELLED, true},
		{entity.OrderStatusCOMPLETED, entity.OrderStatusINPROGRESS, false},
		{entity.OrderStatusDELIVERED, entity.OrderStatusCANCELLED, false},
		{entity.OrderStatusDELIVERED, entity.OrderStatusPENDING, false},
		{entity.OrderStatusCANCELLED, entity.OrderStatusPENDING, false},
		{entity.OrderStatusCANCELLED, entity.OrderStatusINPROGRESS, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, order.CanTransition(c.from, c.to),
			"transición %s -> %s", c.from, c.to)
	}
}

func TestCanTransition_MismoEstadoNoEsTransicion(t *testing.T) {
	for _, s := range []string{
		entity.OrderStatusPENDING,
		entity.OrderStatusINPROGRESS,
		entity.OrderStatusCOMPLETED,
		entity.OrderStatusDELIVERED,
		entity.OrderStatusCANCELLED,
	} {
		assert.False(t, order.CanTransition(s, s), "%s -> %s no debe permitirse", s, s)
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, order.IsValidStatus(entity.OrderStatusPENDING))
	assert.True(t, order.IsValidStatus(entity.OrderStatusCANCELLED))
	assert.False(t, order.IsValidStatus("ARCHIVED"))
	assert.False(t, order.IsValidStatus(""))
	assert.False(t, order.IsValidStatus("pending"), "el enum es sensible a mayúsculas")
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, order.IsTerminal(entity.OrderStatusDELIVERED))
	assert.True(t, order.IsTerminal(entity.OrderStatusCANCELLED))
	assert.False(t, order.IsTerminal(entity.OrderStatusPENDING))
	assert.False(t, order.IsTerminal(entity.OrderStatusINPROGRESS))
	assert.False(t, order.IsTerminal("ARCHIVED"), "un valor fuera del enum no es terminal")
}

func TestConsumesMaterials(t *testing.T) {
	assert.True(t, order.ConsumesMaterials(entity.OrderStatusINPROGRESS))
	assert.True(t, order.ConsumesMaterials(entity.OrderStatusCOMPLETED))
	assert.True(t, order.ConsumesMaterials(entity.OrderStatusDELIVERED))
	assert.False(t, order.ConsumesMaterials(entity.OrderStatusPENDING))
	assert.False(t, order.ConsumesMaterials(entity.OrderStatusCANCELLED))
}
