package order

import "github.com/jhoicas/Atelier-api/internal/domain/entity"

// Tabla de transiciones de la máquina de estados de pedidos.
// CANCELLED es alcanzable desde cualquier estado no terminal;
// DELIVERED y CANCELLED son terminales.
var transitions = map[string][]string{
	entity.OrderStatusPENDING:    {entity.OrderStatusINPROGRESS, entity.OrderStatusCANCELLED},
	entity.OrderStatusINPROGRESS: {entity.OrderStatusCOMPLETED, entity.OrderStatusCANCELLED},
	entity.OrderStatusCOMPLETED:  {entity.OrderStatusDELIVERED, entity.OrderStatusCANCELLED},
	entity.OrderStatusDELIVERED:  {},
	entity.OrderStatusCANCELLED:  {},
}

// IsValidStatus indica si el valor pertenece al enum de estados.
func IsValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition indica si el cambio from -> to está permitido por la tabla.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func IsTerminal(s string) bool {
	return len(transitions[s]) == 0 && IsValidStatus(s)
}

// ConsumesMaterials indica si entrar al estado dispara el consumo de materiales.
// El consumo real es idempotente por pedido: la guarda es MaterialsConsumedAt,
// no el estado destino.
func ConsumesMaterials(s string) bool {
	switch s {
	case entity.OrderStatusINPROGRESS, entity.OrderStatusCOMPLETED, entity.OrderStatusDELIVERED:
		return true
	}
	return false
}
