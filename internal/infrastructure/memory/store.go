package memory

import (
	"sync"

	"github.com/jhoicas/Atelier-api/internal/domain/entity"
)

// Store almacenamiento en memoria para tests y desarrollo sin PostgreSQL.
// Un único mutex serializa las transacciones: equivale al bloqueo de fila del
// adaptador real a efectos de atomicidad. Las transacciones toman un snapshot y
// lo restauran ante error (rollback).
type Store struct {
	mu sync.Mutex

	materials        map[string]entity.Material
	stock            map[string]entity.Stock
	movements        []entity.MaterialMovement
	pictures         map[string]entity.Picture
	pictureMaterials map[string][]entity.PictureMaterial
	bomTemplates     []entity.BOMTemplate
	orders           map[string]entity.Order
	ordersByNumber   map[string]string
	consumptions     map[string]entity.OrderConsumption
	counters         map[string]int
}

// NewStore construye un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		materials:        map[string]entity.Material{},
		stock:            map[string]entity.Stock{},
		pictures:         map[string]entity.Picture{},
		pictureMaterials: map[string][]entity.PictureMaterial{},
		orders:           map[string]entity.Order{},
		ordersByNumber:   map[string]string{},
		consumptions:     map[string]entity.OrderConsumption{},
		counters:         map[string]int{},
	}
}

// snapshot copia el estado mutable para poder hacer rollback.
type snapshot struct {
	materials        map[string]entity.Material
	stock            map[string]entity.Stock
	movements        []entity.MaterialMovement
	pictures         map[string]entity.Picture
	pictureMaterials map[string][]entity.PictureMaterial
	orders           map[string]entity.Order
	ordersByNumber   map[string]string
	consumptions     map[string]entity.OrderConsumption
	counters         map[string]int
}

func (s *Store) takeSnapshot() snapshot {
	return snapshot{
		materials:        copyMap(s.materials),
		stock:            copyMap(s.stock),
		movements:        append([]entity.MaterialMovement(nil), s.movements...),
		pictures:         copyMap(s.pictures),
		pictureMaterials: copySliceMap(s.pictureMaterials),
		orders:           copyMap(s.orders),
		ordersByNumber:   copyMap(s.ordersByNumber),
		consumptions:     copyMap(s.consumptions),
		counters:         copyMap(s.counters),
	}
}

func (s *Store) restore(snap snapshot) {
	s.materials = snap.materials
	s.stock = snap.stock
	s.movements = snap.movements
	s.pictures = snap.pictures
	s.pictureMaterials = snap.pictureMaterials
	s.orders = snap.orders
	s.ordersByNumber = snap.ordersByNumber
	s.consumptions = snap.consumptions
	s.counters = snap.counters
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySliceMap[K comparable, V any](m map[K][]V) map[K][]V {
	out := make(map[K][]V, len(m))
	for k, v := range m {
		out[k] = append([]V(nil), v...)
	}
	return out
}
