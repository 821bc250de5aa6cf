package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// DefaultPrefix prefijo por defecto de los números de pedido.
const DefaultPrefix = "ART"

// NumberingService asigna números de pedido únicos y legibles con formato
// {prefijo}-{YYYY-MM-DD}-{seq:3}. El consecutivo sale de un contador por prefijo
// y día incrementado atómicamente en la BD, de modo que dos creaciones
// simultáneas nunca computan el mismo número (el patrón "leer el máximo y sumar
// uno" queda descartado por inseguro bajo concurrencia).
type NumberingService struct {
	counterRepo   repository.OrderCounterRepository
	orderRepo     repository.OrderRepository
	defaultPrefix string
	now           func() time.Time
}

// NewNumberingService construye el servicio. now permite fijar el reloj en tests.
func NewNumberingService(counterRepo repository.OrderCounterRepository, orderRepo repository.OrderRepository) *NumberingService {
	return &NumberingService{counterRepo: counterRepo, orderRepo: orderRepo, defaultPrefix: DefaultPrefix, now: time.Now}
}

// SetDefaultPrefix cambia el prefijo usado cuando el request no trae uno
// (viene de ORDER_NUMBER_PREFIX en configuración).
func (s *NumberingService) SetDefaultPrefix(prefix string) {
	if prefix != "" {
		s.defaultPrefix = prefix
	}
}

// NextNumber devuelve el siguiente número para el prefijo (vacío = el configurado) y el día actual.
func (s *NumberingService) NextNumber(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		prefix = s.defaultPrefix
	}
	day := s.now().Format("2006-01-02")
	seq, err := s.counterRepo.Next(prefix, day)
	if err != nil {
		return "", fmt.Errorf("siguiente consecutivo: %w", err)
	}
	return fmt.Sprintf("%s-%s-%03d", prefix, day, seq), nil
}

// IsUnique verifica que no exista un pedido con ese número exacto.
func (s *NumberingService) IsUnique(ctx context.Context, number string) (bool, error) {
	existing, err := s.orderRepo.GetByNumber(number)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}
