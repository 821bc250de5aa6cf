package entity

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidPicture indica campos de variante incompletos o inconsistentes.
var ErrInvalidPicture = errors.New("cuadro inválido: campos de la variante incompletos")

// Tipos de cuadro. Cada variante exige campos propios (unión discriminada):
// READY_MADE requiere TemplateID (plantilla del catálogo),
// CUSTOM_PHOTO requiere PhotoURL (foto aportada por el cliente).
const (
	PictureKindReadyMade   = "READY_MADE"
	PictureKindCustomPhoto = "CUSTOM_PHOTO"
)

// Picture representa un cuadro, del catálogo (OrderID vacío) o adjunto a un pedido.
// CostPrice lo escribe el motor de costos; Price el motor de precios.
type Picture struct {
	ID         string
	OrderID    string // vacío = cuadro de catálogo
	Name       string
	Kind       string // READY_MADE | CUSTOM_PHOTO
	TemplateID string // obligatorio si Kind == READY_MADE
	PhotoURL   string // obligatorio si Kind == CUSTOM_PHOTO
	Size       string // ej. "30x40"
	CostPrice  decimal.Decimal
	Price      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate verifica los campos obligatorios según la variante.
func (p *Picture) Validate() error {
	if p.Name == "" || p.Size == "" {
		return ErrInvalidPicture
	}
	switch p.Kind {
	case PictureKindReadyMade:
		if p.TemplateID == "" {
			return ErrInvalidPicture
		}
	case PictureKindCustomPhoto:
		if p.PhotoURL == "" {
			return ErrInvalidPicture
		}
	default:
		return ErrInvalidPicture
	}
	return nil
}

// PictureMaterial es una línea de la lista de materiales (BOM) de un cuadro:
// material y cantidad requerida por unidad.
type PictureMaterial struct {
	PictureID  string
	MaterialID string
	Quantity   decimal.Decimal // cantidad por unidad, > 0
}

// BOMTemplate es una línea estándar de materiales por variante y tamaño de cuadro.
// Se usa para materializar el BOM de cuadros creados sin uno (p. ej. foto custom).
type BOMTemplate struct {
	ID         string
	Kind       string // READY_MADE | CUSTOM_PHOTO
	Size       string
	MaterialID string
	Quantity   decimal.Decimal
}
