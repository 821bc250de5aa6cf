package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveStockRequest body para POST /api/stock/receive.
type ReceiveStockRequest struct {
	MaterialID string           `json:"material_id"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	Reason     string           `json:"reason"`
	RefID      string           `json:"ref_id,omitempty"`
	RefKind    string           `json:"ref_kind,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// ConsumeStockRequest body para POST /api/stock/consume.
type ConsumeStockRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	RefID      string          `json:"ref_id,omitempty"`
	RefKind    string          `json:"ref_kind,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// AdjustStockRequest body para POST /api/stock/adjust.
type AdjustStockRequest struct {
	MaterialID  string          `json:"material_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Reason      string          `json:"reason"`
	Notes       string          `json:"notes,omitempty"`
}

// StockOperationResponse resultado de una mutación del inventario.
type StockOperationResponse struct {
	MaterialID   string           `json:"material_id"`
	NewQuantity  decimal.Decimal  `json:"new_quantity"`
	OldQuantity  *decimal.Decimal `json:"old_quantity,omitempty"`
	Delta        *decimal.Decimal `json:"delta,omitempty"`
	WentNegative bool             `json:"went_negative,omitempty"`
}

// MovementDTO movimiento del libro para listados.
type MovementDTO struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Delta      decimal.Decimal `json:"delta"`
	Reason     string          `json:"reason"`
	RefID      string          `json:"ref_id,omitempty"`
	RefKind    string          `json:"ref_kind,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// LedgerStatsResponse agregados del inventario.
type LedgerStatsResponse struct {
	MaterialCount   int             `json:"material_count"`
	LowStockCount   int             `json:"low_stock_count"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	RecentMovements int             `json:"movements_last_7d"`
}
