package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Atelier-api/internal/domain"
	"github.com/jhoicas/Atelier-api/internal/domain/entity"
	"github.com/jhoicas/Atelier-api/internal/domain/repository"
)

// Verificación de interfaces.
var (
	_ repository.MaterialRepository         = (*MaterialRepo)(nil)
	_ repository.StockRepository            = (*StockRepo)(nil)
	_ repository.MaterialMovementRepository = (*MovementRepo)(nil)
	_ repository.StatsRepository            = (*StatsRepo)(nil)
	_ repository.PictureRepository          = (*PictureRepo)(nil)
	_ repository.PictureMaterialRepository  = (*PictureMaterialRepo)(nil)
	_ repository.BOMTemplateRepository      = (*BOMTemplateRepo)(nil)
	_ repository.OrderRepository            = (*OrderRepo)(nil)
	_ repository.OrderConsumptionRepository = (*ConsumptionRepo)(nil)
	_ repository.OrderCounterRepository     = (*CounterRepo)(nil)
)

// base controla el bloqueo: los repos de pool bloquean por llamada; los repos
// atados a una transacción no (el TxRunner ya sostiene el mutex).
type base struct {
	s    *Store
	inTx bool
}

func (b base) lock() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

// MaterialRepo adaptador en memoria de MaterialRepository.
type MaterialRepo struct{ base }

// NewMaterialRepository construye el adaptador sobre el store.
func NewMaterialRepository(s *Store) *MaterialRepo { return &MaterialRepo{base{s: s}} }

func (r *MaterialRepo) Create(m *entity.Material) error {
	defer r.lock()()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.materials[m.ID] = *m
	return nil
}

func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	defer r.lock()()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MaterialRepo) UpdateCost(materialID string, cost decimal.Decimal) error {
	defer r.lock()()
	m, ok := r.s.materials[materialID]
	if !ok {
		return domain.ErrNotFound
	}
	m.Cost = cost
	m.UpdatedAt = time.Now()
	r.s.materials[materialID] = m
	return nil
}

func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	defer r.lock()()
	var list []*entity.Material
	for id := range r.s.materials {
		m := r.s.materials[id]
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// StockRepo adaptador en memoria de StockRepository.
type StockRepo struct{ base }

// NewStockRepository construye el adaptador sobre el store.
func NewStockRepository(s *Store) *StockRepo { return &StockRepo{base{s: s}} }

func (r *StockRepo) Get(materialID string) (*entity.Stock, error) {
	defer r.lock()()
	return r.get(materialID), nil
}

// GetForUpdate en memoria equivale a Get: el mutex del store ya serializa la tx.
func (r *StockRepo) GetForUpdate(materialID string) (*entity.Stock, error) {
	defer r.lock()()
	return r.get(materialID), nil
}

func (r *StockRepo) get(materialID string) *entity.Stock {
	st, ok := r.s.stock[materialID]
	if !ok {
		return &entity.Stock{MaterialID: materialID, Quantity: decimal.Zero}
	}
	return &st
}

func (r *StockRepo) Upsert(stock *entity.Stock) error {
	defer r.lock()()
	r.s.stock[stock.MaterialID] = *stock
	return nil
}

// MovementRepo adaptador en memoria del libro de movimientos.
type MovementRepo struct{ base }

// NewMovementRepository construye el adaptador sobre el store.
func NewMovementRepository(s *Store) *MovementRepo { return &MovementRepo{base{s: s}} }

func (r *MovementRepo) Create(m *entity.MaterialMovement) error {
	defer r.lock()()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *MovementRepo) List(materialID string, limit, offset int) ([]*entity.MaterialMovement, error) {
	defer r.lock()()
	var list []*entity.MaterialMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if materialID != "" && m.MaterialID != materialID {
			continue
		}
		list = append(list, &m)
	}
	return page(list, limit, offset), nil
}

// StatsRepo agregados del inventario en memoria.
type StatsRepo struct{ base }

// NewStatsRepository construye el adaptador sobre el store.
func NewStatsRepository(s *Store) *StatsRepo { return &StatsRepo{base{s: s}} }

func (r *StatsRepo) LedgerStats(window time.Duration) (*repository.LedgerStats, error) {
	defer r.lock()()
	stats := &repository.LedgerStats{TotalQuantity: decimal.Zero}
	for _, m := range r.s.materials {
		if m.Active {
			stats.MaterialCount++
		}
	}
	for materialID, st := range r.s.stock {
		stats.TotalQuantity = stats.TotalQuantity.Add(st.Quantity)
		m, ok := r.s.materials[materialID]
		if ok && m.MinThreshold.IsPositive() && st.Quantity.LessThan(m.MinThreshold) {
			stats.LowStockCount++
		}
	}
	since := time.Now().Add(-window)
	for _, mov := range r.s.movements {
		if mov.CreatedAt.After(since) {
			stats.RecentMovements++
		}
	}
	return stats, nil
}

// PictureRepo adaptador en memoria de PictureRepository.
type PictureRepo struct{ base }

// NewPictureRepository construye el adaptador sobre el store.
func NewPictureRepository(s *Store) *PictureRepo { return &PictureRepo{base{s: s}} }

func (r *PictureRepo) Create(p *entity.Picture) error {
	defer r.lock()()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.s.pictures[p.ID] = *p
	return nil
}

func (r *PictureRepo) GetByID(id string) (*entity.Picture, error) {
	defer r.lock()()
	p, ok := r.s.pictures[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PictureRepo) ListByOrder(orderID string) ([]*entity.Picture, error) {
	defer r.lock()()
	var list []*entity.Picture
	for id := range r.s.pictures {
		p := r.s.pictures[id]
		if p.OrderID == orderID {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *PictureRepo) List(filter repository.PictureFilter, limit, offset int) ([]*entity.Picture, error) {
	defer r.lock()()
	var list []*entity.Picture
	for id := range r.s.pictures {
		p := r.s.pictures[id]
		if filter.OrderID != "" && p.OrderID != filter.OrderID {
			continue
		}
		if filter.Kind != "" && p.Kind != filter.Kind {
			continue
		}
		if filter.OnlyCatalog && p.OrderID != "" {
			continue
		}
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *PictureRepo) UpdateCostPrice(pictureID string, costPrice decimal.Decimal) error {
	defer r.lock()()
	p, ok := r.s.pictures[pictureID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CostPrice = costPrice
	p.UpdatedAt = time.Now()
	r.s.pictures[pictureID] = p
	return nil
}

func (r *PictureRepo) UpdatePrice(pictureID string, price decimal.Decimal) error {
	defer r.lock()()
	p, ok := r.s.pictures[pictureID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Price = price
	p.UpdatedAt = time.Now()
	r.s.pictures[pictureID] = p
	return nil
}

// PictureMaterialRepo adaptador en memoria de las líneas de BOM.
type PictureMaterialRepo struct{ base }

// NewPictureMaterialRepository construye el adaptador sobre el store.
func NewPictureMaterialRepository(s *Store) *PictureMaterialRepo {
	return &PictureMaterialRepo{base{s: s}}
}

func (r *PictureMaterialRepo) Create(line *entity.PictureMaterial) error {
	defer r.lock()()
	lines := r.s.pictureMaterials[line.PictureID]
	for i, l := range lines {
		if l.MaterialID == line.MaterialID {
			lines[i].Quantity = line.Quantity
			return nil
		}
	}
	r.s.pictureMaterials[line.PictureID] = append(lines, *line)
	return nil
}

func (r *PictureMaterialRepo) ListByPicture(pictureID string) ([]*entity.PictureMaterial, error) {
	defer r.lock()()
	lines := r.s.pictureMaterials[pictureID]
	list := make([]*entity.PictureMaterial, 0, len(lines))
	for i := range lines {
		l := lines[i]
		list = append(list, &l)
	}
	return list, nil
}

// ReplaceBOM reemplaza el BOM completo de un cuadro (helper de tests: simula la
// edición del BOM por un colaborador después del consumo).
func (r *PictureMaterialRepo) ReplaceBOM(pictureID string, lines []entity.PictureMaterial) {
	defer r.lock()()
	r.s.pictureMaterials[pictureID] = append([]entity.PictureMaterial(nil), lines...)
}

// BOMTemplateRepo adaptador en memoria de las plantillas estándar.
type BOMTemplateRepo struct{ base }

// NewBOMTemplateRepository construye el adaptador sobre el store.
func NewBOMTemplateRepository(s *Store) *BOMTemplateRepo { return &BOMTemplateRepo{base{s: s}} }

// Add registra una línea de plantilla (seed de tests).
func (r *BOMTemplateRepo) Add(t entity.BOMTemplate) {
	defer r.lock()()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	r.s.bomTemplates = append(r.s.bomTemplates, t)
}

func (r *BOMTemplateRepo) ListFor(kind, size string) ([]*entity.BOMTemplate, error) {
	defer r.lock()()
	var list []*entity.BOMTemplate
	for i := range r.s.bomTemplates {
		t := r.s.bomTemplates[i]
		if t.Kind == kind && t.Size == size {
			list = append(list, &t)
		}
	}
	return list, nil
}

// OrderRepo adaptador en memoria de OrderRepository.
type OrderRepo struct{ base }

// NewOrderRepository construye el adaptador sobre el store.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{base{s: s}} }

func (r *OrderRepo) Create(o *entity.Order) error {
	defer r.lock()()
	if _, exists := r.s.ordersByNumber[o.Number]; exists {
		return domain.ErrDuplicate
	}
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	r.s.orders[o.ID] = *o
	r.s.ordersByNumber[o.Number] = o.ID
	return nil
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	defer r.lock()()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *OrderRepo) GetByNumber(number string) (*entity.Order, error) {
	defer r.lock()()
	id, ok := r.s.ordersByNumber[number]
	if !ok {
		return nil, nil
	}
	o := r.s.orders[id]
	return &o, nil
}

func (r *OrderRepo) UpdateStatus(orderID, status string, materialsConsumedAt *time.Time) error {
	defer r.lock()()
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.MaterialsConsumedAt = materialsConsumedAt
	o.UpdatedAt = time.Now()
	r.s.orders[orderID] = o
	return nil
}

// ConsumptionRepo adaptador en memoria del consumo registrado por pedido.
type ConsumptionRepo struct{ base }

// NewConsumptionRepository construye el adaptador sobre el store.
func NewConsumptionRepository(s *Store) *ConsumptionRepo { return &ConsumptionRepo{base{s: s}} }

// Create rechaza con ErrDuplicate una segunda fila para el mismo
// (pedido, cuadro, material), igual que el índice único en PostgreSQL.
func (r *ConsumptionRepo) Create(c *entity.OrderConsumption) error {
	defer r.lock()()
	for _, existing := range r.s.consumptions {
		if existing.OrderID == c.OrderID && existing.PictureID == c.PictureID &&
			existing.MaterialID == c.MaterialID {
			return domain.ErrDuplicate
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	r.s.consumptions[c.ID] = *c
	return nil
}

func (r *ConsumptionRepo) ListByOrder(orderID string) ([]*entity.OrderConsumption, error) {
	defer r.lock()()
	var list []*entity.OrderConsumption
	for id := range r.s.consumptions {
		c := r.s.consumptions[id]
		if c.OrderID == orderID {
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *ConsumptionRepo) ExistsForPicture(orderID, pictureID string) (bool, error) {
	defer r.lock()()
	for _, c := range r.s.consumptions {
		if c.OrderID == orderID && c.PictureID == pictureID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ConsumptionRepo) MarkReversed(id string, at time.Time) error {
	defer r.lock()()
	c, ok := r.s.consumptions[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.ReversedAt = &at
	r.s.consumptions[id] = c
	return nil
}

// CounterRepo contador atómico por prefijo y día (equivalente en memoria del UPSERT).
type CounterRepo struct{ base }

// NewCounterRepository construye el adaptador sobre el store.
func NewCounterRepository(s *Store) *CounterRepo { return &CounterRepo{base{s: s}} }

func (r *CounterRepo) Next(prefix, day string) (int, error) {
	defer r.lock()()
	key := prefix + "|" + day
	r.s.counters[key]++
	return r.s.counters[key], nil
}

func page[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
