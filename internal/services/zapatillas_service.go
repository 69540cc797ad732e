package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/wendarnation/quimerabackend/internal/dto"
	"github.com/wendarnation/quimerabackend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrZapatillaNotFound = errors.New("zapatilla not found")
	ErrSKUDuplicado      = errors.New("sku already registered")
)

const (
	defaultLimit = 15
	maxLimit     = 100
)

// columnasOrdenables are the sneaker columns accepted for database-level
// sorting. Derived price fields are handled separately.
var columnasOrdenables = map[string]bool{
	"marca":          true,
	"modelo":         true,
	"sku":            true,
	"categoria":      true,
	"activa":         true,
	"fecha_creacion": true,
}

// camposDerivados are per-sneaker aggregates over listings; they cannot be
// sorted at the database level and fall back to in-process page sorting.
var camposDerivados = map[string]bool{
	"precio_min":      true,
	"precio_max":      true,
	"precio_promedio": true,
}

type ZapatillasService struct {
	db *gorm.DB
}

func NewZapatillasService(db *gorm.DB) *ZapatillasService {
	return &ZapatillasService{db: db}
}

func (s *ZapatillasService) Create(req *dto.CreateZapatillaRequest) (*models.Zapatilla, error) {
	z := models.Zapatilla{
		ID:          uuid.New(),
		Marca:       req.Marca,
		Modelo:      req.Modelo,
		SKU:         req.SKU,
		Imagen:      req.Imagen,
		Descripcion: req.Descripcion,
		Categoria:   req.Categoria,
		// New sneakers always enter the catalog active, even when the
		// body says otherwise.
		Activa: true,
	}

	if err := s.db.Create(&z).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSKUDuplicado
		}
		return nil, fmt.Errorf("failed to create zapatilla: %w", err)
	}
	return &z, nil
}

func (s *ZapatillasService) FindAll(marca string, activa *bool) ([]models.Zapatilla, error) {
	query := s.db.Preload("Tiendas.Tienda")
	if marca != "" {
		expr, args := contiene("marca", marca).SQL()
		query = query.Where(expr, args...)
	}
	mostrarActivas := true
	if activa != nil {
		mostrarActivas = *activa
	}

	var zapatillas []models.Zapatilla
	if err := query.Where("activa = ?", mostrarActivas).Find(&zapatillas).Error; err != nil {
		return nil, err
	}
	return zapatillas, nil
}

func (s *ZapatillasService) FindOne(id uuid.UUID) (*models.Zapatilla, error) {
	var z models.Zapatilla
	err := s.db.
		Preload("Tiendas.Tienda").
		Preload("Tiendas.Tallas").
		Preload("Comentarios.Usuario").
		Preload("Valoraciones.Usuario").
		First(&z, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZapatillaNotFound
		}
		return nil, err
	}
	return &z, nil
}

// FindBySku is a case-insensitive substring match over SKUs.
func (s *ZapatillasService) FindBySku(sku string) ([]models.Zapatilla, error) {
	expr, args := contiene("sku", sku).SQL()
	var zapatillas []models.Zapatilla
	err := s.db.Preload("Tiendas.Tienda").Where(expr, args...).Find(&zapatillas).Error
	if err != nil {
		return nil, err
	}
	return zapatillas, nil
}

func (s *ZapatillasService) FindBySkuExacto(sku string) (*models.Zapatilla, error) {
	var z models.Zapatilla
	err := s.db.Preload("Tiendas.Tienda").First(&z, "sku = ?", sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZapatillaNotFound
		}
		return nil, err
	}
	return &z, nil
}

func (s *ZapatillasService) Update(id uuid.UUID, req *dto.UpdateZapatillaRequest) (*models.Zapatilla, error) {
	updates := map[string]interface{}{}
	for col, opt := range map[string]dto.OptionalString{
		"marca":       req.Marca,
		"modelo":      req.Modelo,
		"sku":         req.SKU,
		"imagen":      req.Imagen,
		"descripcion": req.Descripcion,
		"categoria":   req.Categoria,
	} {
		if opt.Set {
			updates[col] = opt.String()
		}
	}
	if req.Activa != nil {
		updates["activa"] = *req.Activa
	}

	return s.applyUpdates(id, updates)
}

// Remove hides the sneaker instead of deleting the row.
func (s *ZapatillasService) Remove(id uuid.UUID) (*models.Zapatilla, error) {
	return s.applyUpdates(id, map[string]interface{}{"activa": false})
}

func (s *ZapatillasService) applyUpdates(id uuid.UUID, updates map[string]interface{}) (*models.Zapatilla, error) {
	var z models.Zapatilla
	if err := s.db.First(&z, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZapatillaNotFound
		}
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.db.Model(&z).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrSKUDuplicado
			}
			return nil, err
		}
	}
	return &z, nil
}

// Search runs the filtered, paginated catalog view. Filters compile to a
// single expression tree; the count is taken pre-pagination over the same
// tree. Sorting by a derived price field reorders only the fetched page,
// not the full result set.
func (s *ZapatillasService) Search(f *dto.FilterZapatillas) (*dto.ZapatillasPage, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := (page - 1) * limit

	expr, args := BuildFiltroZapatillas(f).SQL()

	var total int64
	if err := s.db.Model(&models.Zapatilla{}).Where(expr, args...).Count(&total).Error; err != nil {
		return nil, err
	}

	query := s.db.Preload("Tiendas.Tienda").Where(expr, args...)

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "fecha_creacion"
	}
	sortDesc := !strings.EqualFold(f.SortOrder, "asc")
	switch {
	case columnasOrdenables[sortBy]:
		dir := "ASC"
		if sortDesc {
			dir = "DESC"
		}
		query = query.Order(sortBy + " " + dir)
	case camposDerivados[sortBy]:
		// Derived prices are computed per row after the fetch; the page
		// is pulled unsorted and reordered in-process below.
	default:
		query = query.Order("fecha_creacion DESC")
	}

	var zapatillas []models.Zapatilla
	if err := query.Limit(limit).Offset(offset).Find(&zapatillas).Error; err != nil {
		return nil, err
	}

	data := make([]dto.ZapatillaConPrecios, len(zapatillas))
	for i := range zapatillas {
		data[i] = conPrecios(&zapatillas[i])
	}

	if camposDerivados[sortBy] {
		ordenarPorDerivado(data, sortBy, sortDesc)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &dto.ZapatillasPage{
		Data: data,
		Pagination: dto.Pagination{
			Total:       total,
			Page:        page,
			Limit:       limit,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}, nil
}

// conPrecios derives min/max/mean price and the available-listing count.
// Only available listings participate; with none, all aggregates stay nil.
func conPrecios(z *models.Zapatilla) dto.ZapatillaConPrecios {
	out := dto.ZapatillaConPrecios{Zapatilla: *z}

	var precios []float64
	for _, zt := range z.Tiendas {
		if zt.Disponible {
			precios = append(precios, zt.Precio)
		}
	}
	if len(precios) == 0 {
		return out
	}

	min, max, sum := precios[0], precios[0], 0.0
	for _, p := range precios {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
		sum += p
	}
	promedio := sum / float64(len(precios))
	count := len(precios)

	out.PrecioMin = &min
	out.PrecioMax = &max
	out.PrecioPromedio = &promedio
	out.TiendasDisponibles = &count
	return out
}

func ordenarPorDerivado(data []dto.ZapatillaConPrecios, campo string, desc bool) {
	valor := func(z *dto.ZapatillaConPrecios) *float64 {
		switch campo {
		case "precio_min":
			return z.PrecioMin
		case "precio_max":
			return z.PrecioMax
		default:
			return z.PrecioPromedio
		}
	}
	sort.SliceStable(data, func(i, j int) bool {
		vi, vj := valor(&data[i]), valor(&data[j])
		// Rows without any available listing sort last.
		if vi == nil {
			return false
		}
		if vj == nil {
			return true
		}
		if desc {
			return *vi > *vj
		}
		return *vi < *vj
	})
}

// FindTiendas lists the stores carrying the sneaker, each with its offer.
func (s *ZapatillasService) FindTiendas(id uuid.UUID) ([]dto.TiendaConPrecio, error) {
	z, err := s.findConListados(id)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TiendaConPrecio, 0, len(z.Tiendas))
	for _, zt := range z.Tiendas {
		if zt.Tienda == nil {
			continue
		}
		result = append(result, dto.TiendaConPrecio{
			Tienda:      *zt.Tienda,
			Precio:      zt.Precio,
			Disponible:  zt.Disponible,
			URLProducto: zt.URLProducto,
		})
	}
	return result, nil
}

// FindTallas flattens every size across the sneaker's listings.
func (s *ZapatillasService) FindTallas(id uuid.UUID) ([]dto.TallaDetalle, error) {
	var z models.Zapatilla
	err := s.db.Preload("Tiendas.Tienda").Preload("Tiendas.Tallas").First(&z, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZapatillaNotFound
		}
		return nil, err
	}

	result := []dto.TallaDetalle{}
	for _, zt := range z.Tiendas {
		if zt.Tienda == nil {
			continue
		}
		for _, t := range zt.Tallas {
			result = append(result, dto.TallaDetalle{
				ID:                 t.ID,
				Talla:              t.Talla,
				Disponible:         t.Disponible,
				TiendaNombre:       zt.Tienda.Nombre,
				TiendaID:           zt.Tienda.ID,
				Precio:             zt.Precio,
				FechaActualizacion: t.FechaActualizacion,
			})
		}
	}
	return result, nil
}

func (s *ZapatillasService) FindValoraciones(id uuid.UUID) (*dto.ValoracionesConStats, error) {
	var z models.Zapatilla
	err := s.db.Preload("Valoraciones.Usuario").First(&z, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZapatillaNotFound
		}
		return nil, err
	}

	total := len(z.Valoraciones)
	media := 0.0
	if total > 0 {
		sum := 0
		for _, v := range z.Valoraciones {
			sum += v.Puntuacion
		}
		media = float64(sum) / float64(total)
	}

	return &dto.ValoracionesConStats{
		Valoraciones: z.Valoraciones,
		Stats:        dto.ValoracionesStats{Total: total, Media: media},
	}, nil
}

func (s *ZapatillasService) FindComentarios(id uuid.UUID) ([]models.Comentario, error) {
	if err := s.exists(id); err != nil {
		return nil, err
	}
	var comentarios []models.Comentario
	err := s.db.Preload("Usuario").
		Where("zapatilla_id = ?", id).
		Order("fecha DESC").
		Find(&comentarios).Error
	if err != nil {
		return nil, err
	}
	return comentarios, nil
}

func (s *ZapatillasService) findConListados(id uuid.UUID) (*models.Zapatilla, error) {
	var z models.Zapatilla
	if err := s.db.Preload("Tiendas.Tienda").First(&z, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZapatillaNotFound
		}
		return nil, err
	}
	return &z, nil
}

func (s *ZapatillasService) exists(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Zapatilla{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrZapatillaNotFound
	}
	return nil
}
