package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wendarnation/quimerabackend/internal/dto"
)

func TestBuildFiltroZapatillasDefault(t *testing.T) {
	sql, args := BuildFiltroZapatillas(&dto.FilterZapatillas{}).SQL()

	assert.Equal(t, "(activa = ?)", sql)
	assert.Equal(t, []interface{}{true}, args)
}

func TestBuildFiltroZapatillasActivaExplicit(t *testing.T) {
	f := &dto.FilterZapatillas{Activa: boolPtr(false)}
	sql, args := BuildFiltroZapatillas(f).SQL()

	assert.Equal(t, "(activa = ?)", sql)
	assert.Equal(t, []interface{}{false}, args)
}

func TestBuildFiltroZapatillasFieldFilters(t *testing.T) {
	f := &dto.FilterZapatillas{Marca: "Nike", Categoria: "Running"}
	sql, args := BuildFiltroZapatillas(f).SQL()

	assert.Contains(t, sql, "LOWER(marca) LIKE ?")
	assert.Contains(t, sql, "LOWER(categoria) LIKE ?")
	assert.Contains(t, args, "%nike%")
	assert.Contains(t, args, "%running%")
}

func TestBuildFiltroZapatillasSearchTokens(t *testing.T) {
	f := &dto.FilterZapatillas{Search: "air max"}
	sql, args := BuildFiltroZapatillas(f).SQL()

	// Two tokens, each an OR group over the five searchable columns.
	assert.Equal(t, 2, strings.Count(sql, "LOWER(marca) LIKE ?"))
	assert.Equal(t, 2, strings.Count(sql, "LOWER(descripcion) LIKE ?"))
	assert.Contains(t, args, "%air%")
	assert.Contains(t, args, "%max%")
	// Token groups are ANDed together.
	assert.Contains(t, sql, ") AND (")
}

func TestBuildFiltroZapatillasPrecioRange(t *testing.T) {
	f := &dto.FilterZapatillas{PrecioMin: floatPtr(50), PrecioMax: floatPtr(150)}
	sql, args := BuildFiltroZapatillas(f).SQL()

	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM zapatillas_tienda")
	assert.Contains(t, sql, "zapatillas_tienda.precio >= ?")
	assert.Contains(t, sql, "zapatillas_tienda.precio <= ?")
	assert.Contains(t, args, 50.0)
	assert.Contains(t, args, 150.0)
}

func TestBuildFiltroZapatillasPrecioOpenEnded(t *testing.T) {
	f := &dto.FilterZapatillas{PrecioMin: floatPtr(80)}
	sql, _ := BuildFiltroZapatillas(f).SQL()

	assert.Contains(t, sql, "zapatillas_tienda.precio >= ?")
	assert.NotContains(t, sql, "zapatillas_tienda.precio <= ?")
}

func TestFiltroNesting(t *testing.T) {
	f := And{
		Cond{Expr: "a = ?", Args: []interface{}{1}},
		Or{
			Cond{Expr: "b = ?", Args: []interface{}{2}},
			Cond{Expr: "c = ?", Args: []interface{}{3}},
		},
	}
	sql, args := f.SQL()

	assert.Equal(t, "(a = ?) AND ((b = ?) OR (c = ?))", sql)
	assert.Equal(t, []interface{}{1, 2, 3}, args)
}

func TestFiltroSkipsEmptyNodes(t *testing.T) {
	f := And{
		Cond{},
		Cond{Expr: "a = ?", Args: []interface{}{1}},
	}
	sql, args := f.SQL()

	assert.Equal(t, "(a = ?)", sql)
	assert.Len(t, args, 1)
}
