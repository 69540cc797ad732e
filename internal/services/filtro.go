package services

import (
	"strings"

	"github.com/wendarnation/quimerabackend/internal/dto"
)

// The catalog search is compiled to a single filter-expression tree and
// translated once to SQL, instead of mutating a query object condition by
// condition. And/Or nodes nest arbitrarily; Cond leaves carry a fragment
// plus its args.

type Filtro interface {
	SQL() (string, []interface{})
}

type Cond struct {
	Expr string
	Args []interface{}
}

func (c Cond) SQL() (string, []interface{}) { return c.Expr, c.Args }

type And []Filtro

func (a And) SQL() (string, []interface{}) { return join(a, " AND ") }

type Or []Filtro

func (o Or) SQL() (string, []interface{}) { return join(o, " OR ") }

func join(nodes []Filtro, sep string) (string, []interface{}) {
	parts := make([]string, 0, len(nodes))
	var args []interface{}
	for _, n := range nodes {
		expr, a := n.SQL()
		if expr == "" {
			continue
		}
		parts = append(parts, "("+expr+")")
		args = append(args, a...)
	}
	return strings.Join(parts, sep), args
}

func contiene(columna, valor string) Cond {
	return Cond{
		Expr: "LOWER(" + columna + ") LIKE ?",
		Args: []interface{}{"%" + strings.ToLower(valor) + "%"},
	}
}

// camposBusqueda are the columns free-text tokens are matched against.
var camposBusqueda = []string{"marca", "modelo", "sku", "descripcion", "categoria"}

// BuildFiltroZapatillas compiles the query-string filters into one tree.
// Discrete field filters, the tokenized free-text groups and the price
// EXISTS join are all ANDed at the top level.
func BuildFiltroZapatillas(f *dto.FilterZapatillas) Filtro {
	root := And{}

	if f.Marca != "" {
		root = append(root, contiene("marca", f.Marca))
	}
	if f.Modelo != "" {
		root = append(root, contiene("modelo", f.Modelo))
	}
	if f.SKU != "" {
		root = append(root, contiene("sku", f.SKU))
	}
	if f.Categoria != "" {
		root = append(root, contiene("categoria", f.Categoria))
	}

	// Inactive sneakers are hidden unless explicitly requested.
	activa := true
	if f.Activa != nil {
		activa = *f.Activa
	}
	root = append(root, Cond{Expr: "activa = ?", Args: []interface{}{activa}})

	// Each token must match at least one searchable field.
	for _, token := range strings.Fields(f.Search) {
		grupo := Or{}
		for _, campo := range camposBusqueda {
			grupo = append(grupo, contiene(campo, token))
		}
		root = append(root, grupo)
	}

	if f.PrecioMin != nil || f.PrecioMax != nil {
		root = append(root, filtroPrecio(f.PrecioMin, f.PrecioMax))
	}

	return root
}

// filtroPrecio matches sneakers with at least one available listing whose
// price falls inside the (possibly open-ended) range.
func filtroPrecio(min, max *float64) Filtro {
	sub := "EXISTS (SELECT 1 FROM zapatillas_tienda" +
		" WHERE zapatillas_tienda.zapatilla_id = zapatillas.id" +
		" AND zapatillas_tienda.disponible = ?"
	args := []interface{}{true}
	if min != nil {
		sub += " AND zapatillas_tienda.precio >= ?"
		args = append(args, *min)
	}
	if max != nil {
		sub += " AND zapatillas_tienda.precio <= ?"
		args = append(args, *max)
	}
	sub += ")"
	return Cond{Expr: sub, Args: args}
}
