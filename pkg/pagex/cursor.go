// Package pagex implements resumable cursor pagination and classic
// page/offset pagination over SQL listings.
//
// A cursor is an opaque-but-plaintext continuation token:
// base64(JSON{values: {column: lastSeen}, order: ["column_DIR", ...]}).
// It is fully self-contained; the server stores nothing between pages.
package pagex

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedCursor = errors.New("pagex: malformed cursor")
	ErrInvalidOrder    = errors.New("pagex: order direction must be ASC or DESC")
	ErrUnknownColumn   = errors.New("pagex: column is not sortable")
)

// Cursor is the wire-visible continuation state. Clients must treat the
// encoded form as opaque, but it is plain text: no confidentiality or
// integrity guarantee beyond obscurity.
type Cursor struct {
	Values map[string]any `json:"values"`
	Order  []string       `json:"order"`
}

// OrderClause is one parsed "column_DIRECTION" entry.
type OrderClause struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// EncodeCursor serializes the last row's sort-key values plus the active
// order into the opaque wire form.
func EncodeCursor(values map[string]any, order []string) string {
	raw, _ := json.Marshal(Cursor{Values: values, Order: order})
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeCursor reverses EncodeCursor. Structural garbage (bad base64, bad
// JSON, no order entries) is ErrMalformedCursor.
func DecodeCursor(s string) (Cursor, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}

	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}
	if len(c.Order) == 0 || c.Values == nil {
		return Cursor{}, ErrMalformedCursor
	}
	return c, nil
}

// ParseOrder validates "column_DIRECTION" entries. The direction is the
// part after the last underscore, so snake_case columns survive.
func ParseOrder(entries []string) ([]OrderClause, error) {
	if len(entries) == 0 {
		return nil, ErrInvalidOrder
	}

	clauses := make([]OrderClause, 0, len(entries))
	for _, e := range entries {
		idx := strings.LastIndex(e, "_")
		if idx <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, e)
		}
		column, direction := e[:idx], e[idx+1:]
		if direction != "ASC" && direction != "DESC" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, e)
		}
		clauses = append(clauses, OrderClause{Column: column, Direction: direction})
	}
	return clauses, nil
}

// Query is a ready-to-splice set of SQL fragments produced by Build.
type Query struct {
	// Where is the tuple comparison predicate, empty when no cursor was
	// supplied. Args hold its placeholder values in order.
	Where string
	Args  []any

	// OrderBy lists the ORDER BY columns, first entry primary.
	OrderBy string

	// Limit caps the page size.
	Limit int

	// Order is the effective order spec (the cursor's when present, the
	// fallback otherwise); feed it back into EncodeCursor for the next page.
	Order []string

	// Clauses are the parsed entries of Order, handy for pulling the
	// sort-key values out of the last row.
	Clauses []OrderClause
}

// Build turns an optional encoded cursor, a fallback order, and a page size
// into SQL fragments. columns is the allow-list mapping exposed column
// names to their SQL expressions; anything outside it is rejected before it
// can reach the query string.
//
// When a cursor is present its order overrides fallbackOrder: the cursor is
// authoritative for continuation consistency. The tuple predicate uses a
// single comparison operator, `<` when any entry is DESC and `>` otherwise.
// That is only correct while every column shares one direction;
// mixed-direction multi-column orders would need a lexicographic OR-chain
// and are not supported here.
func Build(cursor string, fallbackOrder []string, take int, columns map[string]string) (Query, error) {
	order := fallbackOrder

	var cur *Cursor
	if cursor != "" {
		decoded, err := DecodeCursor(cursor)
		if err != nil {
			return Query{}, err
		}
		cur = &decoded
		order = decoded.Order
	}

	clauses, err := ParseOrder(order)
	if err != nil {
		return Query{}, err
	}

	orderParts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		expr, ok := columns[c.Column]
		if !ok {
			return Query{}, fmt.Errorf("%w: %q", ErrUnknownColumn, c.Column)
		}
		orderParts = append(orderParts, expr+" "+c.Direction)
	}

	q := Query{
		OrderBy: strings.Join(orderParts, ", "),
		Limit:   take,
		Order:   order,
		Clauses: clauses,
	}

	if cur != nil {
		op := ">"
		for _, e := range order {
			if strings.HasSuffix(e, "_DESC") {
				op = "<"
				break
			}
		}

		cols := make([]string, 0, len(clauses))
		marks := make([]string, 0, len(clauses))
		for _, c := range clauses {
			val, ok := cur.Values[c.Column]
			if !ok {
				return Query{}, ErrMalformedCursor
			}
			cols = append(cols, columns[c.Column])
			marks = append(marks, "?")
			q.Args = append(q.Args, val)
		}

		q.Where = "(" + strings.Join(cols, ", ") + ") " + op + " (" + strings.Join(marks, ", ") + ")"
	}

	return q, nil
}
