// Package role maps UAST role names to their numeric identifiers and back.
//
// Each role has a canonical upper-case name (LEFT_SHIFT) and the camel-case
// form used inside trees (LeftShift). The table is fixed at build time.
package role

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownRole is returned when a name or identifier is not in the table.
var ErrUnknownRole = errors.New("role not found")

// Role is the numeric identifier of a role.
type Role uint16

type entry struct {
	id    Role
	name  string
	camel string
}

var (
	byName  map[string]Role
	byCamel map[string]Role
)

func init() {
	byName = make(map[string]Role, len(table))
	byCamel = make(map[string]Role, len(table))
	for i, e := range table {
		if int(e.id) != i {
			panic(fmt.Sprintf("role table out of order at %d (%s)", i, e.name))
		}
		byName[e.name] = e.id
		byCamel[strings.ToUpper(e.camel)] = e.id
	}
}

// Lookup returns the identifier of a role. The name is matched case
// insensitively against both the canonical and the camel-case forms.
func Lookup(name string) (Role, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if id, ok := byName[upper]; ok {
		return id, nil
	}
	if id, ok := byCamel[upper]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: role with name %q", ErrUnknownRole, name)
}

// Name returns the canonical upper-case name of a role.
func Name(r Role) (string, error) {
	if int(r) >= len(table) {
		return "", fmt.Errorf("%w: role with ID %d", ErrUnknownRole, r)
	}
	return table[r].name, nil
}

// Camel returns the camel-case name of a role as it appears in trees.
func Camel(r Role) (string, error) {
	if int(r) >= len(table) {
		return "", fmt.Errorf("%w: role with ID %d", ErrUnknownRole, r)
	}
	return table[r].camel, nil
}

// Valid reports whether r is defined.
func (r Role) Valid() bool {
	return int(r) < len(table)
}

func (r Role) String() string {
	if !r.Valid() {
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
	return table[r].camel
}

// All returns every defined role in identifier order.
func All() []Role {
	out := make([]Role, len(table))
	for i, e := range table {
		out[i] = e.id
	}
	return out
}

// Normalize returns the camel-case form of a role name, or the name itself
// when it is unknown.
func Normalize(name string) string {
	id, err := Lookup(name)
	if err != nil {
		return name
	}
	return table[id].camel
}
