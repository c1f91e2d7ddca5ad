// Package models defines the domain types shared by the import pipeline,
// the classification engine and the aggregation engine.
package models

import (
	"strconv"
	"strings"
)

// Machine represents one fleet asset from the machine registry.
// FleetCode is the business key that joins expenses to machines; there is
// no foreign-key enforcement, so expenses referencing codes absent from
// the registry are expected and flagged, never rejected.
type Machine struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	FleetCode string `bson:"frota" json:"frota"`
	Name      string `bson:"maquina" json:"maquina"`
	Type      string `bson:"tipo" json:"tipo"`
	Location  string `bson:"localizacao" json:"localizacao"`
	Segment   string `bson:"segmento" json:"segmento"`
}

// MachineTypeEngine marks an engine-only sub-asset tracked under a parent
// machine. Engine-only machines are excluded from cost aggregates unless
// their name carries one of the prefixes below, which denote named
// sub-engines accounted as regular cost centers.
const MachineTypeEngine = "MOTOR"

var engineNamePrefixes = []string{"MOTOR DA", "MOTOR DO"}

// EngineOnly reports whether this machine must be excluded from cost
// aggregates. The name-prefix override mirrors the source accounting rule
// verbatim; the registry offers no rationale for it.
func (m Machine) EngineOnly() bool {
	if !strings.EqualFold(strings.TrimSpace(m.Type), MachineTypeEngine) {
		return false
	}
	name := strings.ToUpper(strings.TrimSpace(m.Name))
	for _, prefix := range engineNamePrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// NormalizeFleetCode trims the code and strips leading zeros, matching the
// registry convention ("002260" and "2260" are the same machine). The
// operation is idempotent.
func NormalizeFleetCode(raw string) string {
	code := strings.TrimSpace(raw)
	code = strings.TrimLeft(code, "0")
	return code
}

// FleetCodeLess orders fleet codes numerically when both sides parse as
// integers, lexicographically otherwise. Reports and exports list machines
// in this order.
func FleetCodeLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
