// Package registry holds immutable snapshots of the known fleet and the
// material catalog. Record builders match rows against a snapshot taken at
// import start so that a concurrent registry edit cannot shift matching
// mid-file.
package registry

import (
	"sort"
	"strings"

	"fvieira/frota-csv/internal/models"
)

// Snapshot is a point-in-time read-only view of the machine registry.
type Snapshot struct {
	byCode map[string]models.Machine
}

// NewSnapshot indexes machines by normalized fleet code. Later duplicates
// win, matching how the registry store upserts by code.
func NewSnapshot(machines []models.Machine) *Snapshot {
	byCode := make(map[string]models.Machine, len(machines))
	for _, m := range machines {
		code := models.NormalizeFleetCode(m.FleetCode)
		if code == "" {
			continue
		}
		m.FleetCode = code
		byCode[code] = m
	}
	return &Snapshot{byCode: byCode}
}

// HasFleet reports whether code (normalized) belongs to a known machine.
func (s *Snapshot) HasFleet(code string) bool {
	_, ok := s.byCode[models.NormalizeFleetCode(code)]
	return ok
}

// ByCode returns the machine registered under code (normalized).
func (s *Snapshot) ByCode(code string) (models.Machine, bool) {
	m, ok := s.byCode[models.NormalizeFleetCode(code)]
	return m, ok
}

// Machines returns all machines ordered by fleet code (numeric when both
// codes are numeric, lexicographic otherwise).
func (s *Snapshot) Machines() []models.Machine {
	out := make([]models.Machine, 0, len(s.byCode))
	for _, m := range s.byCode {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return models.FleetCodeLess(out[i].FleetCode, out[j].FleetCode)
	})
	return out
}

// Len returns the number of registered machines.
func (s *Snapshot) Len() int {
	return len(s.byCode)
}

// MaterialIndex is a point-in-time view of the material catalog keyed by
// normalized material code.
type MaterialIndex struct {
	byCode map[string]models.MaterialCatalogEntry
}

// NewMaterialIndex indexes catalog entries by leading-zero-normalized code.
func NewMaterialIndex(entries []models.MaterialCatalogEntry) *MaterialIndex {
	byCode := make(map[string]models.MaterialCatalogEntry, len(entries))
	for _, e := range entries {
		code := normalizeMaterialCode(e.Code)
		if code == "" {
			continue
		}
		e.Code = code
		byCode[code] = e
	}
	return &MaterialIndex{byCode: byCode}
}

// Category returns the catalog category for code, or the uncatalogued
// sentinel plus false when the code is unknown.
func (x *MaterialIndex) Category(code string) (string, bool) {
	if e, ok := x.byCode[normalizeMaterialCode(code)]; ok {
		return e.Category, true
	}
	return models.CategoryUncatalogued, false
}

// Len returns the number of catalogued materials.
func (x *MaterialIndex) Len() int {
	return len(x.byCode)
}

func normalizeMaterialCode(code string) string {
	code = strings.TrimSpace(code)
	trimmed := strings.TrimLeft(code, "0")
	if trimmed == "" && code != "" {
		return "0"
	}
	return trimmed
}
