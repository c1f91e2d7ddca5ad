package models

import "sort"

// ImportWarnings accumulates the non-blocking data-quality findings of a
// single import: fleet codes absent from the registry, material codes
// absent from the catalog, and inflow class labels outside the known set.
// Warnings never block an import; the affected records stay importable.
type ImportWarnings struct {
	unknownFleets    map[string]struct{}
	unknownMaterials map[string]struct{}
	unknownClasses   map[string]struct{}
}

// NewImportWarnings returns an empty warning collector.
func NewImportWarnings() *ImportWarnings {
	return &ImportWarnings{
		unknownFleets:    make(map[string]struct{}),
		unknownMaterials: make(map[string]struct{}),
		unknownClasses:   make(map[string]struct{}),
	}
}

// AddUnknownFleet records a fleet code missing from the machine registry.
func (w *ImportWarnings) AddUnknownFleet(code string) {
	if code != "" {
		w.unknownFleets[code] = struct{}{}
	}
}

// AddUnknownMaterial records a material code missing from the catalog.
func (w *ImportWarnings) AddUnknownMaterial(code string) {
	if code != "" {
		w.unknownMaterials[code] = struct{}{}
	}
}

// AddUnknownClass records an inflow class label outside the allow-list.
func (w *ImportWarnings) AddUnknownClass(label string) {
	if label != "" {
		w.unknownClasses[label] = struct{}{}
	}
}

// UnknownFleets returns the distinct unknown fleet codes, sorted.
func (w *ImportWarnings) UnknownFleets() []string { return sortedKeys(w.unknownFleets) }

// UnknownMaterials returns the distinct uncatalogued material codes, sorted.
func (w *ImportWarnings) UnknownMaterials() []string { return sortedKeys(w.unknownMaterials) }

// UnknownClasses returns the distinct unrecognized class labels, sorted.
func (w *ImportWarnings) UnknownClasses() []string { return sortedKeys(w.unknownClasses) }

// Empty reports whether no warning of any kind was collected.
func (w *ImportWarnings) Empty() bool {
	return len(w.unknownFleets) == 0 && len(w.unknownMaterials) == 0 && len(w.unknownClasses) == 0
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ImportPreview is the transient, not-yet-persisted result of parsing one
// uploaded file. It is discarded on cancel and converted to persisted
// expenses on confirm.
type ImportPreview struct {
	Kind     ExpenseKind
	Layout   string
	Records  []Expense
	Warnings *ImportWarnings
}
