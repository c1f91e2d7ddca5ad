// Package classifier buckets expense category labels into cost groups.
// The rule tables were enumerated from real category labels in production
// data; matching is substring based, so a new label variant usually lands
// in the right bucket without a table change.
package classifier

import "strings"

// Bucket is a cost group used by the aggregation engine.
type Bucket string

const (
	BucketFuel           Bucket = "combustivel"
	BucketTires          Bucket = "pneus"
	BucketFixed          Bucket = "fixo"
	BucketGeneral        Bucket = "geral"
	BucketInternalLabor  Bucket = "mao-de-obra"
	BucketTheftExclusion Bucket = "furto"
	BucketMaintenance    Bucket = "manutencao"
)

// Static keyword tables, matched after trim/uppercase normalization.
// An entry matches when the label equals it or contains it as a substring.
var (
	theftKeywords = []string{
		"FURTO",
		"ROUBO",
		"SINISTRO",
	}
	laborKeywords = []string{
		"VALOR M.O.",
		"MAO DE OBRA INTERNA",
		"M.O. INTERNA",
		"MAO-DE-OBRA INTERNA",
	}
	tireKeywords = []string{
		"PNEU",
		"RECAPAGEM",
		"CAMARA DE AR",
		"BORRACHARIA",
	}
	fixedKeywords = []string{
		"RASTREADOR",
		"MENSALIDADE",
		"SEGURO",
		"IPVA",
		"LICENCIAMENTO",
	}
	fuelContainsKeywords = []string{
		"COMBUSTIVEL",
	}
	// Fuel labels matched only on exact equality. "OLEO DIESEL" cannot be a
	// substring rule or every diesel-grade lubricant label would land in
	// fuel instead of maintenance.
	fuelExactKeywords = []string{
		"OLEO DIESEL",
	}
	generalKeywords = []string{
		"FRETE",
		"ADMINISTRATIVO",
		"DESPESAS GERAIS",
		"RATEIO",
	}
)

// Classifier resolves category labels to buckets. The zero value is not
// usable; build one with New.
type Classifier struct {
	theft        []string
	labor        []string
	tires        []string
	fixed        []string
	fuelContains []string
	fuelExact    []string
	general      []string
}

// New returns a classifier carrying the static rule tables.
func New() *Classifier {
	return &Classifier{
		theft:        append([]string(nil), theftKeywords...),
		labor:        append([]string(nil), laborKeywords...),
		tires:        append([]string(nil), tireKeywords...),
		fixed:        append([]string(nil), fixedKeywords...),
		fuelContains: append([]string(nil), fuelContainsKeywords...),
		fuelExact:    append([]string(nil), fuelExactKeywords...),
		general:      append([]string(nil), generalKeywords...),
	}
}

// AddKeywords appends substring rules to a bucket's table. Extra fuel
// keywords are matched by containment, like the built-in COMBUSTIVEL rule.
// BucketMaintenance is the catch-all and takes no keywords.
func (c *Classifier) AddKeywords(bucket Bucket, keywords ...string) {
	normalized := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = normalize(k); k != "" {
			normalized = append(normalized, k)
		}
	}
	switch bucket {
	case BucketTheftExclusion:
		c.theft = append(c.theft, normalized...)
	case BucketInternalLabor:
		c.labor = append(c.labor, normalized...)
	case BucketTires:
		c.tires = append(c.tires, normalized...)
	case BucketFixed:
		c.fixed = append(c.fixed, normalized...)
	case BucketFuel:
		c.fuelContains = append(c.fuelContains, normalized...)
	case BucketGeneral:
		c.general = append(c.general, normalized...)
	}
}

// Classify maps a category label to its bucket. Rules are ordered and the
// first match wins; theft must come first because a theft write-off label
// can also mention the stolen part's category, and an excluded record must
// never fall through into a cost bucket.
func (c *Classifier) Classify(label string) Bucket {
	label = normalize(label)
	switch {
	case matchAny(label, c.theft):
		return BucketTheftExclusion
	case matchAny(label, c.labor):
		return BucketInternalLabor
	case matchAny(label, c.tires):
		return BucketTires
	case matchAny(label, c.fixed):
		return BucketFixed
	case equalsAny(label, c.fuelExact) || matchAny(label, c.fuelContains):
		return BucketFuel
	case matchAny(label, c.general):
		return BucketGeneral
	default:
		return BucketMaintenance
	}
}

func normalize(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

func matchAny(label string, keywords []string) bool {
	if label == "" {
		return false
	}
	for _, k := range keywords {
		if label == k || strings.Contains(label, k) {
			return true
		}
	}
	return false
}

func equalsAny(label string, keywords []string) bool {
	for _, k := range keywords {
		if label == k {
			return true
		}
	}
	return false
}
