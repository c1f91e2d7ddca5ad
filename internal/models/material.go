package models

// MaterialCatalogEntry maps a stock material code to a cost category.
// The stock-issue builder resolves the category of each consumed item
// through this catalog; codes without an entry fall back to
// CategoryUncatalogued and are reported as an import warning.
type MaterialCatalogEntry struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	Code        string `bson:"codigo" json:"codigo"`
	Description string `bson:"descricao" json:"descricao"`
	Category    string `bson:"categoria" json:"categoria"`
}

// CategoryUncatalogued is the sentinel category assigned to stock issues
// whose material code has no catalog entry.
const CategoryUncatalogued = "NAO CLASSIFICADO"
