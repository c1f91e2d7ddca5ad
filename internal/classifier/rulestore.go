package classifier

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fvieira/frota-csv/internal/logging"
)

var log = logging.GetLogger()

// SetLogger sets the logger used when loading rule overrides.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// RuleStore loads user-maintained keyword additions from a YAML file. The
// static tables cover the labels seen so far; sites add their own category
// labels over time and the overrides file lets them extend a bucket
// without a rebuild.
type RuleStore struct {
	RulesFile string
}

// NewRuleStore creates a store reading from rulesFile, defaulting to
// categorias.yaml when blank.
func NewRuleStore(rulesFile string) *RuleStore {
	return &RuleStore{RulesFile: rulesFile}
}

// ruleOverrides is the YAML shape of the overrides file: one keyword list
// per bucket name.
type ruleOverrides struct {
	Furto       []string `yaml:"furto"`
	MaoDeObra   []string `yaml:"mao_de_obra"`
	Pneus       []string `yaml:"pneus"`
	Fixo        []string `yaml:"fixo"`
	Combustivel []string `yaml:"combustivel"`
	Geral       []string `yaml:"geral"`
}

// findRulesFile checks the working directory and ./config before giving up.
func (s *RuleStore) findRulesFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}
	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// Load builds a classifier from the static tables plus any keyword
// overrides found in the rules file. A missing file is not an error; the
// static tables alone are a complete rule set.
func (s *RuleStore) Load() (*Classifier, error) {
	c := New()

	filename := s.RulesFile
	if filename == "" {
		filename = "categorias.yaml"
	}

	filePath, err := s.findRulesFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Category rules file not found, using built-in tables",
				logging.Field{Key: "file", Value: filename})
			return c, nil
		}
		return nil, fmt.Errorf("error resolving category rules file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading category rules file: %w", err)
	}

	var overrides ruleOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("error parsing category rules file: %w", err)
	}

	c.AddKeywords(BucketTheftExclusion, overrides.Furto...)
	c.AddKeywords(BucketInternalLabor, overrides.MaoDeObra...)
	c.AddKeywords(BucketTires, overrides.Pneus...)
	c.AddKeywords(BucketFixed, overrides.Fixo...)
	c.AddKeywords(BucketFuel, overrides.Combustivel...)
	c.AddKeywords(BucketGeneral, overrides.Geral...)

	log.Debug("Loaded category rule overrides", logging.Field{Key: "file", Value: filePath})
	return c, nil
}
