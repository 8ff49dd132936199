package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
)

// Parameter describes one NWIS parameter code.
type Parameter struct {
	Name   string `yaml:"name"`
	Unit   string `yaml:"unit"`
	Symlog bool   `yaml:"symlog"`
}

// Catalogue lists the known parameters and qualifier codes.
type Catalogue struct {
	Parameters map[string]Parameter `yaml:"parameters"`
	Qualifiers map[string]string    `yaml:"qualifiers"`
}

// DefaultCatalogue is used when no PARAMETERS_FILE is configured.
func DefaultCatalogue() *Catalogue {
	return &Catalogue{
		Parameters: map[string]Parameter{
			"00060": {Name: "Discharge", Unit: "ft3/s", Symlog: true},
			"72137": {Name: "Discharge, tidally filtered", Unit: "ft3/s", Symlog: true},
			"00065": {Name: "Gage height", Unit: "ft"},
			"00010": {Name: "Temperature, water", Unit: "deg C"},
			"62614": {Name: "Lake or reservoir water surface elevation above NGVD 1929", Unit: "ft"},
		},
		Qualifiers: map[string]string{
			"A":   "Approved for publication. Processing and review completed.",
			"P":   "Provisional data subject to revision.",
			"e":   "Value has been estimated.",
			"Ice": "Value is affected by ice at the measurement site.",
			"Eqp": "Value affected by equipment malfunction.",
			"Fld": "Value affected by flooding.",
			"Ssn": "Parameter monitored seasonally.",
			"Dis": "Data-collection discontinued.",
		},
	}
}

// LoadCatalogue reads a YAML catalogue from path. An empty path returns the
// default catalogue.
func LoadCatalogue(path string) (*Catalogue, error) {
	if path == "" {
		return DefaultCatalogue(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parameters file: %w", err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue decodes a YAML catalogue. At least one parameter is required.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse parameters file: %w", err)
	}
	if len(c.Parameters) == 0 {
		return nil, fmt.Errorf("parse parameters file: no parameters defined")
	}
	for code := range c.Parameters {
		if code == "" {
			return nil, fmt.Errorf("parse parameters file: %w", domain.ErrMissingParameterCode)
		}
	}
	return &c, nil
}

// SymlogParameters returns the set of codes drawn on a symlog scale.
func (c *Catalogue) SymlogParameters() domain.ParameterSet {
	set := domain.NewParameterSet()
	for code, p := range c.Parameters {
		if p.Symlog {
			set[code] = struct{}{}
		}
	}
	return set
}

// QualifierDescriptions returns the qualifier code descriptions.
func (c *Catalogue) QualifierDescriptions() map[string]string {
	return c.Qualifiers
}

// UnitCode returns the unit for code, or "" when the code is unknown.
func (c *Catalogue) UnitCode(code string) string {
	return c.Parameters[code].Unit
}
