package workload

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Policy carries the pay and norm constants injected into the calculators.
// Loaded once at process start; never mutated by the engine.
type Policy struct {
	// TeachingNormHours is the fixed monthly direct-teaching norm above
	// which hours count as overload (60% of 190.6 monthly hours).
	TeachingNormHours decimal.Decimal
	// TariffByCategory maps a teaching category name to its hourly rate.
	TariffByCategory map[string]decimal.Decimal
	// DefaultTariff applies to categories missing from TariffByCategory.
	DefaultTariff decimal.Decimal
}

// Tariff resolves the hourly rate for a category, falling back to the
// default tariff for unknown names.
func (p Policy) Tariff(category string) decimal.Decimal {
	if tariff, ok := p.TariffByCategory[category]; ok {
		return tariff
	}
	return p.DefaultTariff
}

// DefaultPolicy returns the rates published in Resolution 32/2024.
func DefaultPolicy() Policy {
	return Policy{
		TeachingNormHours: decimal.NewFromInt(114),
		TariffByCategory: map[string]decimal.Decimal{
			"Titular":    decimal.NewFromInt(150),
			"Auxiliar":   decimal.NewFromInt(118),
			"Asistente":  decimal.NewFromInt(90),
			"Instructor": decimal.NewFromInt(70),
		},
		DefaultTariff: decimal.NewFromInt(70),
	}
}

// TypeFlags are the capability flags attached to an activity type. The
// calculators consume these flags, never the free-text type names.
type TypeFlags struct {
	IsDirectTeaching    bool
	CountsAsPregrad     bool
	CountsAsPreparation bool
}

// ClassifyPatterns holds the case-insensitive name substrings used to derive
// capability flags when importing reference data with free-text type names.
type ClassifyPatterns struct {
	DirectTeaching []string
	Pregrad        []string
	Preparation    []string
}

// DefaultClassifyPatterns matches the legacy type names used before
// capability flags existed.
func DefaultClassifyPatterns() ClassifyPatterns {
	return ClassifyPatterns{
		DirectTeaching: []string{"Pregrado", "Docencia Directa de Pregrado y Posgrado"},
		Pregrad:        []string{"Pregrado"},
		Preparation:    []string{"Preparación"},
	}
}

// ClassifyTypeName derives capability flags from an activity type name. It is
// applied once when reference data is created or seeded; computed flags are
// stored on the type so the engine never re-matches strings.
func ClassifyTypeName(name string, patterns ClassifyPatterns) TypeFlags {
	return TypeFlags{
		IsDirectTeaching:    matchesAny(name, patterns.DirectTeaching),
		CountsAsPregrad:     matchesAny(name, patterns.Pregrad),
		CountsAsPreparation: matchesAny(name, patterns.Preparation),
	}
}

func matchesAny(name string, patterns []string) bool {
	lowered := strings.ToLower(name)
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
