package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/partnerscore/internal/contract"
	"github.com/huangsam/partnerscore/schema"
)

// LoadCriteria returns the persisted criteria, migrated to the current catalog.
// Absent or corrupt criteria are replaced by catalog defaults and persisted.
// Only storage failures are returned as errors.
func LoadCriteria(repo contract.CriteriaRepository) (schema.Criteria, error) {
	criteria, err := repo.GetCriteria()
	switch {
	case err == nil:
		if criteria.Validate() != nil {
			criteria = nil
		}
	case errors.Is(err, contract.ErrNoCriteria), errors.Is(err, contract.ErrCorruptCriteria):
		criteria = nil
	default:
		return nil, fmt.Errorf("failed to load criteria: %w", err)
	}

	if criteria == nil {
		criteria = schema.DefaultCriteria()
		if err := repo.PutCriteria(criteria); err != nil {
			return nil, fmt.Errorf("failed to persist default criteria: %w", err)
		}
	}

	migrated, added := MigrateCriteria(criteria)
	if len(added) > 0 {
		if err := repo.PutCriteria(migrated); err != nil {
			return nil, fmt.Errorf("failed to persist migrated criteria: %w", err)
		}
	}
	return migrated, nil
}

// MigrateCriteria adds a default criterion for every catalog metric missing from criteria.
// Existing keys are never removed or altered. It returns a copy and the added keys in catalog order.
func MigrateCriteria(criteria schema.Criteria) (schema.Criteria, []string) {
	migrated := criteria.Clone()
	var added []string
	for _, m := range schema.Catalog() {
		if _, ok := migrated[m.Key]; ok {
			continue
		}
		migrated[m.Key] = schema.DefaultCriterion(m)
		added = append(added, m.Key)
	}
	return migrated, added
}

// SaveCriteria validates and persists criteria. It is the only writer of the rubric;
// callers must re-score afterwards.
func SaveCriteria(repo contract.CriteriaRepository, criteria schema.Criteria) error {
	if err := criteria.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid criteria: %w", err)
	}
	if err := repo.PutCriteria(criteria); err != nil {
		return fmt.Errorf("failed to save criteria: %w", err)
	}
	return nil
}

// SetEnabled returns a copy of criteria with the metric enabled or disabled.
func SetEnabled(criteria schema.Criteria, key string, enabled bool) (schema.Criteria, error) {
	key, crit, err := lookupCriterion(criteria, key)
	if err != nil {
		return nil, err
	}
	next := criteria.Clone()
	crit = next[key]
	crit.Enabled = enabled
	next[key] = crit
	return next, nil
}

// SetRange returns a copy of criteria with one score band of a quantitative metric replaced.
// Empty bounds leave that side open.
func SetRange(criteria schema.Criteria, key string, score schema.Score, minBound, maxBound string) (schema.Criteria, error) {
	key, crit, err := lookupCriterion(criteria, key)
	if err != nil {
		return nil, err
	}
	if crit.Type != schema.Quantitative {
		return nil, fmt.Errorf("%w: %s is %s", contract.ErrWrongMetricType, key, crit.Type)
	}
	if !score.Valid() {
		return nil, fmt.Errorf("%w: %d", schema.ErrBadScore, score)
	}

	next := criteria.Clone()
	crit = next[key]
	if crit.Ranges == nil {
		crit.Ranges = make(schema.Ranges, schema.NumLevels)
	}
	crit.Ranges[score] = schema.Range{Min: strings.TrimSpace(minBound), Max: strings.TrimSpace(maxBound)}
	if err := crit.Validate(); err != nil {
		return nil, fmt.Errorf("criterion %s: %w", key, err)
	}
	next[key] = crit
	return next, nil
}

// SetDescriptor returns a copy of criteria with one descriptor of a qualitative metric replaced.
func SetDescriptor(criteria schema.Criteria, key string, score schema.Score, text string) (schema.Criteria, error) {
	key, crit, err := lookupCriterion(criteria, key)
	if err != nil {
		return nil, err
	}
	if crit.Type != schema.Qualitative {
		return nil, fmt.Errorf("%w: %s is %s", contract.ErrWrongMetricType, key, crit.Type)
	}
	if !score.Valid() {
		return nil, fmt.Errorf("%w: %d", schema.ErrBadScore, score)
	}
	if schema.IsPlaceholder(text) {
		return nil, fmt.Errorf("descriptor %q would never match because it is a placeholder value", text)
	}

	next := criteria.Clone()
	crit = next[key]
	if crit.Descriptors == nil {
		crit.Descriptors = make(schema.Descriptors, schema.NumLevels)
	}
	crit.Descriptors[score] = text
	next[key] = crit
	return next, nil
}

// ResetCriteria returns a copy of criteria with the given metrics restored to catalog defaults.
// Without keys every catalog metric is reset. The enabled flag is preserved.
func ResetCriteria(criteria schema.Criteria, keys ...string) (schema.Criteria, error) {
	next := criteria.Clone()
	if len(keys) == 0 {
		for _, m := range schema.Catalog() {
			keys = append(keys, m.Key)
		}
	}
	for _, raw := range keys {
		key, ok := schema.ResolveMetricKey(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s", contract.ErrUnknownMetric, raw)
		}
		m, _ := schema.MetricByKey(key)
		def := schema.DefaultCriterion(m)
		if prev, ok := next[key]; ok {
			def.Enabled = prev.Enabled
		}
		next[key] = def
	}
	return next, nil
}

// ImportCriteria merges imported criteria over the current ones. Keys are resolved
// through the catalog; unknown keys are rejected.
func ImportCriteria(current, imported schema.Criteria) (schema.Criteria, error) {
	next := current.Clone()
	for raw, crit := range imported {
		key, ok := schema.ResolveMetricKey(raw)
		if !ok {
			return nil, fmt.Errorf("%w: %s", contract.ErrUnknownMetric, raw)
		}
		if err := crit.Validate(); err != nil {
			return nil, fmt.Errorf("criterion %s: %w", key, err)
		}
		next[key] = crit.Clone()
	}
	return next, nil
}

// lookupCriterion resolves a key or alias and returns the matching criterion.
func lookupCriterion(criteria schema.Criteria, raw string) (string, schema.Criterion, error) {
	key := raw
	if _, ok := criteria[key]; !ok {
		resolved, found := schema.ResolveMetricKey(raw)
		if !found {
			return "", schema.Criterion{}, fmt.Errorf("%w: %s", contract.ErrUnknownMetric, raw)
		}
		key = resolved
	}
	crit, ok := criteria[key]
	if !ok {
		return "", schema.Criterion{}, fmt.Errorf("%w: %s", contract.ErrUnknownMetric, raw)
	}
	return key, crit, nil
}
