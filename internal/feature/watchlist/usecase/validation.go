package usecase

import (
	"regexp"
	"strings"
)

const (
	MaxListLimit = 1000
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9._-]{0,31}$`)

func validatePositiveID(field string, id int64) error {
	if id <= 0 {
		return invalid(field, "%s must be > 0", field)
	}
	return nil
}

// validateLimit rejects rather than clamps.
func validateLimit(limit int) error {
	if limit <= 0 {
		return invalid("limit", "limit must be > 0")
	}
	if limit > MaxListLimit {
		return invalid("limit", "limit must be <= %d", MaxListLimit)
	}
	return nil
}

func normalizeRequiredText(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", invalid(field, "%s cannot be empty", field)
	}
	return v, nil
}

// normalizeOptionalText trims and turns blank into nil.
func normalizeOptionalText(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeSymbol(value string) (string, error) {
	v, err := normalizeRequiredText("symbol", value)
	if err != nil {
		return "", err
	}
	v = strings.ToUpper(v)
	if !symbolPattern.MatchString(v) {
		return "", invalid("symbol", "symbol must match %s", symbolPattern.String())
	}
	return v, nil
}

func normalizeExchange(value string) (string, error) {
	v, err := normalizeRequiredText("exchange", value)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(v), nil
}

func normalizeTagName(value string) (string, error) {
	v, err := normalizeRequiredText("tag_name", value)
	if err != nil {
		return "", err
	}
	return strings.ToLower(v), nil
}

// validatePriority accepts nil (no priority) or 1..5.
func validatePriority(priority *int) error {
	if priority == nil {
		return nil
	}
	if *priority < 1 || *priority > 5 {
		return invalid("priority", "priority must be between 1 and 5")
	}
	return nil
}

// normalizeTags lower-cases and trims, drops empties and duplicates, keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		v := strings.ToLower(strings.TrimSpace(t))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
