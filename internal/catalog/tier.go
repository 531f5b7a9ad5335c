package catalog

import (
	"fmt"
	"strings"
)

// Tier is a package level. Values match the persisted packageType field.
type Tier string

const (
	TierLittle Tier = "little"
	TierMedium Tier = "medium"
	TierHuge   Tier = "huge"
)

var tierPrices = map[Tier]int64{
	TierLittle: 9000,
	TierMedium: 12000,
	TierHuge:   15000,
}

var tierNames = map[Tier]string{
	TierLittle: "Little Pack",
	TierMedium: "Medium Pack",
	TierHuge:   "Huge Pack",
}

// Tiers returns every tier, cheapest first.
func Tiers() []Tier {
	return []Tier{TierLittle, TierMedium, TierHuge}
}

func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierPrices[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

func (t Tier) Valid() bool {
	_, ok := tierPrices[t]
	return ok
}

// Price is the current list price. Zero for an unknown tier.
func (t Tier) Price() int64 {
	return tierPrices[t]
}

func (t Tier) DisplayName() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return string(t)
}
