package loyalty

import (
	"errors"
	"regexp"
	"sort"

	"github.com/google/uuid"
)

var (
	ErrInvalidTierRange   = errors.New("tier max_points must be >= min_points")
	ErrInvalidTierColor   = errors.New("tier color must be a hex color")
	ErrTierOverlap        = errors.New("tier ranges overlap")
	ErrTierGap            = errors.New("tier ranges leave a gap")
	ErrNoFloorTier        = errors.New("lowest tier must start at 0 points")
	ErrUnboundedTierChain = errors.New("only the highest tier may be open-ended")
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tier maps a point bracket to a discount percentage. maxPoints == nil means
// open-ended upper bound.
type Tier struct {
	id              uuid.UUID
	name            string
	minPoints       int
	maxPoints       *int
	discountPercent float64
	color           string
	isActive        bool
}

func NewTier(id uuid.UUID, name string, minPoints int, maxPoints *int, discountPercent float64, color string, isActive bool) (*Tier, error) {
	if maxPoints != nil && *maxPoints < minPoints {
		return nil, ErrInvalidTierRange
	}
	if color != "" && !hexColorRegex.MatchString(color) {
		return nil, ErrInvalidTierColor
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Tier{
		id:              id,
		name:            name,
		minPoints:       minPoints,
		maxPoints:       maxPoints,
		discountPercent: discountPercent,
		color:           color,
		isActive:        isActive,
	}, nil
}

func (t *Tier) ID() uuid.UUID            { return t.id }
func (t *Tier) Name() string             { return t.name }
func (t *Tier) MinPoints() int           { return t.minPoints }
func (t *Tier) MaxPoints() *int          { return t.maxPoints }
func (t *Tier) DiscountPercent() float64 { return t.discountPercent }
func (t *Tier) Color() string            { return t.color }
func (t *Tier) IsActive() bool           { return t.isActive }

func (t *Tier) Eligible(points int) bool {
	if t.maxPoints != nil {
		return points >= t.minPoints && points <= *t.maxPoints
	}
	return points >= t.minPoints
}

// ResolveTier returns the highest qualifying tier plus the next tier above the
// current point total. tiers may arrive in any order.
func ResolveTier(tiers []*Tier, points int) (current, next *Tier, pointsToNext int) {
	ordered := sortedByMinPoints(tiers)

	for _, tier := range ordered {
		if !tier.isActive {
			continue
		}
		if tier.Eligible(points) {
			current = tier
			continue
		}
		if tier.minPoints > points {
			next = tier
			pointsToNext = tier.minPoints - points
			break
		}
	}
	return current, next, pointsToNext
}

// ValidateTierLadder checks that active tiers form a contiguous,
// non-overlapping ladder starting at 0 with at most one open-ended top tier.
// Ranges were never validated at write time historically; overlap and gaps
// made tier resolution undefined.
func ValidateTierLadder(tiers []*Tier) error {
	active := make([]*Tier, 0, len(tiers))
	for _, t := range tiers {
		if t.isActive {
			active = append(active, t)
		}
	}
	if len(active) == 0 {
		return nil
	}

	ordered := sortedByMinPoints(active)
	if ordered[0].minPoints != 0 {
		return ErrNoFloorTier
	}

	for i := 0; i < len(ordered)-1; i++ {
		cur, nxt := ordered[i], ordered[i+1]
		if cur.maxPoints == nil {
			return ErrUnboundedTierChain
		}
		switch {
		case nxt.minPoints <= *cur.maxPoints:
			return ErrTierOverlap
		case nxt.minPoints != *cur.maxPoints+1:
			return ErrTierGap
		}
	}
	return nil
}

func sortedByMinPoints(tiers []*Tier) []*Tier {
	ordered := make([]*Tier, len(tiers))
	copy(ordered, tiers)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].minPoints < ordered[j].minPoints
	})
	return ordered
}
