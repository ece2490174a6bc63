package rules

import "math/rand"

// SkillCap is the maximum value a skill can reach through growth checks.
const SkillCap = 90

// GrowthRoller rolls skill-growth checks. The random source is injected so
// tests can seed it deterministically.
type GrowthRoller struct {
	rng *rand.Rand
}

// NewGrowthRoller creates a roller backed by the given source.
func NewGrowthRoller(src rand.Source) *GrowthRoller {
	return &GrowthRoller{rng: rand.New(src)}
}

// RollGrowthEligible performs a growth check for a skill at the given value:
// a uniform 1-100 roll must exceed the current value. Skills at or above the
// cap never grow.
func (r *GrowthRoller) RollGrowthEligible(current int) bool {
	if current >= SkillCap {
		return false
	}
	roll := r.rng.Intn(100) + 1
	return roll > current
}

// RollIncrease returns the growth amount, a uniform integer in [1,10].
func (r *GrowthRoller) RollIncrease() int {
	return r.rng.Intn(10) + 1
}

// ApplyGrowth adds the increase to the current value, capped at SkillCap.
func ApplyGrowth(current, increase int) int {
	v := current + increase
	if v > SkillCap {
		return SkillCap
	}
	return v
}

// ApplySanityLoss subtracts the loss from the current sanity, floored at 0.
// The loss amount is caller-supplied.
func ApplySanityLoss(san, loss int) int {
	v := san - loss
	if v < 0 {
		return 0
	}
	return v
}
