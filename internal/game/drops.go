package game

import (
	"github.com/vovakirdan/tui-comet/internal/config"
	"github.com/vovakirdan/tui-comet/internal/engine"
)

// multiplierKey is the ActiveBonuses entry tracking a timed multiplier.
const multiplierKey = "multiplier"

// dropper rolls bonus drops from destroyed bricks.
type dropper struct {
	cfg config.BonusConfig
	rng *SimpleRNG
}

// roll decides whether a brick destroyed at (x, y) drops a bonus.
func (d *dropper) roll(x, y float64) (engine.BonusDrop, bool) {
	if d.cfg.DropChance <= 0 || d.rng.Intn(100) >= d.cfg.DropChance {
		return engine.BonusDrop{}, false
	}

	total := d.cfg.TotalWeight()
	if total <= 0 {
		return engine.BonusDrop{}, false
	}

	pick := d.rng.Intn(total)
	for _, w := range d.cfg.Table {
		if pick < w.Weight {
			return engine.BonusDrop{X: x, Y: y, VY: d.cfg.FallSpeed, Bonus: w.Bonus}, true
		}
		pick -= w.Weight
	}
	return engine.BonusDrop{}, false
}

// caught reports whether a drop moving down from prevY crossed the moon band
// this tick. The whole swept span is tested so fast drops cannot skip it.
func caught(drop engine.BonusDrop, prevY float64, m engine.Moon) bool {
	return prevY <= m.Y+m.HT && drop.Y >= m.Top() &&
		drop.X > m.X-m.HW && drop.X < m.X+m.HW
}

// fall moves every drop, removing the ones caught by the moon or lost below
// the death line. The caught bonuses are returned in drop order.
func fall(s *engine.State, dt float64) []engine.Bonus {
	var got []engine.Bonus
	kept := s.BonusDrops[:0]
	for _, d := range s.BonusDrops {
		prevY := d.Y
		d.Y += d.VY * dt
		switch {
		case caught(d, prevY, s.Moon):
			got = append(got, d.Bonus)
		case d.Y > engine.DeathLine:
		default:
			kept = append(kept, d)
		}
	}
	s.BonusDrops = kept
	return got
}
