package game

import "sort"

// CheckAchievements unlocks every threshold reached by score that is not yet
// unlocked, persists the set if it changed, and returns the new unlocks in
// ascending order. Calling it again with the same score unlocks nothing.
func (g *Game) CheckAchievements(score int) []int {
	var added []int
	for _, t := range g.cfg.Thresholds {
		if score < t {
			break
		}
		if _, ok := g.achievements[t]; ok {
			continue
		}
		g.achievements[t] = struct{}{}
		added = append(added, t)
	}
	if len(added) == 0 {
		return nil
	}

	g.justUnlocked = append(g.justUnlocked, added...)
	for _, t := range added {
		g.logger.Info("achievement unlocked", "threshold", t)
	}
	if err := g.store.SaveAchievements(g.Achievements()); err != nil {
		g.logger.Warn("failed to save achievements", "err", err)
	}
	return added
}

// Achievements returns the unlocked thresholds in ascending order.
func (g *Game) Achievements() []int {
	return sortedKeys(g.achievements)
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
