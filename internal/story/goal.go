package story

// GoalSpec is the authored description of a goal.
type GoalSpec struct {
	Title       string   `json:"title"`
	Explanation string   `json:"explanation"`
	Advice      string   `json:"advice,omitempty"`
	Facts       []string `json:"facts,omitempty"`
	Color       string   `json:"color,omitempty"`
}

// Goal groups the quests that serve one theme.
type Goal struct {
	*GoalSpec
	Index  int
	Quests []*Quest
}

// Percentage returns the share of completed quests, floored. The second value
// is false when the goal has no quests or the first one is not yet accepted.
func (g *Goal) Percentage() (int, bool) {
	if len(g.Quests) == 0 {
		return 0, false
	}
	if g.Quests[0].State < StateInProgress {
		return 0, false
	}

	done := 0
	for _, q := range g.Quests {
		if q.State == StateCompleted {
			done++
		}
	}
	return done * 100 / len(g.Quests), true
}
