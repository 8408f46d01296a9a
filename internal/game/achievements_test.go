package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAchievements(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		score    int
		want     []int
		added    []int
	}{
		{name: "below first", score: 9, want: []int{}},
		{name: "exact threshold", score: 10, want: []int{10}, added: []int{10}},
		{name: "several at once", score: 55, want: []int{10, 20, 30, 50}, added: []int{10, 20, 30, 50}},
		{name: "keeps existing", existing: []int{10, 20}, score: 30, want: []int{10, 20, 30}, added: []int{30}},
		{name: "existing above score kept", existing: []int{500}, score: 12, want: []int{10, 500}, added: []int{10}},
		{name: "everything", score: 9999, want: []int{10, 20, 30, 50, 100, 250, 500}, added: []int{10, 20, 30, 50, 100, 250, 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{achievements: tt.existing}
			g := New(DefaultConfig(10, 10), store)

			added := g.CheckAchievements(tt.score)

			assert.Equal(t, tt.added, added)
			assert.Equal(t, tt.want, g.Achievements())
			if len(tt.added) > 0 {
				assert.Equal(t, 1, store.achievementSaves)
				assert.Equal(t, tt.want, store.achievements)
			} else {
				assert.Zero(t, store.achievementSaves)
			}
		})
	}
}

func TestCheckAchievements_Idempotent(t *testing.T) {
	store := &memStore{}
	g := New(DefaultConfig(10, 10), store)

	require.Equal(t, []int{10, 20}, g.CheckAchievements(25))
	assert.Nil(t, g.CheckAchievements(25))
	assert.Nil(t, g.CheckAchievements(15), "lower score never removes")

	assert.Equal(t, []int{10, 20}, g.Achievements())
	assert.Equal(t, 1, store.achievementSaves)
}

func TestCheckAchievements_WriteFailure(t *testing.T) {
	store := &memStore{failWrites: true}
	g := New(DefaultConfig(10, 10), store)

	assert.Equal(t, []int{10}, g.CheckAchievements(10))
	assert.Equal(t, []int{10}, g.Achievements(), "kept in memory")
}
