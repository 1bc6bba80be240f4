package sim

import "sort"

// Rank 排行榜中的一行
type Rank struct {
	Name   string  `json:"name" msgpack:"name"`
	Score  float64 `json:"score" msgpack:"score"`
	Player bool    `json:"isPlayer" msgpack:"isPlayer"`
}

// rank 仅统计存活的蛇，按分数降序取前 LeaderboardSize 名
func (w *World) rank() []Rank {
	var out []Rank
	for _, s := range w.snakes() {
		if s.Alive() {
			out = append(out, Rank{Name: s.Name, Score: s.Score, Player: !s.IsBot()})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > LeaderboardSize {
		out = out[:LeaderboardSize]
	}
	return out
}
