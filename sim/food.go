package sim

import "math/rand"

// Food 可被吃掉的静态食物
type Food struct {
	X      float64
	Y      float64
	Radius float64
	Value  int // 吃掉后增长的长度
	Color  string
	Glow   bool // 高价值食物（特殊食物或尸体）
}

// NewFood 在世界内随机生成一个食物，小概率生成发光的特殊食物
func NewFood(r *rand.Rand, width, height float64) *Food {
	f := &Food{
		X:      float64(randInt(r, 0, int(width))),
		Y:      float64(randInt(r, 0, int(height))),
		Radius: float64(randInt(r, 3, 6)),
		Value:  1,
		Color:  RandomColor(r),
	}
	if r.Float64() < FoodSpecialChance {
		f.Radius += 3
		f.Value = 5
		f.Glow = true
	}
	return f
}

// NewCorpseFood 死亡蛇身体上掉落的食物
func NewCorpseFood(x, y float64, color string) *Food {
	return &Food{
		X:      x,
		Y:      y,
		Radius: CorpseFoodRadius,
		Value:  CorpseFoodValue,
		Color:  color,
		Glow:   true,
	}
}
