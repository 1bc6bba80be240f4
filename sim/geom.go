package sim

import (
	"math"
	"math/rand"
)

// Vec 世界坐标中的一个点
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Palette 蛇与食物的可选颜色
var Palette = []string{
	"#FF0055", "#00FF88", "#00CCFF", "#FFAA00", "#CC00FF", "#FFFF00",
}

// Distance 两点间欧氏距离
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

func Lerp(start, end, t float64) float64 {
	return start*(1-t) + end*t
}

// NormalizeAngle 将角度归一化到 (-π, π]
func NormalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// randRange 返回 [min, max) 内的均匀随机数
func randRange(r *rand.Rand, min, max float64) float64 {
	return r.Float64()*(max-min) + min
}

// randInt 返回 [min, max] 内的整数（含两端）
func randInt(r *rand.Rand, min, max int) int {
	return r.Intn(max-min+1) + min
}

func RandomColor(r *rand.Rand) string {
	return Palette[r.Intn(len(Palette))]
}
