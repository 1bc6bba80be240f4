package sim

import "flag"

// BindFlags 把世界参数注册到命令行，默认值取自 c 当前的值
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.Width, "width", c.Width, "world width")
	fs.Float64Var(&c.Height, "height", c.Height, "world height")
	fs.IntVar(&c.FoodTarget, "food", c.FoodTarget, "target food count")
	fs.Float64Var(&c.FoodSpawnChance, "food-chance", c.FoodSpawnChance, "per-tick food replenish probability")
	fs.IntVar(&c.BotTarget, "bots", c.BotTarget, "target bot count")
	fs.Float64Var(&c.BotRespawnDelay, "bot-respawn", c.BotRespawnDelay, "bot respawn delay in seconds")
	fs.IntVar(&c.BodySampleStride, "body-stride", c.BodySampleStride, "history stride for head-body collision")
	fs.IntVar(&c.CorpseStride, "corpse-stride", c.CorpseStride, "history stride for corpse food")
	fs.BoolVar(&c.ScaleMovement, "scale-movement", c.ScaleMovement, "scale movement and turning by dt")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 uses the clock")
}
