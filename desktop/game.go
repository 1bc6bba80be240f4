package desktop

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"snakearena/sim"
)

// pointer 每次 Update 前从 ebiten 读取鼠标与按键
type pointer struct {
	state sim.PointerState
}

func (p *pointer) Pointer() sim.PointerState { return p.state }

// Game 桌面宿主，实现 ebiten.Game
type Game struct {
	world     *sim.World
	presenter *Presenter
	input     *pointer
	log       *zap.Logger

	name   string
	result *sim.Result
	width  int
	height int
}

func NewGame(cfg sim.Config, scores sim.ScoreStore, name string, log *zap.Logger) (*Game, error) {
	g := &Game{
		presenter: NewPresenter(),
		input:     &pointer{},
		log:       log,
		name:      name,
		width:     1280,
		height:    800,
	}
	w, err := sim.NewWorld(cfg, sim.Ports{
		Input:  g.input,
		Screen: g.presenter,
		Host:   sim.HostFunc(func(r sim.Result) { g.result = &r }),
		Scores: scores,
	}, sim.WithLogger(log))
	if err != nil {
		return nil, err
	}
	g.world = w
	w.Start(name)
	return g, nil
}

// Update 固定 TPS 调用；dt 取 1/TPS
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	mx, my := ebiten.CursorPosition()
	g.input.state = sim.PointerState{
		X:       float64(mx),
		Y:       float64(my),
		ScreenW: float64(g.width),
		ScreenH: float64(g.height),
		Dash:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace),
	}

	if g.result != nil &&
		(inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)) {
		g.result = nil
		g.world.Start(g.name)
		g.log.Info("restart", zap.String("player", g.name))
	}

	g.world.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.presenter.Begin(screen)
	g.world.Draw()

	if p := g.world.Player(); p != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  Length: %d", int(p.Score), int(p.Length)), 10, 10)
	}
	ebitenutil.DebugPrintAt(screen, "Leaderboard", g.width-150, 10)
	for i, r := range g.world.Leaderboard() {
		mark := " "
		if r.Player {
			mark = "*"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s%d. %-10.10s %d", mark, i+1, r.Name, int(r.Score)), g.width-150, 28+i*16)
	}

	if g.result != nil {
		lines := []string{
			"GAME OVER",
			fmt.Sprintf("Score: %d   Best: %d", int(g.result.Score), int(g.result.Best)),
			"click or press Enter to play again",
		}
		for i, l := range lines {
			ebitenutil.DebugPrintAt(screen, l, g.width/2-len(l)*3, g.height/2-24+i*18)
		}
	}
}

// Layout 逻辑分辨率跟随窗口大小
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run 打开窗口并阻塞到退出
func (g *Game) Run() error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("snakearena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
