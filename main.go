package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/emame/cli"
	"github.com/user-none/emame/mame/mametest"
	"github.com/user-none/emame/retro"
)

func main() {
	romPath := flag.String("rom", "demo.zip", "path to a ROM archive; the base name selects the game")
	flag.Parse()

	// The real engine is an external library; the built-in reference
	// engine stands in so the whole pipeline is runnable as shipped.
	core := retro.New(mametest.NewEngine())

	runner := cli.NewRunner(core)
	defer runner.Close()

	core.Init()
	defer core.Deinit()

	if err := core.LoadGame(*romPath); err != nil {
		log.Fatalf("Failed to load game: %v", err)
	}

	tps := 60
	if fps := core.GetSystemAVInfo().Timing.FPS; fps > 0 {
		tps = int(fps + 0.5)
	}

	ebiten.SetWindowSize(mametest.DefaultWidth*2, mametest.DefaultHeight*2)
	ebiten.SetWindowTitle(retro.LibraryName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}
