//go:build ebiten

package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"github.com/spf13/cobra"

	"vajontsim/internal/app"
)

func main() {
	cfg := app.NewConfig()

	root := &cobra.Command{
		Use:   "vajont",
		Short: "Interactive visualization of the 1963 Vajont dam disaster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	cfg.Bind(root.Flags())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg *app.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	game := app.New(cfg, logger)

	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle("vajont - reservoir disaster sequence")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize((app.ViewWidth+app.PanelWidth)*scale, app.ScreenHeight*scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
