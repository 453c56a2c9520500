package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/Faultbox/midgard-assets/internal/assets"
	"github.com/Faultbox/midgard-assets/internal/logger"
	"github.com/Faultbox/midgard-assets/pkg/meta"
)

func projectCommand() *cli.Command {
	return &cli.Command{
		Name:  "project",
		Usage: "Work with a whole project directory",
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "Load every asset and report its state",
				ArgsUsage: "[dir]",
				Action:    cmdProjectLoad,
			},
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Load a project and hot-reload it on file changes",
		ArgsUsage: "[dir]",
		Action:    cmdWatch,
	}
}

// describe returns a one-line state summary of a.
func describe(a assets.Asset) string {
	switch v := a.(type) {
	case *assets.TerrainAsset:
		bound := 0
		for _, slot := range meta.Slots {
			if v.Splat(slot) != nil {
				bound++
			}
		}
		return fmt.Sprintf("%s, %d/%d textures", v.State(), bound, meta.SlotCount)
	case *assets.TextureAsset:
		if !v.Loaded() {
			return "not loaded"
		}
		w, h := v.Size()
		return fmt.Sprintf("%s %dx%d", v.Format(), w, h)
	case *assets.ModelAsset:
		if v.DiffuseTexture() != nil {
			return "diffuse " + v.DiffuseTexture().UUID()
		}
		return "-"
	}
	return ""
}

func loadProject(ctx context.Context, dir string) (*assets.Registry, error) {
	reg := assets.NewRegistry()
	if err := reg.LoadDir(ctx, dir); err != nil {
		return nil, err
	}
	return reg, nil
}

func cmdProjectLoad(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	dir := dirArg(cmd, cfg)

	reg, err := loadProject(ctx, dir)
	if err != nil {
		return err
	}

	for _, a := range reg.All() {
		rel, err := filepath.Rel(dir, a.File())
		if err != nil {
			rel = a.File()
		}
		fmt.Printf("%-16s %-36s %-32s %s\n", a.Meta().Type(), a.UUID(), rel, describe(a))
	}
	fmt.Printf("%d assets\n", reg.Len())
	return nil
}

func cmdWatch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	dir := dirArg(cmd, cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := loadProject(ctx, dir)
	if err != nil {
		return err
	}
	logger.Sugar.Infof("watching %s (%d assets), press Ctrl+C to stop", dir, reg.Len())

	return assets.Watch(ctx, reg, dir, func(kind, path string) {
		fmt.Printf("%-8s %s\n", kind, path)
	})
}
