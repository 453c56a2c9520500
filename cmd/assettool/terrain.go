package main

import (
	"context"
	"fmt"
	stdmath "math"

	"github.com/urfave/cli/v3"

	"github.com/Faultbox/midgard-assets/internal/assets"
	"github.com/Faultbox/midgard-assets/internal/terrain"
	"github.com/Faultbox/midgard-assets/pkg/terra"
)

func terrainCommand() *cli.Command {
	return &cli.Command{
		Name:  "terrain",
		Usage: "Inspect and create heightfields",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Show heightfield statistics",
				ArgsUsage: "<file.terra>",
				Action:    cmdTerrainInfo,
			},
			{
				Name:      "import",
				Usage:     "Create a flat terrain with a fresh metadata file",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "size", Usage: "World-space edge length (default from config)"},
					&cli.IntFlag{Name: "resolution", Usage: "Vertices per edge (default from config)"},
					&cli.StringFlag{Name: "dir", Usage: "Target directory (default project dir)"},
				},
				Action: cmdTerrainImport,
			},
		},
	}
}

type heightStats struct {
	samples    int
	resolution int
	min, max   float32
	mean       float64
}

func computeHeightStats(heights []float32) heightStats {
	s := heightStats{
		samples:    len(heights),
		resolution: int(stdmath.Sqrt(float64(len(heights)))),
	}
	if len(heights) == 0 {
		return s
	}

	s.min, s.max = heights[0], heights[0]
	var sum float64
	for _, h := range heights {
		s.min = min(s.min, h)
		s.max = max(s.max, h)
		sum += float64(h)
	}
	s.mean = sum / float64(len(heights))
	return s
}

func cmdTerrainInfo(ctx context.Context, cmd *cli.Command) error {
	if _, err := setup(cmd); err != nil {
		return err
	}
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: assettool terrain info <file.terra>")
	}
	file := cmd.Args().First()

	heights, err := terra.DecodeFile(file)
	if err != nil {
		return err
	}
	s := computeHeightStats(heights)

	fmt.Printf("File:       %s\n", file)
	fmt.Printf("Samples:    %d\n", s.samples)
	fmt.Printf("Resolution: %dx%d\n", s.resolution, s.resolution)
	if extra := s.samples - s.resolution*s.resolution; extra > 0 {
		fmt.Printf("Ignored:    %d trailing samples\n", extra)
	}
	fmt.Printf("Height:     min %.3f, max %.3f, mean %.3f\n", s.min, s.max, s.mean)

	if s.resolution >= 2 {
		t := terrain.New(1, heights)
		t.Update()
		fmt.Printf("Triangles:  %d\n", len(t.Mesh().Indices)/3)
	}
	return nil
}

func cmdTerrainImport(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: assettool terrain import [--size N] [--resolution N] <name>")
	}

	size := cfg.Terrain.DefaultSize
	if cmd.IsSet("size") {
		size = int(cmd.Int("size"))
	}
	resolution := cfg.Terrain.DefaultResolution
	if cmd.IsSet("resolution") {
		resolution = int(cmd.Int("resolution"))
	}
	dir := cfg.Project.Dir
	if cmd.IsSet("dir") {
		dir = cmd.String("dir")
	}

	t, err := assets.NewRegistry().ImportTerrain(dir, cmd.Args().First(), size, resolution)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %s (%s, size %d, %dx%d)\n", t.File(), t.UUID(), size, resolution, resolution)
	return nil
}
