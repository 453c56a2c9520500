package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-assets/internal/assets"
	"github.com/Faultbox/midgard-assets/pkg/fileformat"
	"github.com/Faultbox/midgard-assets/pkg/meta"
)

func metaCommand() *cli.Command {
	return &cli.Command{
		Name:  "meta",
		Usage: "Inspect and create metadata files",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print metadata records",
				ArgsUsage: "<asset-or-meta-file>...",
				Action:    cmdMetaShow,
			},
			{
				Name:      "check",
				Usage:     "Parse every metadata file in a directory",
				ArgsUsage: "[dir]",
				Action:    cmdMetaCheck,
			},
			{
				Name:      "new",
				Usage:     "Create a metadata file for an asset",
				ArgsUsage: "<asset-file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Asset type (TEXTURE, PIXMAP_TEXTURE, TERRAIN, MODEL); guessed from the extension if empty",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing metadata file",
					},
				},
				Action: cmdMetaNew,
			},
		},
	}
}

func cmdMetaShow(ctx context.Context, cmd *cli.Command) error {
	if _, err := setup(cmd); err != nil {
		return err
	}
	if !cmd.Args().Present() {
		return fmt.Errorf("usage: assettool meta show <asset-or-meta-file>...")
	}

	for i, arg := range cmd.Args().Slice() {
		path := arg
		if !meta.IsMetaFile(path) {
			path = meta.MetaPath(path)
		}
		rec, err := meta.Load(path)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("File:     %s\n", path)
		printRecord(os.Stdout, rec)
	}
	return nil
}

// printRecord writes a human-readable summary of rec.
func printRecord(w io.Writer, rec meta.Record) {
	fmt.Fprintf(w, "Type:     %s\n", rec.Type())
	fmt.Fprintf(w, "UUID:     %s\n", rec.UUID)
	fmt.Fprintf(w, "Version:  %d\n", rec.Version)
	fmt.Fprintf(w, "Modified: %s\n", rec.LastModified.Local().Format(time.RFC3339))

	switch p := rec.Payload.(type) {
	case meta.TerrainMeta:
		fmt.Fprintf(w, "Size:     %d\n", p.Size)
		for _, slot := range meta.Slots {
			id := p.Splats[slot]
			if id == "" {
				id = "-"
			}
			fmt.Fprintf(w, "  %-9s %s\n", slot.String()+":", id)
		}
	case meta.ModelMeta:
		color := "-"
		if p.DiffuseColor != nil {
			color = p.DiffuseColor.String()
		}
		texture := p.DiffuseTexture
		if texture == "" {
			texture = "-"
		}
		fmt.Fprintf(w, "Diffuse:  color %s, texture %s\n", color, texture)
	}
}

type checkResult struct {
	path string
	err  error
}

// checkMetaFiles parses every file concurrently and returns the failures
// in input order.
func checkMetaFiles(ctx context.Context, paths []string) ([]checkResult, error) {
	errs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := meta.Load(p)
			if err == nil {
				err = rec.Validate()
			}
			errs[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failed []checkResult
	for i, err := range errs {
		if err != nil {
			failed = append(failed, checkResult{path: paths[i], err: err})
		}
	}
	return failed, nil
}

func cmdMetaCheck(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	dir := dirArg(cmd, cfg)

	paths, err := assets.FindMetaFiles(dir)
	if err != nil {
		return err
	}
	failed, err := checkMetaFiles(ctx, paths)
	if err != nil {
		return err
	}

	for _, f := range failed {
		fmt.Printf("FAIL  %s: %v\n", f.path, f.err)
	}
	fmt.Printf("%d files, %d ok, %d failed\n", len(paths), len(paths)-len(failed), len(failed))

	if len(failed) > 0 {
		return fmt.Errorf("%d invalid metadata files", len(failed))
	}
	return nil
}

// guessType picks an asset type from a file extension.
func guessType(file string) (meta.AssetType, error) {
	switch {
	case fileformat.IsTerra(file):
		return meta.TypeTerrain, nil
	case fileformat.Is3DFormat(file):
		return meta.TypeModel, nil
	case fileformat.IsImage(file):
		return meta.TypeTexture, nil
	}
	return 0, fmt.Errorf("cannot guess asset type of %s, use --type", file)
}

// newPayload returns an empty payload for t.
func newPayload(t meta.AssetType, terrainSize int) meta.Payload {
	switch t {
	case meta.TypeTerrain:
		return meta.TerrainMeta{Size: terrainSize}
	case meta.TypeModel:
		return meta.ModelMeta{}
	case meta.TypePixmapTexture:
		return meta.TextureMeta{Pixmap: true}
	default:
		return meta.TextureMeta{}
	}
}

func cmdMetaNew(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: assettool meta new [--type TYPE] <asset-file>")
	}
	file := cmd.Args().First()

	var t meta.AssetType
	if name := cmd.String("type"); name != "" {
		t, err = meta.ParseAssetType(strings.ToUpper(name))
	} else {
		t, err = guessType(file)
	}
	if err != nil {
		return err
	}

	path := meta.MetaPath(file)
	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s exists, use --force to replace it", path)
	}

	rec := meta.NewRecord(newPayload(t, cfg.Terrain.DefaultSize), time.Now())
	if err := meta.Save(path, rec); err != nil {
		return err
	}
	fmt.Printf("Created %s (%s %s)\n", path, rec.Type(), rec.UUID)
	return nil
}
