package assets

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-assets/pkg/meta"
	"github.com/Faultbox/midgard-assets/pkg/terra"
)

// Registry holds the assets of a project keyed by UUID.
type Registry struct {
	mu     sync.RWMutex
	assets map[string]Asset
	files  map[string]string // asset file -> uuid

	// Stats
	hits   int
	misses int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		assets: make(map[string]Asset),
		files:  make(map[string]string),
	}
}

// Add registers a. Re-adding the same asset is a no-op; a different asset
// with a registered UUID is rejected.
func (r *Registry) Add(a Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(a)
}

func (r *Registry) add(a Asset) error {
	if prev, ok := r.assets[a.UUID()]; ok && prev != a {
		return fmt.Errorf("%w: %s (%s and %s)", ErrDuplicate, a.UUID(), prev.File(), a.File())
	}
	r.assets[a.UUID()] = a
	r.files[a.File()] = a.UUID()
	return nil
}

// Remove unregisters the asset with id. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(id)
}

func (r *Registry) remove(id string) {
	if a, ok := r.assets[id]; ok {
		delete(r.files, a.File())
		delete(r.assets, id)
	}
}

// Get returns the asset with id.
func (r *Registry) Get(id string) (Asset, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *Registry) get(id string) (Asset, bool) {
	a, ok := r.assets[id]
	if ok {
		r.hits++
	} else {
		r.misses++
	}
	return a, ok
}

// Texture returns the texture asset with id.
func (r *Registry) Texture(id string) (*TextureAsset, bool) {
	a, _ := r.Get(id)
	t, ok := a.(*TextureAsset)
	return t, ok
}

// Terrain returns the terrain asset with id.
func (r *Registry) Terrain(id string) (*TerrainAsset, bool) {
	a, _ := r.Get(id)
	t, ok := a.(*TerrainAsset)
	return t, ok
}

// Model returns the model asset with id.
func (r *Registry) Model(id string) (*ModelAsset, bool) {
	a, _ := r.Get(id)
	m, ok := a.(*ModelAsset)
	return m, ok
}

// ByFile returns the asset registered for an asset file path.
func (r *Registry) ByFile(file string) (Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.files[file]
	if !ok {
		return nil, false
	}
	return r.assets[id], true
}

// All returns every asset sorted by file path.
func (r *Registry) All() []Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File() < out[j].File() })
	return out
}

// Len returns the number of registered assets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}

// Clear removes every asset and resets statistics.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = make(map[string]Asset)
	r.files = make(map[string]string)
	r.hits = 0
	r.misses = 0
}

// Stats returns UUID lookup statistics.
func (r *Registry) Stats() (hits, misses int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hits, r.misses
}

// View calls fn while holding the registry lock, so assets do not change
// under a running Watch. fn must not call other Registry methods.
func (r *Registry) View(fn func()) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn()
}

// FindMetaFiles returns every metadata file under dir, sorted.
func FindMetaFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && meta.IsMetaFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir loads every asset described by a metadata file under dir.
//
// Records are parsed concurrently; any parse failure aborts the load.
// Assets are then built in dependency order: textures, models, terrains.
// Texture and terrain files that fail to load are logged and kept
// registered in their unloaded state. Unknown dependency UUIDs are logged
// and left unbound.
func (r *Registry) LoadDir(ctx context.Context, dir string) error {
	log := assetLog()
	start := time.Now()

	paths, err := FindMetaFiles(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	records := make([]meta.Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := meta.Load(p)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	order := []func(meta.AssetType) bool{
		func(t meta.AssetType) bool { return t == meta.TypeTexture || t == meta.TypePixmapTexture },
		func(t meta.AssetType) bool { return t == meta.TypeModel },
		func(t meta.AssetType) bool { return t == meta.TypeTerrain },
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, match := range order {
		for i, rec := range records {
			if !match(rec.Type()) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := r.build(rec, meta.AssetPath(paths[i]))
			if err != nil {
				return err
			}
			if err := r.add(a); err != nil {
				return err
			}
		}
	}

	log.Info("project loaded",
		zap.String("dir", dir),
		zap.Int("assets", len(records)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// build creates and loads the asset for rec. Callers hold r.mu.
func (r *Registry) build(rec meta.Record, file string) (Asset, error) {
	log := assetLog()

	switch rec.Type() {
	case meta.TypeTexture, meta.TypePixmapTexture:
		t, err := NewTextureAsset(rec, file)
		if err != nil {
			return nil, err
		}
		if err := t.Load(); err != nil {
			log.Warn("texture not loaded", zap.String("uuid", t.UUID()), zap.Error(err))
		}
		return t, nil

	case meta.TypeModel:
		m, err := NewModelAsset(rec, file, nil)
		if err != nil {
			return nil, err
		}
		r.resolveModel(m)
		return m, nil

	case meta.TypeTerrain:
		t, err := NewTerrainAsset(rec, file)
		if err != nil {
			return nil, err
		}
		r.resolveTerrain(t)
		if err := t.Load(); err != nil {
			log.Warn("terrain not loaded", zap.String("uuid", t.UUID()), zap.Error(err))
			return t, nil
		}
		if err := t.ApplyDependencies(); err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s has unsupported type %v", ErrWrongType, file, rec.Type())
}

// ResolveTerrain binds the texture references named by t's record.
// It does not apply them.
func (r *Registry) ResolveTerrain(t *TerrainAsset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolveTerrain(t)
}

func (r *Registry) resolveTerrain(t *TerrainAsset) {
	m, _ := t.Meta().Terrain()
	for _, slot := range meta.Slots {
		id := m.Splats[slot]
		if id == "" {
			t.bindSplat(slot, nil)
			continue
		}
		a, _ := r.get(id)
		tex, ok := a.(*TextureAsset)
		if !ok {
			assetLog().Warn("terrain texture not found",
				zap.String("terrain", t.UUID()),
				zap.Stringer("slot", slot),
				zap.String("texture", id))
		}
		t.bindSplat(slot, tex)
	}
}

func (r *Registry) resolveModel(m *ModelAsset) {
	mm, _ := m.Meta().Model()
	if mm.DiffuseTexture == "" {
		m.diffuse = nil
		return
	}
	a, _ := r.get(mm.DiffuseTexture)
	tex, ok := a.(*TextureAsset)
	if !ok {
		assetLog().Warn("model texture not found",
			zap.String("model", m.UUID()),
			zap.String("texture", mm.DiffuseTexture))
	}
	m.diffuse = tex
}

// rebindDependents re-resolves every terrain and model whose record names id
// and re-applies the loaded terrains. Callers hold r.mu.
func (r *Registry) rebindDependents(id string) {
	if id == "" {
		return
	}
	for _, a := range r.assets {
		switch a := a.(type) {
		case *TerrainAsset:
			m, _ := a.Meta().Terrain()
			if !m.References(id) {
				continue
			}
			r.resolveTerrain(a)
			if a.State() == StateUnloaded {
				continue
			}
			if err := a.ApplyDependencies(); err != nil {
				assetLog().Warn("terrain not re-applied", zap.String("uuid", a.UUID()), zap.Error(err))
			}
		case *ModelAsset:
			mm, _ := a.Meta().Model()
			if mm.DiffuseTexture != id {
				continue
			}
			r.resolveModel(a)
			a.applyDiffuse()
		}
	}
}

// ImportTerrain creates a flat terrain named name in dir: a heightfield of
// resolution*resolution zero samples and a fresh record. The new asset is
// loaded and registered.
func (r *Registry) ImportTerrain(dir, name string, size, resolution int) (*TerrainAsset, error) {
	if size < 1 {
		return nil, fmt.Errorf("terrain size must be positive, got %d", size)
	}
	if resolution < 2 {
		return nil, fmt.Errorf("terrain resolution must be at least 2, got %d", resolution)
	}

	file := filepath.Join(dir, name+"."+terra.Extension)
	if _, err := os.Stat(file); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, file)
	}

	if err := terra.EncodeFile(file, terra.Flat(resolution, 0)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", file, err)
	}
	rec := meta.NewTerrainRecord(size, time.Now())
	if err := meta.Save(meta.MetaPath(file), rec); err != nil {
		return nil, err
	}

	t, err := NewTerrainAsset(rec, file)
	if err != nil {
		return nil, err
	}
	if err := t.Load(); err != nil {
		return nil, err
	}
	if err := r.Add(t); err != nil {
		return nil, err
	}

	assetLog().Info("terrain imported",
		zap.String("uuid", t.UUID()),
		zap.String("file", file),
		zap.Int("size", size),
		zap.Int("resolution", resolution))
	return t, nil
}

// reloadMeta applies a changed metadata file. Existing assets keep their
// identity and runtime state; new records are built from scratch.
func (r *Registry) reloadMeta(path string) (kind string, err error) {
	rec, err := meta.Load(path)
	if err != nil {
		return "", err
	}
	file := meta.AssetPath(path)

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.assets[rec.UUID]
	if !ok {
		oldID, replaced := r.files[file]
		if replaced {
			r.remove(oldID)
		}
		a, err := r.build(rec, file)
		if err != nil {
			if replaced {
				r.rebindDependents(oldID)
			}
			return "", err
		}
		if err := r.add(a); err != nil {
			return "", err
		}
		if replaced {
			r.rebindDependents(oldID)
		}
		r.rebindDependents(a.UUID())
		return "created", nil
	}

	switch a := prev.(type) {
	case *TerrainAsset:
		oldSize := a.Size()
		if err := a.setRecord(rec); err != nil {
			return "", err
		}
		r.resolveTerrain(a)
		if a.State() != StateUnloaded && a.Size() != oldSize {
			if err := a.Load(); err != nil {
				return "", err
			}
		}
		if a.State() != StateUnloaded {
			if err := a.ApplyDependencies(); err != nil {
				return "", err
			}
		}
	case *ModelAsset:
		if err := a.setRecord(rec); err != nil {
			return "", err
		}
		r.resolveModel(a)
		a.applyDiffuse()
	case *TextureAsset:
		if _, ok := rec.Payload.(meta.TextureMeta); !ok {
			return "", fmt.Errorf("%w: %s is %v, want texture", ErrWrongType, file, rec.Type())
		}
		a.record = rec
	}
	return "updated", nil
}

// reloadFile reloads the runtime data of the asset backed by file.
func (r *Registry) reloadFile(file string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.files[file]
	if !ok {
		return false, nil
	}

	switch a := r.assets[id].(type) {
	case *TerrainAsset:
		if err := a.Load(); err != nil {
			return true, err
		}
		return true, a.ApplyDependencies()
	case *TextureAsset:
		return true, a.Load()
	}
	return false, nil
}

// removeFile unregisters the asset whose metadata file was deleted.
func (r *Registry) removeFile(metaPath string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.files[meta.AssetPath(metaPath)]
	if !ok {
		return false
	}
	if t, ok := r.assets[id].(*TerrainAsset); ok {
		t.Dispose()
	}
	r.remove(id)
	r.rebindDependents(id)
	return true
}
