package meta

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/magiconair/properties"
)

// Property keys.
const (
	KeyVersion      = "version"
	KeyType         = "type"
	KeyUUID         = "uuid"
	KeyLastModified = "last_modified"

	KeyDiffuseColor   = "mat.diffuse.color"
	KeyDiffuseTexture = "mat.diffuse.texture"

	KeyTerrainSize     = "terrain.size"
	KeyTerrainSplatmap = "terrain.mat.splatmap"
	KeyTerrainSplatB   = "terrain.mat.splat.b"
	KeyTerrainSplatA   = "terrain.mat.splat.a"
	KeyTerrainSplatR   = "terrain.mat.splat.r"
	KeyTerrainSplatG   = "terrain.mat.splat.g"
	KeyTerrainBase     = "terrain.mat.splat.base"
)

// SlotKeys maps each terrain slot to its property key.
var SlotKeys = [SlotCount]string{
	SlotSplatmap: KeyTerrainSplatmap,
	SlotBase:     KeyTerrainBase,
	SlotR:        KeyTerrainSplatR,
	SlotG:        KeyTerrainSplatG,
	SlotB:        KeyTerrainSplatB,
	SlotA:        KeyTerrainSplatA,
}

// header is written at the top of every file. Two comment lines.
const header = "#!!! WARNING, DO NOT MODIFY OR DELETE !!!\n" +
	"#This file is machine generated. If you delete or modify this, the editor might not work anymore.\n"

// Property files are ISO-8859-1 with \uXXXX escapes, as written by java.util.Properties.
var encoding = properties.ISO_8859_1

// Encode writes r in property file form. Only keys belonging to the record's
// asset type are written.
func Encode(w io.Writer, r Record) error {
	if r.Payload == nil {
		return errors.New("meta: record has no payload")
	}

	p := properties.NewProperties()
	p.DisableExpansion = true

	set := func(key, value string) error {
		if _, _, err := p.Set(key, value); err != nil {
			return fmt.Errorf("meta: setting %s: %w", key, err)
		}
		return nil
	}

	kv := [][2]string{
		{KeyVersion, strconv.Itoa(r.Version)},
		{KeyType, r.Type().String()},
		{KeyUUID, r.UUID},
		{KeyLastModified, strconv.FormatInt(r.LastModified.UnixMilli(), 10)},
	}

	switch m := r.Payload.(type) {
	case ModelMeta:
		if m.DiffuseColor != nil {
			kv = append(kv, [2]string{KeyDiffuseColor, m.DiffuseColor.String()})
		}
		if m.DiffuseTexture != "" {
			kv = append(kv, [2]string{KeyDiffuseTexture, m.DiffuseTexture})
		}
	case TerrainMeta:
		for _, slot := range Slots {
			if id := m.Splats[slot]; id != "" {
				kv = append(kv, [2]string{SlotKeys[slot], id})
			}
		}
		kv = append(kv, [2]string{KeyTerrainSize, strconv.Itoa(m.Size)})
	}

	for _, e := range kv {
		if err := set(e[0], e[1]); err != nil {
			return err
		}
	}

	var body strings.Builder
	if _, err := p.Write(&body, encoding); err != nil {
		return err
	}

	// The encoder separates with " = ". Keys are fixed and never contain it,
	// so the first occurrence on a line is the separator.
	var out strings.Builder
	out.WriteString(header)
	for _, line := range strings.SplitAfter(body.String(), "\n") {
		if k, v, ok := strings.Cut(line, " = "); ok {
			line = k + "=" + v
		}
		out.WriteString(line)
	}
	_, err := io.WriteString(w, out.String())
	return err
}

// Decode parses a property stream into a record.
func Decode(rd io.Reader) (Record, error) {
	return decode(rd, "")
}

func decode(rd io.Reader, path string) (Record, error) {
	buf, err := io.ReadAll(rd)
	if err != nil {
		return Record{}, &IOError{Op: "read", Path: path, Err: err}
	}

	loader := properties.Loader{Encoding: encoding, DisableExpansion: true}
	p, err := loader.LoadBytes(buf)
	if err != nil {
		return Record{}, &ParseError{Path: path, Err: err}
	}

	fail := func(key string, err error) (Record, error) {
		return Record{}, &ParseError{Path: path, Key: key, Err: err}
	}

	var r Record

	version, err := requiredInt(p, KeyVersion)
	if err != nil {
		return fail(KeyVersion, err)
	}
	if version < 1 || version > CurrentVersion {
		return fail(KeyVersion, fmt.Errorf("unsupported version %d", version))
	}
	r.Version = int(version)

	typeTag, err := required(p, KeyType)
	if err != nil {
		return fail(KeyType, err)
	}
	assetType, err := ParseAssetType(typeTag)
	if err != nil {
		return fail(KeyType, err)
	}

	if r.UUID, err = required(p, KeyUUID); err != nil {
		return fail(KeyUUID, err)
	}

	millis, err := requiredInt(p, KeyLastModified)
	if err != nil {
		return fail(KeyLastModified, err)
	}
	r.LastModified = time.UnixMilli(millis).UTC()

	switch assetType {
	case TypeModel:
		var m ModelMeta
		if s, ok := optional(p, KeyDiffuseColor); ok {
			c, err := ParseColor(s)
			if err != nil {
				return fail(KeyDiffuseColor, err)
			}
			m.DiffuseColor = &c
		}
		m.DiffuseTexture, _ = optional(p, KeyDiffuseTexture)
		r.Payload = m

	case TypeTerrain:
		m := TerrainMeta{Size: DefaultTerrainSize}
		if s, ok := optional(p, KeyTerrainSize); ok {
			size, err := strconv.Atoi(s)
			if err != nil {
				return fail(KeyTerrainSize, err)
			}
			if size < 1 {
				return fail(KeyTerrainSize, fmt.Errorf("terrain size must be positive, got %d", size))
			}
			m.Size = size
		}
		for _, slot := range Slots {
			m.Splats[slot], _ = optional(p, SlotKeys[slot])
		}
		r.Payload = m

	case TypeTexture:
		r.Payload = TextureMeta{}
	case TypePixmapTexture:
		r.Payload = TextureMeta{Pixmap: true}
	}

	return r, nil
}

var errMissing = errors.New("missing required key")

func required(p *properties.Properties, key string) (string, error) {
	v, ok := optional(p, key)
	if !ok {
		return "", errMissing
	}
	return v, nil
}

func requiredInt(p *properties.Properties, key string) (int64, error) {
	v, err := required(p, key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// optional returns a trimmed, non-empty value.
func optional(p *properties.Properties, key string) (string, bool) {
	v, ok := p.Get(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
