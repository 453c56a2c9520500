package terrain

// TerrainTexture holds the splatmap and the paint textures of a terrain.
type TerrainTexture struct {
	splatmap *SplatMap
	textures [channelCount]*SplatTexture
}

// SetSplatmap replaces the splatmap. nil removes it.
func (t *TerrainTexture) SetSplatmap(sm *SplatMap) {
	t.splatmap = sm
}

// Splatmap returns the current splatmap, or nil.
func (t *TerrainTexture) Splatmap() *SplatMap {
	return t.splatmap
}

// SetSplatTexture binds st to its channel, replacing any previous binding.
func (t *TerrainTexture) SetSplatTexture(st SplatTexture) {
	if st.Channel < 0 || int(st.Channel) >= channelCount {
		return
	}
	t.textures[st.Channel] = &st
}

// RemoveTexture clears a channel. Clearing an empty channel is a no-op.
func (t *TerrainTexture) RemoveTexture(c Channel) {
	if c < 0 || int(c) >= channelCount {
		return
	}
	t.textures[c] = nil
}

// Texture returns the texture bound to c, or nil.
func (t *TerrainTexture) Texture(c Channel) *SplatTexture {
	if c < 0 || int(c) >= channelCount {
		return nil
	}
	return t.textures[c]
}

// Count returns the number of bound paint channels.
func (t *TerrainTexture) Count() int {
	n := 0
	for _, st := range t.textures {
		if st != nil {
			n++
		}
	}
	return n
}
