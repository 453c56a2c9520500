// Package terrain holds the in-memory terrain object built from a decoded
// heightfield: its vertex grid, normals, bounds and splat texture channels.
package terrain

import "github.com/Faultbox/midgard-assets/pkg/math"

// Vertex represents a terrain mesh vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord [2]float32
}

// Mesh holds the terrain grid ready for upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Texture is the renderer's view of a texture asset.
type Texture interface {
	UUID() string
}

// Channel is a splat texture channel.
type Channel int

// Splat channels. Base is drawn where the splatmap weights sum to zero.
const (
	ChannelBase Channel = iota
	ChannelR
	ChannelG
	ChannelB
	ChannelA

	channelCount = 5
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelBase:
		return "base"
	case ChannelR:
		return "r"
	case ChannelG:
		return "g"
	case ChannelB:
		return "b"
	case ChannelA:
		return "a"
	default:
		return "unknown"
	}
}

// SplatMap wraps the texture holding per-pixel channel weights.
type SplatMap struct {
	Texture Texture
}

// NewSplatMap wraps tex as a splatmap.
func NewSplatMap(tex Texture) *SplatMap {
	return &SplatMap{Texture: tex}
}

// SplatTexture binds a paint texture to a channel.
type SplatTexture struct {
	Channel Channel
	Texture Texture
}

// NewSplatTexture wraps tex for channel.
func NewSplatTexture(channel Channel, tex Texture) SplatTexture {
	return SplatTexture{Channel: channel, Texture: tex}
}
