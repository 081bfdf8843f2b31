package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"rabbitview/engine/assets"
	"rabbitview/engine/core"
)

// channelFormats maps a channel count to the matching sized internal format
// and pixel transfer format. Total and deterministic; anything outside 1..4
// is reported and treated as RGBA.
func channelFormats(channels uint8) (internal uint32, format uint32) {
	switch channels {
	case 1:
		return gl.R8, gl.RED
	case 2:
		return gl.RG8, gl.RG
	case 3:
		return gl.RGB8, gl.RGB
	case 4:
		return gl.RGBA8, gl.RGBA
	default:
		core.LogError("invalid texture format (%d channels)", channels)
		return gl.RGBA8, gl.RGBA
	}
}

// createTexture2D allocates immutable single-level storage, uploads the
// pixel data if present and generates the full mipmap chain. Linear
// filtering, repeat wrapping.
func createTexture2D(internal uint32, width, height int32, format uint32, data []uint8) uint32 {
	var textureID uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &textureID)
	gl.TextureStorage2D(textureID, 1, internal, width, height)

	gl.TextureParameteri(textureID, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TextureParameteri(textureID, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TextureParameteri(textureID, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TextureParameteri(textureID, gl.TEXTURE_WRAP_T, gl.REPEAT)

	if len(data) > 0 {
		gl.TextureSubImage2D(textureID, 0, 0, 0, width, height, format, gl.UNSIGNED_BYTE, unsafe.Pointer(&data[0]))
	}

	gl.GenerateTextureMipmap(textureID)

	return textureID
}

func (b *Backend) CreateTexture(image *assets.ImageData) error {
	internal, format := channelFormats(image.ChannelCount)

	if b.texture != 0 {
		gl.DeleteTextures(1, &b.texture)
	}
	b.texture = createTexture2D(internal, int32(image.Width), int32(image.Height), format, image.Pixels)
	return nil
}
