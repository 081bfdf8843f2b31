package loaders

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/google/uuid"

	"rabbitview/engine/assets"
	"rabbitview/engine/core"
)

// ImageLoader decodes raster images (JPEG, PNG, BMP, TIFF) into tightly
// packed 8-bit pixel data in the channel layout the renderer asked for.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, params interface{}) (*assets.Resource, error) {
	typedParams, ok := params.(*assets.ImageResourceParams)
	if !ok || typedParams == nil {
		typedParams = &assets.ImageResourceParams{Channels: 4, FlipY: true}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	core.LogDebug("decoded %s (%s, %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())

	data := ConvertPixels(img, typedParams.Channels, typedParams.FlipY)

	return &assets.Resource{
		ID:       uuid.New(),
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     assets.ResourceTypeImage,
		Data:     data,
	}, nil
}

func (il *ImageLoader) Unload(*assets.Resource) error {
	return nil
}

// ConvertPixels repacks a decoded image into the requested channel layout,
// optionally flipping rows so row 0 becomes the visual bottom. Channel
// counts outside 1..4 are reported and treated as 4.
func ConvertPixels(img image.Image, channels uint8, flipY bool) *assets.ImageData {
	if channels < 1 || channels > 4 {
		core.LogError("invalid channel count %d, using 4", channels)
		channels = 4
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]uint8, width*height*int(channels))

	i := 0
	for row := 0; row < height; row++ {
		y := bounds.Min.Y + row
		if flipY {
			y = bounds.Max.Y - 1 - row
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			switch channels {
			case 1:
				pixels[i] = luminance(c)
			case 2:
				pixels[i] = luminance(c)
				pixels[i+1] = c.A
			case 3:
				pixels[i] = c.R
				pixels[i+1] = c.G
				pixels[i+2] = c.B
			case 4:
				pixels[i] = c.R
				pixels[i+1] = c.G
				pixels[i+2] = c.B
				pixels[i+3] = c.A
			}
			i += int(channels)
		}
	}

	return &assets.ImageData{
		Width:        uint32(width),
		Height:       uint32(height),
		ChannelCount: channels,
		Pixels:       pixels,
	}
}

// Integer rec601 weighting, same as stb_image's greyscale conversion.
func luminance(c color.NRGBA) uint8 {
	return uint8((int(c.R)*77 + int(c.G)*150 + int(c.B)*29) >> 8)
}
