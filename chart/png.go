package chart

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	width  = 6.4 * vg.Inch
	height = 4.8 * vg.Inch
	dpi    = 300
	pad    = dpi / 10 // pixels kept around the trimmed content
)

// SaveIn writes p as dir/name.png and returns the file path.
func SaveIn(p *plot.Plot, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating charts directory: %w", err)
	}
	filename := filepath.Join(dir, name+".png")
	if err := Save(p, filename); err != nil {
		return "", err
	}
	log.Printf("Wrote chart %s", filename)
	return filename, nil
}

// Save writes p as a PNG file.
func Save(p *plot.Plot, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WritePNG(p, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", filename, err)
	}
	return f.Close()
}

// WritePNG renders p at 300 DPI, trims the blank margins, and encodes it as
// PNG with its resolution recorded.
func WritePNG(p *plot.Plot, w io.Writer) error {
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))
	var buf bytes.Buffer
	if err := png.Encode(&buf, trim(c.Image(), pad)); err != nil {
		return err
	}
	data, err := withResolution(buf.Bytes(), dpi)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// pngHeader is the PNG signature followed by the IHDR chunk, which always comes first.
const pngHeader = 8 + 4 + 4 + 13 + 4

// withResolution inserts a pHYs chunk after the IHDR chunk of an encoded PNG.
func withResolution(data []byte, dpi int) ([]byte, error) {
	if len(data) < pngHeader || string(data[12:16]) != "IHDR" {
		return nil, errors.New("not a PNG stream")
	}
	ppm := uint32(math.Round(float64(dpi) / 0.0254)) // pixels per meter

	chunk := make([]byte, 0, 4+4+9+4)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, "pHYs"...)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1) // unit is the meter
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	res := make([]byte, 0, len(data)+len(chunk))
	res = append(res, data[:pngHeader]...)
	res = append(res, chunk...)
	return append(res, data[pngHeader:]...), nil
}

// trim crops the uniform border of img, keeping pad pixels around the content.
// The border color is the one of the top left pixel.
func trim(img image.Image, pad int) image.Image {
	b := img.Bounds()
	if b.Empty() {
		return img
	}
	bg := color.RGBAModel.Convert(img.At(b.Min.X, b.Min.Y))
	content := image.Rectangle{Min: b.Max, Max: b.Min}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) == bg {
				continue
			}
			content.Min.X = min(content.Min.X, x)
			content.Min.Y = min(content.Min.Y, y)
			content.Max.X = max(content.Max.X, x+1)
			content.Max.Y = max(content.Max.Y, y+1)
		}
	}
	if content.Empty() {
		return img
	}
	content = image.Rect(content.Min.X-pad, content.Min.Y-pad, content.Max.X+pad, content.Max.Y+pad).Intersect(b)

	dst := image.NewRGBA(image.Rect(0, 0, content.Dx(), content.Dy()))
	xdraw.Copy(dst, image.Point{}, img, content, xdraw.Src, nil)
	return dst
}
