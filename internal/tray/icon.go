package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"sync"
)

const iconSize = 32

var (
	iconOnce sync.Once
	iconData []byte
)

// Icon returns the tray icon as an .ico file holding one PNG image.
func Icon() []byte {
	iconOnce.Do(func() {
		iconData = encodeICO(drawIcon())
	})
	return iconData
}

// drawIcon paints a rounded tile with three shelf bars.
func drawIcon() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	tile := color.NRGBA{R: 0x2b, G: 0x6c, B: 0xd9, A: 0xff}
	bar := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			if !inRoundedRect(x, y, iconSize, 6) {
				continue
			}
			img.SetNRGBA(x, y, tile)
		}
	}
	for _, top := range []int{8, 15, 22} {
		for y := top; y < top+3; y++ {
			for x := 7; x < iconSize-7; x++ {
				img.SetNRGBA(x, y, bar)
			}
		}
	}
	return img
}

func inRoundedRect(x, y, size, r int) bool {
	cx, cy := x, y
	switch {
	case x < r:
		cx = r
	case x >= size-r:
		cx = size - r - 1
	}
	switch {
	case y < r:
		cy = r
	case y >= size-r:
		cy = size - r - 1
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// encodeICO wraps a PNG in the ICONDIR/ICONDIRENTRY header Windows expects.
func encodeICO(img image.Image) []byte {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil
	}

	const headerSize = 6 + 16
	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	w(uint16(0)) // reserved
	w(uint16(1)) // type: icon
	w(uint16(1)) // count

	b := img.Bounds()
	w(uint8(b.Dx()))
	w(uint8(b.Dy()))
	w(uint8(0))  // palette
	w(uint8(0))  // reserved
	w(uint16(1)) // planes
	w(uint16(32))
	w(uint32(pngBuf.Len()))
	w(uint32(headerSize))

	buf.Write(pngBuf.Bytes())
	return buf.Bytes()
}
