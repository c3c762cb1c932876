package icon

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"sort"

	"golang.org/x/image/draw"
)

const maxEntrySize = 256

// Resample scales src to a size x size square with an anti-aliasing kernel
func Resample(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Entries builds one image per requested size, largest first. The canonical
// image is used unchanged for its own size rather than resampled.
func Entries(canonical image.Image, sizes []int) ([]image.Image, error) {
	uniq := make(map[int]bool)
	var list []int
	for _, s := range sizes {
		if s < 1 || s > maxEntrySize {
			return nil, fmt.Errorf("icon size %d out of range 1-%d", s, maxEntrySize)
		}
		if !uniq[s] {
			uniq[s] = true
			list = append(list, s)
		}
	}
	if len(list) == 0 {
		return nil, errors.New("no icon sizes")
	}
	sort.Sort(sort.Reverse(sort.IntSlice(list)))

	b := canonical.Bounds()
	images := make([]image.Image, 0, len(list))
	for _, s := range list {
		if b.Dx() == s && b.Dy() == s {
			images = append(images, canonical)
			continue
		}
		images = append(images, Resample(canonical, s))
	}
	return images, nil
}

// EncodeICO writes images as a PNG-compressed ICO container
func EncodeICO(w io.Writer, images []image.Image) error {
	if len(images) == 0 {
		return errors.New("no images to encode")
	}

	var pngData [][]byte
	for _, img := range images {
		b := img.Bounds()
		if b.Dx() > maxEntrySize || b.Dy() > maxEntrySize {
			return fmt.Errorf("image %dx%d too large for ICO", b.Dx(), b.Dy())
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		pngData = append(pngData, buf.Bytes())
	}

	bw := bufio.NewWriter(w)

	// ICONDIR: reserved, type (1 = icon), count
	binary.Write(bw, binary.LittleEndian, uint16(0))
	binary.Write(bw, binary.LittleEndian, uint16(1))
	binary.Write(bw, binary.LittleEndian, uint16(len(images)))

	offset := uint32(6 + len(images)*16)
	for i, img := range images {
		b := img.Bounds()

		// ICONDIRENTRY; 0 means 256
		bw.WriteByte(uint8(b.Dx() % 256))
		bw.WriteByte(uint8(b.Dy() % 256))
		bw.WriteByte(0)                                   // color count
		bw.WriteByte(0)                                   // reserved
		binary.Write(bw, binary.LittleEndian, uint16(1))  // planes
		binary.Write(bw, binary.LittleEndian, uint16(32)) // bits per pixel
		binary.Write(bw, binary.LittleEndian, uint32(len(pngData[i])))
		binary.Write(bw, binary.LittleEndian, offset)

		offset += uint32(len(pngData[i]))
	}

	for _, data := range pngData {
		if _, err := bw.Write(data); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeICO reads back the PNG entries of an ICO file, in file order
func DecodeICO(data []byte) ([]image.Image, error) {
	if len(data) < 6 {
		return nil, errors.New("ico: short header")
	}
	if binary.LittleEndian.Uint16(data[0:]) != 0 || binary.LittleEndian.Uint16(data[2:]) != 1 {
		return nil, errors.New("ico: bad header")
	}
	count := int(binary.LittleEndian.Uint16(data[4:]))
	if len(data) < 6+count*16 {
		return nil, errors.New("ico: short directory")
	}

	images := make([]image.Image, 0, count)
	for i := 0; i < count; i++ {
		entry := data[6+i*16 : 6+(i+1)*16]
		size := binary.LittleEndian.Uint32(entry[8:])
		off := binary.LittleEndian.Uint32(entry[12:])
		if uint64(off)+uint64(size) > uint64(len(data)) {
			return nil, fmt.Errorf("ico: entry %d out of bounds", i)
		}
		img, err := png.Decode(bytes.NewReader(data[off : off+size]))
		if err != nil {
			return nil, fmt.Errorf("ico: entry %d: %w", i, err)
		}
		images = append(images, img)
	}
	return images, nil
}
