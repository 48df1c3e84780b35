package render

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/brensch/snakecore/engine"
)

// Canvas dimensions match a 64x32 Tidbyt tile, 3x3 pixels per cell,
// identical geometry to renderBoardToImage/renderGameToGIF.
const (
	canvasWidth  = 64
	canvasHeight = 32
	cellSize     = 3
)

// GameGIF encodes frames (one engine.Board per turn, in order) into an
// animated GIF sized for a 64x32 Tidbyt tile, appending a final green or
// red screen depending on won. Grounded on renderGameToGIF.
func GameGIF(frames []engine.Board, won bool) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("render: no frames to encode")
	}

	const totalDurationMS = 13000
	const maxDelayPerFrame = 20
	delayPerFrame := totalDurationMS / len(frames) / 10
	if delayPerFrame > maxDelayPerFrame {
		delayPerFrame = maxDelayPerFrame
	}

	var images []*image.Paletted
	var delays []int

	for i, board := range frames {
		img, palette := renderBoardToImage(board)
		paletted := image.NewPaletted(img.Bounds(), palette)
		draw.FloydSteinberg.Draw(paletted, img.Bounds(), img, image.Point{})
		images = append(images, paletted)
		if i == len(frames)-1 {
			delays = append(delays, 200)
		} else {
			delays = append(delays, delayPerFrame)
		}
	}

	var winScreenPalette color.Palette
	if won {
		winScreenPalette = color.Palette{color.RGBA{0, 255, 0, 255}}
	} else {
		winScreenPalette = color.Palette{color.RGBA{255, 0, 0, 255}}
	}
	finalScreen := image.NewPaletted(image.Rect(0, 0, canvasWidth, canvasHeight), winScreenPalette)
	images = append(images, finalScreen)
	delays = append(delays, 100)

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &gif.GIF{Image: images, Delay: delays}); err != nil {
		return nil, fmt.Errorf("render: encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

func renderBoardToImage(board engine.Board) (*image.RGBA, []color.Color) {
	palette := []color.Color{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{255, 255, 255, 255},
		color.RGBA{255, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
		color.RGBA{0, 0, 255, 255},
		color.RGBA{100, 100, 100, 255},
	}

	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 255}}, image.Point{}, draw.Src)

	width := board.Width()
	height := board.Height()
	offsetX := canvasWidth - width*cellSize

	dividerColor := color.RGBA{100, 100, 100, 255}
	dividerRect := image.Rect(canvasWidth-cellSize*width-1, 0, canvasWidth-cellSize*width, canvasHeight)
	draw.Draw(img, dividerRect, &image.Uniform{dividerColor}, image.Point{}, draw.Src)

	yOffset := 10
	for _, id := range board.AgentIDs() {
		bodyColor := generateColor(id)
		headColor := lighten(bodyColor)
		palette = append(palette, bodyColor, headColor)

		head := board.Head(id)
		for _, idx := range board.Body(id) {
			pos := board.Dimensions.PositionFromIndex(idx)
			flippedY := height - 1 - pos.Y
			c := bodyColor
			if idx == head {
				c = headColor
			}
			drawCell(img, offsetX+pos.X*cellSize, flippedY*cellSize, c)
		}

		addScaledLabel(img, 10, yOffset, fmt.Sprintf("%3d", board.Length(id)), bodyColor)
		yOffset += 20
	}

	green := color.RGBA{0, 255, 0, 255}
	for _, idx := range board.FoodCells() {
		pos := board.Dimensions.PositionFromIndex(idx)
		flippedY := height - 1 - pos.Y
		drawCell(img, offsetX+pos.X*cellSize, flippedY*cellSize, green)
	}

	return img, palette
}

// generateColor derives a stable color from an agent id, the same way
// generateColor hashed a snake's name; ids are stable for a game's
// duration so this reproduces consistent colors across frames.
func generateColor(id engine.AgentID) color.RGBA {
	h := sha1.New()
	fmt.Fprintf(h, "agent-%d", id)
	sum := h.Sum(nil)
	return color.RGBA{sum[0], sum[1], sum[2], 255}
}

func lighten(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: lightenChannel(c.R),
		G: lightenChannel(c.G),
		B: lightenChannel(c.B),
		A: c.A,
	}
}

func lightenChannel(v uint8) uint8 {
	n := int(v) + 30
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

func drawCell(img *image.RGBA, x, y int, c color.RGBA) {
	for i := 0; i < cellSize; i++ {
		for j := 0; j < cellSize; j++ {
			if y+j < canvasHeight {
				img.Set(x+i, y+j, c)
			}
		}
	}
}

func addScaledLabel(img *image.RGBA, x, y int, label string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}
