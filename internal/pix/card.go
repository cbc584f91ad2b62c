package pix

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// CardColors is the palette for a placeholder card.
type CardColors struct {
	Back  color.RGBA
	Title color.RGBA
	Text  color.RGBA
}

var (
	folderCardColors = CardColors{
		Back:  color.RGBA{R: 0x1b, G: 0x2a, B: 0x3a, A: 0xff},
		Title: color.RGBA{R: 0x7f, G: 0xb4, B: 0xe8, A: 0xff},
		Text:  color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff},
	}
	archiveCardColors = CardColors{
		Back:  color.RGBA{R: 0x3a, G: 0x2a, B: 0x1b, A: 0xff},
		Title: color.RGBA{R: 0xe8, G: 0xb4, B: 0x7f, A: 0xff},
		Text:  color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff},
	}
	errorCardColors = CardColors{
		Back:  color.RGBA{R: 0x30, G: 0x10, B: 0x10, A: 0xff},
		Title: color.RGBA{R: 0xe8, G: 0x7f, B: 0x7f, A: 0xff},
		Text:  color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff},
	}
	neutralCardColors = CardColors{
		Back:  color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff},
		Title: color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
		Text:  color.RGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff},
	}
)

// FolderCardColors is the palette used for folder placeholders.
func FolderCardColors() CardColors { return folderCardColors }

// ArchiveCardColors is the palette used for archive placeholders.
func ArchiveCardColors() CardColors { return archiveCardColors }

// ErrorCardColors is the palette used for failure placeholders.
func ErrorCardColors() CardColors { return errorCardColors }

// NeutralCardColors is the palette used for everything else.
func NeutralCardColors() CardColors { return neutralCardColors }

const (
	cardWidth  = 480
	cardHeight = 270
)

// TextCard renders a synthetic placeholder surface carrying a title and a
// message. It is the lightweight stand-in for rows that cannot be rendered
// (or not yet), so callers never have to surface an error as content.
func TextCard(title, message string, colors CardColors) *Surface {
	s := NewSurface(cardWidth, cardHeight)
	s.Fill(colors.Back)

	face := basicfont.Face7x13
	drawString(s.RGBA, face, colors.Title, 24, 40, title)
	drawString(s.RGBA, face, colors.Text, 24, 64, message)
	return s
}

func drawString(dst *image.RGBA, face font.Face, c color.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
