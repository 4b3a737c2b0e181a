// Package palette holds the tile colour tables handed to renderers.
// The engine never sees colours; a renderer picks a palette by name from the game config.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"golang.org/x/image/colornames"
)

var ErrUnknownPalette = errors.New("unknown palette")

// DefaultName is used when a config leaves the palette empty
const DefaultName = "ylorbr"

// Palette maps tile values to fill colours
type Palette struct {
	Name       string
	Background color.RGBA
	Text       color.RGBA
	// LightText is used on dark tiles
	LightText color.RGBA
	tiles     map[int]color.RGBA
	overflow  color.RGBA
}

// via https://colorbrewer2.org/#type=sequential&scheme=YlOrBr&n=9
var ylorbr = &Palette{
	Name:       "ylorbr",
	Background: colornames.Black,
	Text:       colornames.Black,
	LightText:  colornames.White,
	tiles: map[int]color.RGBA{
		0:    colornames.Lightgrey,
		2:    hex(0xffffe5),
		4:    hex(0xfff7bc),
		8:    hex(0xfee391),
		16:   hex(0xfec44f),
		32:   hex(0xfe9929),
		64:   hex(0xec7014),
		128:  hex(0xcc4c02),
		256:  hex(0x993404),
		512:  hex(0x662506),
		1024: hex(0x401703),
		2048: colornames.White,
	},
	overflow: colornames.Gold,
}

var classic = &Palette{
	Name:       "classic",
	Background: hex(0xbbada0),
	Text:       hex(0x776e65),
	LightText:  hex(0xf9f6f2),
	tiles: map[int]color.RGBA{
		0:    hex(0xcdc1b4),
		2:    hex(0xeee4da),
		4:    hex(0xede0c8),
		8:    hex(0xf2b179),
		16:   hex(0xf59563),
		32:   hex(0xf67c5f),
		64:   hex(0xf65e3b),
		128:  hex(0xedcf72),
		256:  hex(0xedcc61),
		512:  hex(0xedc850),
		1024: hex(0xedc53f),
		2048: hex(0xedc22e),
	},
	overflow: hex(0x3c3a32),
}

var mono = &Palette{
	Name:       "mono",
	Background: colornames.Dimgray,
	Text:       colornames.Black,
	LightText:  colornames.White,
	tiles: map[int]color.RGBA{
		0:    colornames.Gainsboro,
		2:    colornames.Whitesmoke,
		4:    colornames.Lightgray,
		8:    colornames.Silver,
		16:   colornames.Darkgray,
		32:   colornames.Gray,
		64:   colornames.Dimgray,
		128:  colornames.Darkslategray,
		256:  colornames.Slategray,
		512:  colornames.Lightslategray,
		1024: colornames.Midnightblue,
		2048: colornames.Black,
	},
	overflow: colornames.Black,
}

var registry = map[string]*Palette{
	ylorbr.Name:  ylorbr,
	classic.Name: classic,
	mono.Name:    mono,
}

// Lookup returns the named palette; an empty name selects the default
func Lookup(name string) (*Palette, error) {
	if name == "" {
		name = DefaultName
	}
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPalette, name)
	}
	return p, nil
}

// MustLookup is Lookup for names known at compile time
func MustLookup(name string) *Palette {
	p, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Names lists registered palettes in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Color returns the fill for a tile value. Values past the table share one colour.
func (p *Palette) Color(value int) color.RGBA {
	if c, ok := p.tiles[value]; ok {
		return c
	}
	return p.overflow
}

// TextColor picks dark or light text for legibility on the tile fill
func (p *Palette) TextColor(value int) color.RGBA {
	c := p.Color(value)
	// Rec. 601 luma
	luma := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
	if luma < 128 {
		return p.LightText
	}
	return p.Text
}

// Hex returns the fill as #rrggbb for the browser canvas
func (p *Palette) Hex(value int) string {
	return toHex(p.Color(value))
}

// CSS returns every table entry as #rrggbb keyed by tile value,
// plus "background", "overflow", "text" and "light_text"
func (p *Palette) CSS() map[string]string {
	out := make(map[string]string, len(p.tiles)+4)
	for v, c := range p.tiles {
		out[fmt.Sprint(v)] = toHex(c)
	}
	out["background"] = toHex(p.Background)
	out["overflow"] = toHex(p.overflow)
	out["text"] = toHex(p.Text)
	out["light_text"] = toHex(p.LightText)
	return out
}

func toHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
