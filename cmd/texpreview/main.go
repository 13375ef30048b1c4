// Command texpreview renders generated body textures in a truecolor terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"solarsystem/core"
	"solarsystem/texture"
)

type preview struct {
	screen tcell.Screen
	synth  *texture.Synthesizer
	size   int
	defs   []core.BodyDef
	index  int
	cache  map[string]*texture.Texture
}

func main() {
	body := flag.String("body", "earth", "Body to show first")
	seed := flag.Int64("seed", 1, "Noise seed")
	size := flag.Int("size", 256, "Texture edge in pixels")
	out := flag.String("o", "", "Write the texture as PNG to this path and exit")
	craters := flag.Int("craters", texture.DefaultCraterCount, "Craters on rocky bodies")
	flag.Parse()

	synth := texture.NewSeededSynthesizer(*seed, texture.Options{CraterCount: *craters, Strict: true})
	p := &preview{
		synth: synth,
		size:  *size,
		defs:  core.Catalog(),
		cache: make(map[string]*texture.Texture),
	}
	if p.index = p.find(*body); p.index < 0 {
		log.Fatalf("Unknown body %q", *body)
	}

	if *out != "" {
		if err := p.writePNG(*out); err != nil {
			log.Fatalf("Failed to write %s: %v", *out, err)
		}
		fmt.Printf("Wrote %s\n", *out)
		return
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}
	p.screen = screen
	defer screen.Fini()

	if err := p.run(); err != nil {
		screen.Fini()
		log.Fatalf("Preview failed: %v", err)
	}
}

func (p *preview) find(name string) int {
	for i, def := range p.defs {
		if def.Name == name {
			return i
		}
	}
	return -1
}

// texture synthesizes the current body on first view
func (p *preview) texture() (*texture.Texture, error) {
	def := p.defs[p.index]
	if tex, ok := p.cache[def.Name]; ok {
		return tex, nil
	}
	spec, err := def.SurfaceSpec()
	if err != nil {
		return nil, err
	}
	buf, err := p.synth.Synthesize(spec, p.size, p.size)
	if err != nil {
		return nil, err
	}
	tex := texture.NewTexture(def.Name, buf)
	p.cache[def.Name] = tex
	return tex, nil
}

func (p *preview) writePNG(path string) error {
	tex, err := p.texture()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tex.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (p *preview) run() error {
	for {
		if err := p.draw(); err != nil {
			return err
		}

		switch ev := p.screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return nil
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyRight || (ev.Key() == tcell.KeyRune && ev.Rune() == 'n'):
				p.index = (p.index + 1) % len(p.defs)
			case ev.Key() == tcell.KeyLeft || (ev.Key() == tcell.KeyRune && ev.Rune() == 'p'):
				p.index = (p.index + len(p.defs) - 1) % len(p.defs)
			}
		case *tcell.EventResize:
			p.screen.Sync()
		case nil:
			return nil
		}
	}
}

func (p *preview) draw() error {
	tex, err := p.texture()
	if err != nil {
		return err
	}

	p.screen.Clear()
	width, height := p.screen.Size()
	def := p.defs[p.index]

	title := fmt.Sprintf("%s  [%s]", def.Info.Name, def.Type)
	drawText(p.screen, centerColumn(title, width), 0, title, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	help := "n/p: next/previous  q: quit"
	drawText(p.screen, centerColumn(help, width), height-1, help, tcell.StyleDefault.Foreground(tcell.ColorGray))

	rows := height - 2
	if rows < 1 || width < 1 {
		p.screen.Show()
		return nil
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < width; cx++ {
			top, bottom := sampleCell(tex, width, rows, cx, cy)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			p.screen.SetContent(cx, cy+1, '▀', nil, style)
		}
	}
	p.screen.Show()
	return nil
}

// sampleCell maps terminal cell (cx, cy) of a cols x rows grid onto the
// texture. Each cell covers two pixel rows: the upper half block takes the
// top one as foreground and the bottom one as background.
func sampleCell(tex *texture.Texture, cols, rows, cx, cy int) (top, bottom tcell.Color) {
	x := cx * tex.Width() / cols
	y0 := (2 * cy) * tex.Height() / (2 * rows)
	y1 := (2*cy + 1) * tex.Height() / (2 * rows)
	return pixelColor(tex, x, y0), pixelColor(tex, x, y1)
}

func pixelColor(tex *texture.Texture, x, y int) tcell.Color {
	i := (y*tex.Width() + x) * 4
	pix := tex.Pixels()
	return tcell.NewRGBColor(int32(pix[i]), int32(pix[i+1]), int32(pix[i+2]))
}

// centerColumn is the starting column that centers s, counting wide runes
// as two cells.
func centerColumn(s string, width int) int {
	col := (width - runewidth.StringWidth(s)) / 2
	if col < 0 {
		return 0
	}
	return col
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
