// This file is part of ftlcdc.
//
// ftlcdc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ftlcdc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ftlcdc.  If not, see <https://www.gnu.org/licenses/>.

package sdlpanel

import (
	"fmt"
	"image"

	"github.com/jetsetilly/ftlcdc/assert"
	"github.com/veandco/go-sdl2/sdl"
	"periph.io/x/conn/v3/physic"
)

// Event is a user action in the preview window.
type Event int

// List of valid Event values.
const (
	EventNone Event = iota
	EventQuit
	EventPanUp
	EventPanDown
	EventSnapshot
)

// Preview is an SDL window showing the simulated display.
type Preview struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int32
	height int32

	// regulates how often the window is updated
	limiter *frameLimiter

	// SDL must only be used from the goroutine that initialised it
	owner assert.Owner
}

// NewPreview opens a window for a display of the given size. The window is
// scaled by the scale argument. Updates to the window are limited to the
// frame rate of the display.
func NewPreview(title string, width, height int, scale int, rate physic.Frequency) (*Preview, error) {
	if scale < 1 {
		scale = 1
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("sdlpanel: %w", err)
	}

	p := &Preview{
		width:   int32(width),
		height:  int32(height),
		limiter: newFrameLimiter(rate),
		owner:   assert.NewOwner(),
	}

	p.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		p.width*int32(scale), p.height*int32(scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, fmt.Errorf("sdlpanel: %w", err)
	}

	p.renderer, err = sdl.CreateRenderer(p.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		p.window.Destroy()
		return nil, fmt.Errorf("sdlpanel: %w", err)
	}

	// ABGR8888 is the byte order of image.RGBA on a little-endian machine
	p.texture, err = p.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), p.width, p.height)
	if err != nil {
		p.renderer.Destroy()
		p.window.Destroy()
		return nil, fmt.Errorf("sdlpanel: %w", err)
	}

	return p, nil
}

// Destroy the window and shut down SDL.
func (p *Preview) Destroy() {
	p.owner.Check("sdlpanel.Destroy")
	p.limiter.stop()
	_ = p.texture.Destroy()
	_ = p.renderer.Destroy()
	_ = p.window.Destroy()
	sdl.Quit()
}

// SetTitle changes the title of the window.
func (p *Preview) SetTitle(title string) {
	p.window.SetTitle(title)
}

// Show the image in the window. The call waits until the next frame is due.
func (p *Preview) Show(img *image.RGBA) error {
	if int32(img.Bounds().Dx()) != p.width || int32(img.Bounds().Dy()) != p.height {
		return fmt.Errorf("sdlpanel: image is %dx%d but the window is %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), p.width, p.height)
	}

	p.owner.Check("sdlpanel.Show")
	p.limiter.wait()

	pixels, pitch, err := p.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("sdlpanel: %w", err)
	}
	copyPixels(pixels, pitch, img)
	p.texture.Unlock()

	if err := p.renderer.Clear(); err != nil {
		return fmt.Errorf("sdlpanel: %w", err)
	}
	if err := p.renderer.Copy(p.texture, nil, nil); err != nil {
		return fmt.Errorf("sdlpanel: %w", err)
	}
	p.renderer.Present()

	return nil
}

// Service handles pending SDL events. It returns the first event that is
// meaningful to the preview or EventNone.
func (p *Preview) Service() Event {
	p.owner.Check("sdlpanel.Service")
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return EventQuit
		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN {
				continue
			}
			switch ev.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_q:
				return EventQuit
			case sdl.K_UP:
				return EventPanUp
			case sdl.K_DOWN:
				return EventPanDown
			case sdl.K_s:
				if ev.Repeat == 0 {
					return EventSnapshot
				}
			}
		}
	}
	return EventNone
}

// copy the image into the locked texture memory. the pitch of the texture
// may be larger than the stride of the image.
func copyPixels(dst []byte, pitch int, img *image.RGBA) {
	w := img.Bounds().Dx() * 4
	for y := 0; y < img.Bounds().Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+w]
		copy(dst[y*pitch:y*pitch+w], src)
	}
}
