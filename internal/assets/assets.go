// Package assets loads the embedded sprite sheet, its frame metadata and the
// silhouette shapes the player reveals.
package assets

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG format
	"io/fs"
	"path"
	"sort"

	"golang.org/x/image/draw"
)

//go:embed sprites/sheet.png sprites/sheet.json shapes/*.png
var bundleFS embed.FS

// Frame names in the sprite sheet metadata.
const (
	FrameBackground   = "bg.jpg"
	FrameBrush        = "brush-cheese.png"
	FramePointsBar    = "points-bar.png"
	FramePointsIcon   = "cheese-points.png"
	FrameTimeBar      = "time-bar.png"
	FrameTimeBarFull  = "time-bar-full.png"
	FrameClock        = "clock.png"
	FrameHandPointer  = "hand-pointer.png"
	defaultSheetImage = "sprites/sheet.png"
	defaultSheetMeta  = "sprites/sheet.json"
	defaultShapesDir  = "shapes"
)

// RequiredFrames lists every frame the game looks up.
var RequiredFrames = []string{
	FrameBackground,
	FrameBrush,
	FramePointsBar,
	FramePointsIcon,
	FrameTimeBar,
	FrameTimeBarFull,
	FrameClock,
	FrameHandPointer,
}

// ErrFrameNotFound is returned when a named frame is missing from the sheet.
var ErrFrameNotFound = errors.New("frame not found")

// FS returns the embedded asset tree.
func FS() fs.FS {
	return bundleFS
}

// Atlas is a sprite sheet plus named source rectangles.
type Atlas struct {
	Image  *image.RGBA
	frames map[string]image.Rectangle
}

// Frame returns the source rectangle for name.
func (a *Atlas) Frame(name string) (image.Rectangle, error) {
	r, ok := a.frames[name]
	if !ok {
		return image.Rectangle{}, fmt.Errorf("%w: %q", ErrFrameNotFound, name)
	}
	return r, nil
}

// Names returns the frame names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.frames))
	for n := range a.frames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Bundle is everything the game needs to render a round.
type Bundle struct {
	Atlas  *Atlas
	Frames map[string]image.Rectangle // resolved RequiredFrames
	Shapes []*image.RGBA
}

// Load reads the sheet, its metadata and the shapes from fsys and resolves
// every required frame. Any missing frame is an error.
func Load(fsys fs.FS) (*Bundle, error) {
	atlas, err := LoadAtlas(fsys, defaultSheetImage, defaultSheetMeta)
	if err != nil {
		return nil, err
	}
	frames := make(map[string]image.Rectangle, len(RequiredFrames))
	for _, name := range RequiredFrames {
		r, err := atlas.Frame(name)
		if err != nil {
			return nil, fmt.Errorf("load assets: %w", err)
		}
		frames[name] = r
	}
	shapes, err := LoadShapes(fsys, defaultShapesDir)
	if err != nil {
		return nil, err
	}
	return &Bundle{Atlas: atlas, Frames: frames, Shapes: shapes}, nil
}

// LoadDefault loads the embedded bundle.
func LoadDefault() (*Bundle, error) {
	return Load(bundleFS)
}

type frameMeta struct {
	Frame struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	} `json:"frame"`
}

type sheetMeta struct {
	Frames map[string]frameMeta `json:"frames"`
}

// LoadAtlas decodes a sprite sheet image and its TexturePacker-style JSON
// frame map.
func LoadAtlas(fsys fs.FS, imagePath, metaPath string) (*Atlas, error) {
	img, err := readImage(fsys, imagePath)
	if err != nil {
		return nil, err
	}
	raw, err := fs.ReadFile(fsys, metaPath)
	if err != nil {
		return nil, fmt.Errorf("read sheet metadata %q: %w", metaPath, err)
	}
	var meta sheetMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode sheet metadata %q: %w", metaPath, err)
	}

	frames := make(map[string]image.Rectangle, len(meta.Frames))
	for name, f := range meta.Frames {
		frames[name] = image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+f.Frame.W, f.Frame.Y+f.Frame.H)
	}
	return &Atlas{Image: img, frames: frames}, nil
}

// LoadShapes decodes every PNG in dir, ordered by file name.
func LoadShapes(fsys fs.FS, dir string) ([]*image.RGBA, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("list shapes: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no shapes in %q", dir)
	}
	sort.Strings(paths)

	shapes := make([]*image.RGBA, 0, len(paths))
	for _, p := range paths {
		img, err := readImage(fsys, p)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, img)
	}
	return shapes, nil
}

func readImage(fsys fs.FS, name string) (*image.RGBA, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read image %q: %w", name, err)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}
	return toRGBA(src), nil
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
