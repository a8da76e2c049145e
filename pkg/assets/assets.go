// Package assets generates the game's sprites in memory. Every drawable is
// procedural so frontends need no files on disk.
package assets

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-asteroids/pkg/config"
)

// Sprite names.
const (
	Space    = "space"
	Ship     = "ship"
	Rocket1  = "rocket1"
	Rocket2  = "rocket2"
	Rocket3  = "rocket3"
	Rocket4  = "rocket4"
	Bullet   = "bullet"
	Asteroid = "asteroid"
)

// RocketFrames lists the thrust animation in frame order.
var RocketFrames = []string{Rocket1, Rocket2, Rocket3, Rocket4}

// Names returns every sprite name in a stable order.
func Names() []string {
	return []string{Space, Ship, Rocket1, Rocket2, Rocket3, Rocket4, Bullet, Asteroid}
}

// RocketFrame returns the sprite name for thrust animation frame i.
func RocketFrame(i int) string {
	n := len(RocketFrames)
	return RocketFrames[((i%n)+n)%n]
}

// Sizes controls the pixel dimensions of the generated sprites.
type Sizes struct {
	ScreenWidth    int
	ScreenHeight   int
	ShipRadius     float64
	AsteroidRadius float64
	BulletRadius   float64
}

var (
	hullColor     = color.NRGBA{R: 230, G: 230, B: 240, A: 255}
	cockpitColor  = color.NRGBA{R: 90, G: 160, B: 255, A: 255}
	flameColor    = color.NRGBA{R: 255, G: 150, B: 40, A: 255}
	flameCore     = color.NRGBA{R: 255, G: 240, B: 150, A: 255}
	rockColor     = color.NRGBA{R: 130, G: 115, B: 100, A: 255}
	craterColor   = color.NRGBA{R: 95, G: 85, B: 75, A: 255}
	bulletColor   = color.NRGBA{R: 255, G: 255, B: 120, A: 255}
	spaceColor    = color.NRGBA{R: 5, G: 5, B: 20, A: 255}
	starColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	dimStarColor  = color.NRGBA{R: 140, G: 140, B: 170, A: 255}
	starfieldSeed = uint64(0x5eed)
)

// bulletPattern is scaled to the bullet diameter.
var bulletPattern = [][]int{
	{0, 1, 1, 0},
	{1, 1, 1, 1},
	{1, 1, 1, 1},
	{0, 1, 1, 0},
}

// Library holds the generated sprites keyed by name.
type Library struct {
	images map[string]*image.NRGBA
}

// NewLibrary generates every sprite for the given sizes.
func NewLibrary(sizes Sizes) (*Library, error) {
	if sizes.ScreenWidth <= 0 || sizes.ScreenHeight <= 0 {
		return nil, fmt.Errorf("invalid screen size %dx%d", sizes.ScreenWidth, sizes.ScreenHeight)
	}
	for name, r := range map[string]float64{
		Ship: sizes.ShipRadius, Asteroid: sizes.AsteroidRadius, Bullet: sizes.BulletRadius,
	} {
		if r <= 0 {
			return nil, fmt.Errorf("invalid %s radius %v", name, r)
		}
	}

	lib := &Library{images: make(map[string]*image.NRGBA)}
	lib.images[Space] = starfield(sizes.ScreenWidth, sizes.ScreenHeight)
	lib.images[Ship] = ship(sizes.ShipRadius, -1)
	for i, name := range RocketFrames {
		lib.images[name] = ship(sizes.ShipRadius, i)
	}
	lib.images[Bullet] = fromPattern(bulletPattern, diameter(sizes.BulletRadius), bulletColor)
	lib.images[Asteroid] = asteroid(sizes.AsteroidRadius)
	return lib, nil
}

// Image returns the sprite called name.
func (l *Library) Image(name string) (*image.NRGBA, bool) {
	img, ok := l.images[name]
	return img, ok
}

func diameter(radius float64) int {
	return max(int(math.Ceil(radius*2)), 1)
}

// ship draws a hull pointing along +X. frame < 0 draws it without a flame;
// frames 0..3 draw a flame that flickers between lengths.
func ship(radius float64, frame int) *image.NRGBA {
	size := diameter(radius)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	nose := point{s, s / 2}
	wingTop := point{s * 0.2, s * 0.12}
	wingBottom := point{s * 0.2, s * 0.88}
	fillTriangle(img, nose, wingTop, wingBottom, hullColor)
	fillCircle(img, point{s * 0.55, s / 2}, s*0.08, cockpitColor)

	if frame >= 0 {
		length := []float64{0.14, 0.2, 0.17, 0.2}[frame%4] * s
		tail := point{s*0.2 - length, s / 2}
		fillTriangle(img, tail, point{s * 0.2, s * 0.35}, point{s * 0.2, s * 0.65}, flameColor)
		fillTriangle(img, point{s*0.2 - length/2, s / 2}, point{s * 0.2, s * 0.43}, point{s * 0.2, s * 0.57}, flameCore)
	}
	return img
}

// asteroid draws a lumpy rock: a disc with a few craters.
func asteroid(radius float64) *image.NRGBA {
	size := diameter(radius)
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	c := point{s / 2, s / 2}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-c.x, float64(y)+0.5-c.y
			angle := math.Atan2(dy, dx)
			edge := s / 2 * (0.88 + 0.12*math.Sin(5*angle)*math.Cos(3*angle))
			if math.Hypot(dx, dy) <= edge {
				img.SetNRGBA(x, y, rockColor)
			}
		}
	}
	for _, crater := range []struct{ x, y, r float64 }{
		{0.35, 0.35, 0.1}, {0.62, 0.55, 0.13}, {0.4, 0.7, 0.07},
	} {
		fillCircle(img, point{crater.x * s, crater.y * s}, crater.r*s, craterColor)
	}
	return img
}

// starfield draws the background. The star layout is fixed so every run
// looks the same.
func starfield(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, spaceColor)
		}
	}
	rng := rand.New(rand.NewPCG(starfieldSeed, starfieldSeed))
	stars := width * height / 400
	for i := 0; i < stars; i++ {
		c := dimStarColor
		if rng.IntN(5) == 0 {
			c = starColor
		}
		img.SetNRGBA(rng.IntN(width), rng.IntN(height), c)
	}
	return img
}

// fromPattern scales a 0/1 pattern to a size x size image.
func fromPattern(pattern [][]int, size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	rows := len(pattern)
	for y := 0; y < size; y++ {
		row := pattern[y*rows/size]
		for x := 0; x < size; x++ {
			if row[x*len(row)/size] == 1 {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

type point struct{ x, y float64 }

func fillCircle(img *image.NRGBA, center point, radius float64, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if math.Hypot(float64(x)+0.5-center.x, float64(y)+0.5-center.y) <= radius {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

func fillTriangle(img *image.NRGBA, a, b, c point, col color.NRGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if inTriangle(point{float64(x) + 0.5, float64(y) + 0.5}, a, b, c) {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

func inTriangle(p, a, b, c point) bool {
	cross := func(o, u, v point) float64 {
		return (u.x-o.x)*(v.y-o.y) - (u.y-o.y)*(v.x-o.x)
	}
	d1, d2, d3 := cross(p, a, b), cross(p, b, c), cross(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// SizesFromConfig reads sprite sizes from a game config.
func SizesFromConfig(cfg *config.GameConfig) Sizes {
	return Sizes{
		ScreenWidth:    cfg.Screen.Width,
		ScreenHeight:   cfg.Screen.Height,
		ShipRadius:     cfg.Ship.Radius,
		AsteroidRadius: cfg.Asteroids.Radius,
		BulletRadius:   cfg.Bullets.Radius,
	}
}
