// Package scene holds the node tree drawn each frame.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Node is anything the scene can advance and draw.
type Node interface {
	Update(dt float64) error
	// Draw renders onto dst with geo mapping node space to dst pixels.
	Draw(dst *ebiten.Image, geo ebiten.GeoM)
}

// Container is a scaled group of nodes. The viewer's scene root is one.
type Container struct {
	children []Node
	scaleX   float64
	scaleY   float64
}

func NewContainer() *Container {
	return &Container{scaleX: 1, scaleY: 1}
}

func (c *Container) AddChild(node Node) {
	c.children = append(c.children, node)
}

func (c *Container) Children() []Node {
	return c.children
}

func (c *Container) SetScale(x, y float64) {
	c.scaleX, c.scaleY = x, y
}

func (c *Container) Scale() (x, y float64) {
	return c.scaleX, c.scaleY
}

func (c *Container) Update(dt float64) error {
	for _, child := range c.children {
		if err := child.Update(dt); err != nil {
			return err
		}
	}
	return nil
}

// Draw applies the container scale on top of geo before drawing children.
func (c *Container) Draw(dst *ebiten.Image, geo ebiten.GeoM) {
	local := ebiten.GeoM{}
	local.Scale(c.scaleX, c.scaleY)
	local.Concat(geo)
	for _, child := range c.children {
		child.Draw(dst, local)
	}
}
