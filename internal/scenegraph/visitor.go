package scenegraph

// Visitor receives one call per node variant.
type Visitor interface {
	VisitGroup(*Group)
	VisitMesh(*Mesh)
	VisitLight(*Light)
	VisitCamera(*Camera)
}

// Funcs adapts optional closures to a Visitor. Nil fields are skipped.
type Funcs struct {
	Group  func(*Group)
	Mesh   func(*Mesh)
	Light  func(*Light)
	Camera func(*Camera)
}

func (f Funcs) VisitGroup(g *Group) {
	if f.Group != nil {
		f.Group(g)
	}
}

func (f Funcs) VisitMesh(m *Mesh) {
	if f.Mesh != nil {
		f.Mesh(m)
	}
}

func (f Funcs) VisitLight(l *Light) {
	if f.Light != nil {
		f.Light(l)
	}
}

func (f Funcs) VisitCamera(c *Camera) {
	if f.Camera != nil {
		f.Camera(c)
	}
}

// Walk visits n and its descendants depth first, parents before children,
// children in insertion order.
func Walk(n Node, v Visitor) {
	if n == nil {
		return
	}
	n.Accept(v)
	for _, c := range n.object().children {
		Walk(c, v)
	}
}

// EnableCastShadow turns on shadow casting for every mesh under n.
func EnableCastShadow(n Node) {
	Walk(n, Funcs{Mesh: func(m *Mesh) { m.CastShadow = true }})
}

// NameOf returns the name of any node variant.
func NameOf(n Node) string {
	if n == nil {
		return ""
	}
	return n.object().Name
}

// ObjectOf exposes the shared object state of any node variant.
func ObjectOf(n Node) *Object {
	if n == nil {
		return nil
	}
	return n.object()
}
