package scenegraph

// Fog is linear fog between Near and Far.
type Fog struct {
	Color [3]float32
	Near  float32
	Far   float32
}

// Scene is the root of the graph plus global environment settings.
type Scene struct {
	Root *Group
	// Background lists the six cube-map faces: +x, -x, +y, -y, +z, -z.
	Background []string
	Fog        *Fog
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{Root: NewGroup("scene")}
}

// Add attaches nodes at the top level.
func (s *Scene) Add(nodes ...Node) {
	s.Root.Add(nodes...)
}

// Remove detaches top-level nodes. Nil nodes are ignored.
func (s *Scene) Remove(nodes ...Node) {
	for _, n := range nodes {
		if n != nil {
			s.Root.Remove(n)
		}
	}
}

// Children returns the top-level nodes.
func (s *Scene) Children() []Node {
	return s.Root.Children()
}

// ObjectByName returns the first node with the given name, depth first, or nil.
func (s *Scene) ObjectByName(name string) Node {
	return findByName(s.Root, name)
}

func findByName(n Node, name string) Node {
	if n.object().Name == name {
		return n
	}
	for _, c := range n.object().children {
		if found := findByName(c, name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node in the scene, the root group included.
func (s *Scene) Walk(v Visitor) {
	Walk(s.Root, v)
}
