package cell

import (
	"sort"
	"strings"
	"testing"
)

// shape describes a subtree for the test cells: each key is a child name,
// each value that child's own children.
type shape map[string]shape

func (s shape) names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// testElement is a minimal render handle that records its children.
type testElement struct {
	path     string
	children []Element
}

func (e *testElement) Append(child Element) {
	e.children = append(e.children, child)
}

func (e *testElement) Remove(child Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

func (e *testElement) String() string {
	var parts []string
	for _, c := range e.children {
		parts = append(parts, c.(*testElement).String())
	}
	return e.path + "[" + strings.Join(parts, ",") + "]"
}

// testCell is a concrete node whose children follow a shape.
type testCell struct {
	*Base
	shape     shape
	builds    int
	refreshes int
}

func newTestCell(spec Spec, s shape) *testCell {
	c := &testCell{shape: s}
	c.Base = NewBase(spec, c)
	return c
}

func (c *testCell) Build() (Element, error) {
	c.builds++
	if err := c.Mount(&testElement{path: c.Path()}); err != nil {
		return nil, err
	}
	for _, name := range c.shape.names() {
		if err := c.Attach(name, newTestCell(c.ChildSpec(name), c.shape[name])); err != nil {
			return nil, err
		}
	}
	return c.Seal()
}

func (c *testCell) Refresh(json any) error {
	c.refreshes++
	return c.Base.Refresh(json)
}

// testRoot is a concrete root that loads one testCell per top-level shape key.
type testRoot struct {
	*Container
	shape shape
}

func newTestRoot(name string, s shape, opts ...Option) *testRoot {
	r := &testRoot{shape: s}
	r.Container = NewContainer(name, r, opts...)
	return r
}

func (r *testRoot) Load() error {
	if err := r.Mount(&testElement{path: "/"}); err != nil {
		return err
	}
	for _, name := range r.shape.names() {
		if err := r.Attach(name, newTestCell(r.ChildSpec(name), r.shape[name])); err != nil {
			return err
		}
	}
	return nil
}

// mustLoad returns a loaded root for s or fails the test.
func mustLoad(t testing.TB, s shape, opts ...Option) *testRoot {
	t.Helper()
	r := newTestRoot("app", s, opts...)
	if err := r.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r
}

// cellAt resolves path on r and returns the concrete test cell.
func cellAt(t testing.TB, r Root, path string) *testCell {
	t.Helper()
	n, err := r.FindNode(path)
	if err != nil {
		t.Fatalf("FindNode(%q): %v", path, err)
	}
	c, ok := n.(*testCell)
	if !ok {
		t.Fatalf("FindNode(%q) returned %T, want *testCell", path, n)
	}
	return c
}
