package cell

import "strings"

// SplitPath strips a leading run of '/' from path and splits off the first
// component. rest is the remaining components rejoined by '/'. An empty next
// means the path refers to the node it is resolved against.
func SplitPath(path string) (next, rest string) {
	path = strings.TrimLeft(path, "/")
	next, rest, _ = strings.Cut(path, "/")
	return next, rest
}

// JoinPath returns the path of the child called name under parent.
func JoinPath(parent, name string) string {
	if parent == "" || parent == "/" {
		return "/" + name
	}
	return parent + "/" + name
}

// Components returns the non-empty components of path in order.
func Components(path string) []string {
	var out []string
	for {
		next, rest := SplitPath(path)
		if next == "" {
			return out
		}
		out = append(out, next)
		path = rest
	}
}

// validName reports whether name can label a child. Names become single path
// components, so they must be non-empty and free of '/'.
func validName(name string) bool {
	return name != "" && !strings.Contains(name, "/")
}

// resolve implements the shared single-hop walk used by Base.Find and
// Container.FindNode: at is the path of the tree the lookup starts from.
func resolve(t Tree, at, path string) (next string, child Node, rest string, err error) {
	next, rest = SplitPath(path)
	if next == "" {
		return "", nil, "", nil
	}
	child, ok := t.Child(next)
	if !ok {
		missing := JoinPath(at, next)
		if rest != "" {
			missing += "/" + rest
		}
		return next, nil, rest, &PathNotFoundError{Path: missing, Segment: next, At: at}
	}
	return next, child, rest, nil
}
