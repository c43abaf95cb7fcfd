package request

import "os"

// ResourceChecker answers whether a requested URI names an existing file.
type ResourceChecker interface {
	Exists(uri string) bool
}

// DirChecker looks the URI up under Root. The URI is appended to Root as
// is, without cleaning or decoding.
type DirChecker struct {
	Root string
}

func NewDirChecker(root string) *DirChecker {
	return &DirChecker{Root: root}
}

func (c *DirChecker) Exists(uri string) bool {
	_, err := os.Stat(c.Root + uri)
	return err == nil
}

// CheckerFunc adapts a function to ResourceChecker.
type CheckerFunc func(uri string) bool

func (f CheckerFunc) Exists(uri string) bool {
	return f(uri)
}
