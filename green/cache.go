package green

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache interns green records by content so that structurally equal
// subtrees from different parses share a single record.
//
// A Cache is safe for concurrent use.
type Cache struct {
	items *gocache.Cache
}

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// NewCache returns an empty cache whose entries never expire.
func NewCache() *Cache {
	return &Cache{items: gocache.New(gocache.NoExpiration, 0)}
}

// NewExpiringCache returns an empty cache that drops records interned more
// than expiration ago, sweeping them every cleanupInterval. An expired
// record is only no longer shared; trees holding it are unaffected.
func NewExpiringCache(expiration, cleanupInterval time.Duration) *Cache {
	return &Cache{items: gocache.New(expiration, cleanupInterval)}
}

// Len returns the number of interned records.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// Flush drops every interned record.
func (c *Cache) Flush() {
	c.items.Flush()
}

// Retain drops every record that is not part of one of the trees rooted at
// roots.
func (c *Cache) Retain(roots ...Element) {
	live := make(map[string]bool)
	var mark func(e Element)
	mark = func(e Element) {
		key := cacheKey(e)
		if live[key] {
			return
		}
		live[key] = true
		if n, ok := e.(*Node); ok {
			for _, child := range n.children {
				mark(child)
			}
		}
	}
	for _, root := range roots {
		if root != nil {
			mark(root)
		}
	}
	for key := range c.items.Items() {
		if !live[key] {
			c.items.Delete(key)
		}
	}
}

// Token returns the interned token for kind and text.
func (c *Cache) Token(kind Kind, text string) *Token {
	return c.intern(NewToken(kind, text)).(*Token)
}

// Node returns the interned node for kind and children. Children are
// interned first.
func (c *Cache) Node(kind Kind, children []Element) *Node {
	interned := make([]Element, len(children))
	for i, child := range children {
		interned[i] = c.Intern(child)
	}
	return c.intern(NewNode(kind, interned)).(*Node)
}

// Intern returns the canonical record for e, rebuilding e bottom-up so
// that every subtree already present in the cache is reused.
func (c *Cache) Intern(e Element) Element {
	switch x := e.(type) {
	case *Token:
		return c.intern(x)
	case *Node:
		if found, ok := c.lookup(x); ok {
			return found
		}
		changed := false
		children := make([]Element, len(x.children))
		for i, child := range x.children {
			children[i] = c.Intern(child)
			if children[i] != child {
				changed = true
			}
		}
		if changed {
			x = NewNode(x.kind, children)
		}
		return c.intern(x)
	}
	return e
}

func (c *Cache) lookup(e Element) (Element, bool) {
	v, ok := c.items.Get(cacheKey(e))
	if !ok {
		return nil, false
	}
	found := v.(Element)
	if !Equal(found, e) {
		return nil, false
	}
	return found, true
}

func (c *Cache) intern(e Element) Element {
	if found, ok := c.lookup(e); ok {
		return found
	}
	// On a hash collision Add fails and e stays un-interned.
	_ = c.items.Add(cacheKey(e), e, gocache.DefaultExpiration)
	return e
}

func cacheKey(e Element) string {
	return strconv.FormatUint(e.Hash(), 16)
}
