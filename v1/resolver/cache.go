package resolver

import (
	"sync"

	"github.com/linkedin/goavro/v2"
)

// schemaCache maps canonical keys to parsed schemas. Entries are
// write-once: the first store for a key wins and is never replaced or
// evicted, so a cached codec pointer stays valid for the process lifetime.
//
// Reads are lock-free and never block behind writes for other keys.
type schemaCache struct {
	entries sync.Map // Key -> *goavro.Codec
}

// get returns the cached codec for key, if the key was resolved before.
func (c *schemaCache) get(key Key) (*goavro.Codec, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*goavro.Codec), true
}

// putIfAbsent stores codec under key unless the key is already populated
// and returns whichever codec ended up cached. Callers must use the
// returned codec, not their argument, so that every caller for a key
// observes the same instance.
func (c *schemaCache) putIfAbsent(key Key, codec *goavro.Codec) *goavro.Codec {
	actual, _ := c.entries.LoadOrStore(key, codec)
	return actual.(*goavro.Codec)
}

// size counts the cached entries.
func (c *schemaCache) size() int {
	n := 0
	c.entries.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}
