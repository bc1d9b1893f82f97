package cache

// Cache is the subset of an ARC cache used by the title bank and the results archive.
type Cache interface {
	Get(key interface{}) (interface{}, bool)
	Add(key, value interface{})
	Keys() []interface{}
	Delete(key interface{})
	Purge()
}
