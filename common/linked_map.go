package common

import (
	"container/list"
	"sync"
)

type mapElement[V any] struct {
	val     V
	element *list.Element
}

// LinkedMap implements a goroutine safe map which keeps the insertion order of keys
type LinkedMap[K comparable, V any] struct {
	mutex sync.RWMutex
	l     *list.List
	m     map[K]*mapElement[V]
}

// NewLinkedMap create linked map
func NewLinkedMap[K comparable, V any]() *LinkedMap[K, V] {
	return &LinkedMap[K, V]{
		l: list.New(),
		m: map[K]*mapElement[V]{},
	}
}

// Put put value with key, an existing key keeps its position
func (p *LinkedMap[K, V]) Put(key K, value V) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if pre, ok := p.m[key]; ok {
		pre.val = value
		return
	}
	p.put(key, value)
}

// PutIfAbsent put value with key only when the key is absent, returns false if the key exists
func (p *LinkedMap[K, V]) PutIfAbsent(key K, value V) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if _, ok := p.m[key]; ok {
		return false
	}
	p.put(key, value)
	return true
}

func (p *LinkedMap[K, V]) put(key K, value V) {
	keyElem := p.l.PushBack(key)
	p.m[key] = &mapElement[V]{
		val:     value,
		element: keyElem,
	}
}

// Update replace the value of key with fn(old) under the write lock,
// returns the new value and false if the key is absent
func (p *LinkedMap[K, V]) Update(key K, fn func(old V) V) (val V, ok bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	pre, ok := p.m[key]
	if !ok {
		return val, false
	}
	pre.val = fn(pre.val)
	return pre.val, true
}

// Get value with key
func (p *LinkedMap[K, V]) Get(key K) (val V, ok bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	if pre, ok := p.m[key]; ok {
		return pre.val, ok
	}
	return val, false
}

// Remove value with key
func (p *LinkedMap[K, V]) Remove(key K) (preVal V, ok bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if pre, ok := p.m[key]; ok {
		delete(p.m, key)
		p.l.Remove(pre.element)
		return pre.val, true
	}
	return preVal, false
}

// Clear remove all entries
func (p *LinkedMap[K, V]) Clear() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.l.Init()
	p.m = map[K]*mapElement[V]{}
}

// Len return the length of the map
func (p *LinkedMap[K, V]) Len() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.l.Len()
}

// MapEntry define map entry with key and value
type MapEntry[K comparable, V any] struct {
	Key   K
	Value V
}

// Entries return entry slice in insertion order
func (p *LinkedMap[K, V]) Entries() []*MapEntry[K, V] {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	entries := make([]*MapEntry[K, V], p.l.Len())
	var i = 0
	for e := p.l.Front(); e != nil; e = e.Next() {
		key := e.Value.(K)
		entries[i] = &MapEntry[K, V]{Key: key, Value: p.m[key].val}
		i++
	}
	return entries
}
