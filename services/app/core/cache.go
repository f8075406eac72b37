package core

import "sync"

// Cache is the in-memory echo of the remote store. It is only ever written
// with results of successful remote operations, so its contents always match
// something the store confirmed. Insertion order is preserved.
type Cache struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Task
}

func NewCache() *Cache {
	return &Cache{
		byID: make(map[string]Task),
	}
}

// Replace swaps the whole snapshot, keeping the order the store returned.
func (c *Cache) Replace(tasks []Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order = c.order[:0]
	clear(c.byID)
	for _, t := range tasks {
		c.order = append(c.order, t.ID)
		c.byID[t.ID] = t
	}
}

// Apply upserts a confirmed remote result. New tasks go to the end, updated
// tasks keep their position.
func (c *Cache) Apply(t Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[t.ID]; !ok {
		c.order = append(c.order, t.ID)
	}
	c.byID[t.ID] = t
}

func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[id]; !ok {
		return
	}
	delete(c.byID, id)
	for i, x := range c.order {
		if x == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cache) Get(id string) (Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.byID[id]
	return t, ok
}

func (c *Cache) Tasks() []Task {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Task, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
