package mapper

import (
	"sync"

	"github.com/yusiwen/mapper/private/named"
)

// stmtCache is a cache of compiled statements for a registry, keyed
// by the query text.
type stmtCache struct {
	mu    sync.RWMutex
	stmts map[string]*named.Statement
}

func (c *stmtCache) lookup(query string) (*named.Statement, bool) {
	c.mu.RLock()
	stmt, ok := c.stmts[query]
	c.mu.RUnlock()
	return stmt, ok
}

// set the statement for the query string. Returns the statement,
// which could be different from the input statement if another goroutine has already
// set a statement for the same query.
func (c *stmtCache) set(query string, stmt *named.Statement) *named.Statement {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stmts == nil {
		c.stmts = make(map[string]*named.Statement)
	}
	if existing, ok := c.stmts[query]; ok {
		// another goroutine beat us to adding the stmt, use its value
		stmt = existing
	} else {
		c.stmts[query] = stmt
	}
	return stmt
}

// compile returns the compiled statement for the query.
func (c *stmtCache) compile(query string) (*named.Statement, error) {
	if stmt, ok := c.lookup(query); ok {
		return stmt, nil
	}
	stmt, err := named.Compile(query)
	if err != nil {
		return nil, err
	}
	return c.set(query, stmt), nil
}
