package dataloader

// MaxKeysPerQuery is the maximum number of keys to include in any call
// to a query function.
var MaxKeysPerQuery = 100

// loader holds the thunks created for each key, and the keys whose thunks
// have not been called yet.
type loader[K comparable, V any] struct {
	query   func(keys []K) ([]V, error)
	key     func(row V) K
	thunks  map[K]*thunk[V]
	pending []K
}

type thunk[V any] struct {
	pending bool
	rows    []V
	err     error
}

func newLoader[K comparable, V any](query func([]K) ([]V, error), key func(V) K) *loader[K, V] {
	if query == nil {
		panic("query function is nil")
	}
	if key == nil {
		panic("key function is nil")
	}
	return &loader[K, V]{
		query:  query,
		key:    key,
		thunks: make(map[K]*thunk[V]),
	}
}

// load returns the thunk for the key, creating it if it
// does not already exist.
func (l *loader[K, V]) load(key K) *thunk[V] {
	th := l.thunks[key]
	if th == nil {
		th = &thunk[V]{pending: true}
		l.thunks[key] = th
		l.pending = append(l.pending, key)
	}
	return th
}

// resolve makes sure the thunk for key has its result. If it is still
// pending, the query function is called with its key and as many other
// pending keys as allowed.
func (l *loader[K, V]) resolve(key K, th *thunk[V]) {
	if !th.pending {
		return
	}

	// the called key is always included in the query
	keys := []K{key}
	included := map[K]bool{key: true}
	var remaining []K
	for _, k := range l.pending {
		if included[k] {
			continue
		}
		if len(keys) < MaxKeysPerQuery {
			keys = append(keys, k)
			included[k] = true
		} else {
			remaining = append(remaining, k)
		}
	}
	l.pending = remaining
	for _, k := range keys {
		l.thunks[k].pending = false
	}

	rows, err := l.query(keys)
	if err != nil {
		// all the thunks in the query receive the same error
		for _, k := range keys {
			l.thunks[k].err = err
		}
		return
	}
	for _, row := range rows {
		k := l.key(row)
		if included[k] {
			l.thunks[k].rows = append(l.thunks[k].rows, row)
		}
	}
}

// New returns a loader function for rows identified by a key. The query
// function returns the rows for a list of keys, in any order, and the key
// function returns the key of a row.
//
// Calling the loader function does not query. It returns a thunk, and
// the first thunk to be called queries for every key that has been loaded
// and not yet queried. A thunk for a key with no row returns the zero
// value of V.
//
// A loader function caches its results, and is not safe for concurrent
// use. It is intended to be created for one request.
func New[K comparable, V any](query func(keys []K) ([]V, error), key func(row V) K) func(key K) func() (V, error) {
	l := newLoader(query, key)
	return func(key K) func() (V, error) {
		th := l.load(key)
		return func() (V, error) {
			l.resolve(key, th)
			var v V
			if th.err != nil {
				return v, th.err
			}
			if len(th.rows) > 0 {
				v = th.rows[0]
			}
			return v, nil
		}
	}
}

// NewMany returns a loader function for all the rows that share a key,
// for example all the rows with the same foreign key. The query and key
// functions are as for New.
func NewMany[K comparable, V any](query func(keys []K) ([]V, error), key func(row V) K) func(key K) func() ([]V, error) {
	l := newLoader(query, key)
	return func(key K) func() ([]V, error) {
		th := l.load(key)
		return func() ([]V, error) {
			l.resolve(key, th)
			if th.err != nil {
				return nil, th.err
			}
			return th.rows, nil
		}
	}
}

// Aggregate returns a loader function for a value derived from the row
// for each key, for example a count. The value function returns the key
// of a row and the value for the key.
func Aggregate[K comparable, V any, A any](query func(keys []K) ([]V, error), value func(row V) (K, A)) func(key K) func() (A, error) {
	if value == nil {
		panic("value function is nil")
	}
	l := newLoader(query, func(row V) K {
		k, _ := value(row)
		return k
	})
	return func(key K) func() (A, error) {
		th := l.load(key)
		return func() (A, error) {
			l.resolve(key, th)
			var a A
			if th.err != nil {
				return a, th.err
			}
			if len(th.rows) > 0 {
				_, a = value(th.rows[0])
			}
			return a, nil
		}
	}
}
