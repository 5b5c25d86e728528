package searcher

// TranspositionTable caches final solver results by search key. It is owned by one Solver and
// lives as long as the session: callers clear it on a new game or an unrelated position.
// Not safe for concurrent use.
type TranspositionTable struct {
	entries  map[string]SolveResult
	capacity int
	hits     int
	misses   int
}

func NewTranspositionTable(capacity int) *TranspositionTable {
	if capacity <= 0 {
		panic("Must specify a positive transposition table capacity")
	}
	return &TranspositionTable{
		entries:  make(map[string]SolveResult),
		capacity: capacity,
	}
}

func (t *TranspositionTable) Get(key string) (SolveResult, bool) {
	r, ok := t.entries[key]
	if ok {
		t.hits++
	} else {
		t.misses++
	}
	return r, ok
}

// Put stores a result unless the table is full. Existing keys are always overwritten.
func (t *TranspositionTable) Put(key string, r SolveResult) bool {
	if _, ok := t.entries[key]; !ok && t.Full() {
		return false
	}
	t.entries[key] = r
	return true
}

func (t *TranspositionTable) Full() bool {
	return len(t.entries) >= t.capacity
}

func (t *TranspositionTable) Len() int {
	return len(t.entries)
}

func (t *TranspositionTable) Hits() int {
	return t.hits
}

func (t *TranspositionTable) Misses() int {
	return t.misses
}

func (t *TranspositionTable) Clear() {
	clear(t.entries)
	t.hits, t.misses = 0, 0
}
