package pqueue

// Test hooks, kept separate so instrumentation doesn't clutter logic. Each
// is nil in production and set only from _test.go files that need to
// inject a pause at a specific point to force a particular interleaving
// deterministically.
var (
	insertLevelCASHook func(level int, pred any, expectedNext any, newNode any)
	deleteMinMarkHook  func(candidate any)
	restructureHook    func(level int)
)
