// Package store persists the most recent blueprint under a single key.
//
// Two KV backends are available: FileStore keeps a JSON object in one file,
// written atomically; SQLiteStore keeps rows in a kv table using the pure-Go
// modernc.org/sqlite driver. Open picks one by name.
//
//	kv, err := store.Open(store.BackendFile, path)
//	bp, err := store.LoadLast(ctx, kv)   // nil, nil when nothing is stored
//	err = store.SaveLast(ctx, kv, bp)
//	err = store.ClearLast(ctx, kv)
package store
