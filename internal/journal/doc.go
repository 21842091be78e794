// Package journal records batch runs in a SQLite database.
//
// Each run gets a UUID and one row per processed item. Writers from
// concurrent invocations serialize through a flock on "<path>.lock"; readers
// do not take the lock and rely on SQLite WAL mode instead.
package journal
