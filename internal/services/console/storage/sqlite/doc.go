// Package sqlite persists console session values in SQLite so results survive
// a restart between a submission and the page view that shows it.
package sqlite
