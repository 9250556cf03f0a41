// Package database implements the in-memory tables that santa scripts
// query and update through the db_* builtins.
//
// A [Database] holds named [Table]s and a current table selection. The
// methods of Database lock and then operate on the current table, so a
// single Database can be shared by a script and a network listener.
//
// [Default] returns the naughty-or-nice list every script starts with.
// Records are filtered with expr-lang expressions over the column names:
//
//	recs, err := db.Query(`isnaughty && id > 40`)
//
// A database can be loaded from and written to YAML with [Database.LoadYAML]
// and [Database.WriteYAML].
package database
