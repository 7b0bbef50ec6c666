package store

// Register the supported database/sql drivers. sqlite is the default and
// needs no external server; postgres and mysql cover hosted deployments.
import (
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)
