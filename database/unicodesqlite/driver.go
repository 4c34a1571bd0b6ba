// Package unicodesqlite registers a go-sqlite3 driver whose LOWER and UPPER
// fold the full Unicode range. The built-in versions only fold ASCII.
package unicodesqlite

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql name of the registered driver.
const DriverName = "sqlite3_unicode"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if err := conn.RegisterFunc("lower", strings.ToLower, true); err != nil {
				return err
			}
			return conn.RegisterFunc("upper", strings.ToUpper, true)
		},
	})
}
