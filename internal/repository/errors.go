// Package repository implements the MySQL stores behind the booking
// core.  Lookup misses and engine-specific failures are translated
// into the sentinel errors of the booking package so handlers never
// see raw driver errors.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrEmailExists is returned when registering an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// mysqlDuplicateEntry is the server error number for a violated
// unique key (ER_DUP_ENTRY).
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL unique key
// violation.  The seat hold store relies on this to turn the
// uq_claim key on (showtime_id, seat_code) into a conflict result.
func isDuplicateEntry(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
