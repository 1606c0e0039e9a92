package util

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// RegisterSQLFunctions installs the custom scalar functions the catalog
// queries call from their WHERE clauses. Must run before any connection is
// opened. Safe to call once per process only, hence the guard.
var sqlFunctionsRegistered bool

func RegisterSQLFunctions() {
	if sqlFunctionsRegistered {
		return
	}
	sqlFunctionsRegistered = true

	// lower_ascii transliterates to ASCII and lowercases, so that a search for
	// "muller" matches "Müller".
	sqlite.MustRegisterFunction("lower_ascii", &sqlite.FunctionImpl{
		NArgs:         1,
		Deterministic: true,
		Scalar: func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case string:
				return strings.ToLower(Transliterate(v)), nil
			case nil:
				return nil, nil
			default:
				return nil, fmt.Errorf("lower_ascii: invalid type: %T", args[0])
			}
		},
	})
}
