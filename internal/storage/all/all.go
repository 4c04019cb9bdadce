// Package all registers every built-in storage backend. Import it for side
// effects from the wiring layer:
//
//	import _ "athletes/internal/storage/all"
package all

import (
	_ "athletes/internal/storage/mssql"
	_ "athletes/internal/storage/mysql"
	_ "athletes/internal/storage/postgres"
	_ "athletes/internal/storage/sqlite"
)
