package sqlite

import "fmt"

const (
	tableName = "kv"
	colKey    = "key"
	colValue  = "value"
)

var createTable = fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  %s TEXT PRIMARY KEY,
  %s TEXT NOT NULL
);`,
	tableName,
	colKey,
	colValue,
)

var upsert = fmt.Sprintf(`
INSERT INTO %s (%s, %s)
VALUES (?, ?)
ON CONFLICT(%s) DO UPDATE SET
  %s = excluded.%s;`,
	tableName,
	colKey, colValue,
	colKey,
	colValue, colValue,
)

var selectByKey = fmt.Sprintf(`
SELECT %s
FROM %s
WHERE %s = ?;`,
	colValue,
	tableName,
	colKey,
)

var selectKeys = fmt.Sprintf(`
SELECT %s
FROM %s
ORDER BY %s ASC;`,
	colKey,
	tableName,
	colKey,
)

var deleteAll = fmt.Sprintf(`
DELETE FROM %s;`,
	tableName,
)
