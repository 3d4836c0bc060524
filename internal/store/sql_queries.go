package store

// queries is the per-dialect SQL text used by the credential repository.
// The two sets differ only in placeholder syntax.
type queries struct {
	exists               string
	create               string
	get                  string
	updatePasswordHash   string
	updateFaceDescriptor string
	touchLastLogin       string
	listDescriptors      string
	deleteCredential     string
	count                string
}

var postgresQueries = queries{
	exists: `SELECT EXISTS (SELECT 1 FROM credentials WHERE username = $1);`,

	create: `INSERT INTO credentials (username, password_hash, face_descriptor, created_at)
    VALUES ($1, $2, $3, $4);`,

	get: `SELECT username, password_hash, face_descriptor, created_at, last_login_at
    FROM credentials
    WHERE username = $1;`,

	updatePasswordHash: `UPDATE credentials SET password_hash = $1 WHERE username = $2;`,

	updateFaceDescriptor: `UPDATE credentials SET face_descriptor = $1 WHERE username = $2;`,

	touchLastLogin: `UPDATE credentials SET last_login_at = $1 WHERE username = $2;`,

	// ORDER BY keeps the enumeration order stable for a given snapshot, which
	// makes the first-seen tie-break of 1:N identification deterministic.
	listDescriptors: `SELECT username, face_descriptor
    FROM credentials
    WHERE face_descriptor IS NOT NULL
    ORDER BY username;`,

	deleteCredential: `DELETE FROM credentials WHERE username = $1;`,

	count: `SELECT COUNT(*) FROM credentials;`,
}

var sqliteQueries = queries{
	exists: `SELECT EXISTS (SELECT 1 FROM credentials WHERE username = ?);`,

	create: `INSERT INTO credentials (username, password_hash, face_descriptor, created_at)
    VALUES (?, ?, ?, ?);`,

	get: `SELECT username, password_hash, face_descriptor, created_at, last_login_at
    FROM credentials
    WHERE username = ?;`,

	updatePasswordHash: `UPDATE credentials SET password_hash = ? WHERE username = ?;`,

	updateFaceDescriptor: `UPDATE credentials SET face_descriptor = ? WHERE username = ?;`,

	touchLastLogin: `UPDATE credentials SET last_login_at = ? WHERE username = ?;`,

	listDescriptors: `SELECT username, face_descriptor
    FROM credentials
    WHERE face_descriptor IS NOT NULL
    ORDER BY username;`,

	deleteCredential: `DELETE FROM credentials WHERE username = ?;`,

	count: `SELECT COUNT(*) FROM credentials;`,
}

// queriesFor selects the SQL text set matching the connection's driver.
func queriesFor(driver string) queries {
	if driver == DriverSQLite {
		return sqliteQueries
	}
	return postgresQueries
}
