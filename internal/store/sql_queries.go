package store

// Static SQL used by the repositories. Dynamic listings (role-scoped record
// queries, audit trail paging) are built with squirrel instead; see
// repository_record.go and repository_audit.go.
//
// Placeholders use the $n format, which both the pgx and sqlite3 drivers
// accept.
const (
	insertUser = `INSERT INTO users (name, dob, identifier)
    VALUES ($1, $2, $3)
    RETURNING id;`

	insertAccount = `INSERT INTO accounts (username, password_hash, role, user_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id;`

	findAccountByUsername = `SELECT id, username, password_hash, role, user_id, last_login, failed_login_attempts, is_locked, lock_until
    FROM accounts
    WHERE username = $1;`

	updateAccountLoginSuccess = `UPDATE accounts
    SET failed_login_attempts = 0, is_locked = FALSE, lock_until = NULL, last_login = $2
    WHERE id = $1;`

	updateAccountLoginFailure = `UPDATE accounts
    SET failed_login_attempts = $2, is_locked = $3, lock_until = $4
    WHERE id = $1;`

	listUsersWithUsernames = `SELECT u.id, u.name, u.dob, u.identifier, a.username
    FROM users u
    LEFT JOIN accounts a ON a.user_id = u.id
    ORDER BY u.id;`

	countUsers = `SELECT COUNT(*) FROM users;`

	insertRecord = `INSERT INTO records (user_id, vaccine, date, dose, filename, uploader, timestamp)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id;`

	insertAuditLog = `INSERT INTO audit_logs (user_id, action, details, ip_address, timestamp)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id;`
)
