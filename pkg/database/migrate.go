package database

import "context"

// schema is idempotent; it runs on every startup and from cmd/migrate.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         text PRIMARY KEY,
    email      text NOT NULL,
    name       text NOT NULL DEFAULT '',
    picture    text NOT NULL DEFAULT '',
    gender     text NOT NULL DEFAULT '',
    locale     text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique
ON users (email);

CREATE TABLE IF NOT EXISTS messages (
    id         bigserial PRIMARY KEY,
    text       text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT NOW()
);
`

// Migrate creates the users and messages tables if they do not exist.
// The unique index on users.email is what makes first-login provisioning
// safe under concurrent logins for the same address.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, schema)
	return err
}
