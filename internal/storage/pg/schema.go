package pg

import "database/sql"

const schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS customers (
    id              BIGSERIAL PRIMARY KEY,
    email           TEXT NOT NULL UNIQUE,
    username        TEXT NOT NULL DEFAULT '',
    first_name      TEXT NOT NULL DEFAULT '',
    last_name       TEXT NOT NULL DEFAULT '',
    password_hash   TEXT NOT NULL,
    is_admin        BOOLEAN NOT NULL DEFAULT FALSE,
    profile_pic_url TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS files (
    id            UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    admin_id      BIGINT NOT NULL REFERENCES customers(id),
    title         TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    filename      TEXT NOT NULL,
    original_name TEXT NOT NULL,
    mime_type     TEXT NOT NULL,
    size_bytes    BIGINT NOT NULL,
    visibility    TEXT NOT NULL DEFAULT 'public',
    kind          TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- Per-file, per-attempt delivery record. Status moves from pending to exactly
-- one terminal state; the UPDATE statements are scoped by (file_id, id) so
-- concurrent attempts on the same file stay independent.
CREATE TABLE IF NOT EXISTS share_attempts (
    id                  UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    file_id             UUID NOT NULL REFERENCES files(id) ON DELETE CASCADE,
    sender_id           BIGINT NOT NULL REFERENCES customers(id),
    recipients          TEXT[] NOT NULL,
    status              TEXT NOT NULL DEFAULT 'pending'
                        CHECK (status IN ('pending', 'success', 'failed')),
    accepted_recipients TEXT[] NOT NULL DEFAULT '{}',
    log                 TEXT NOT NULL DEFAULT '',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS share_attempts_file_id_idx ON share_attempts(file_id);

CREATE TABLE IF NOT EXISTS verification_codes (
    temp_id         TEXT PRIMARY KEY,
    recipient_email TEXT NOT NULL,
    code            TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customer_favourites (
    customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    file_id     UUID NOT NULL REFERENCES files(id) ON DELETE CASCADE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (customer_id, file_id)
);

CREATE TABLE IF NOT EXISTS customer_downloads (
    customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    file_id     UUID NOT NULL REFERENCES files(id) ON DELETE CASCADE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customer_mailed (
    customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    file_id     UUID NOT NULL REFERENCES files(id) ON DELETE CASCADE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema applies the idempotent schema on startup.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
