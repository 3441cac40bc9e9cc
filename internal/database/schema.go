package database

// The partial unique index screen_time_sessions_one_active enforces the
// at-most-one-active-session invariant per (user_id, app_name).
const schema = `
CREATE TABLE IF NOT EXISTS screen_time_categories (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT screen_time_categories_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS screen_time_sessions (
    id               BIGSERIAL PRIMARY KEY,
    user_id          BIGINT NOT NULL,
    app_name         TEXT NOT NULL,
    start_time       TIMESTAMPTZ NOT NULL,
    end_time         TIMESTAMPTZ,
    duration_seconds BIGINT,
    is_active        BOOLEAN NOT NULL DEFAULT TRUE,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS screen_time_sessions_one_active
    ON screen_time_sessions (user_id, app_name) WHERE is_active;

CREATE INDEX IF NOT EXISTS screen_time_sessions_user_start
    ON screen_time_sessions (user_id, start_time);

CREATE TABLE IF NOT EXISTS screen_time_app_categories (
    id          BIGSERIAL PRIMARY KEY,
    app_name    TEXT NOT NULL,
    category_id BIGINT NOT NULL REFERENCES screen_time_categories (id),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT screen_time_app_categories_app_name_key UNIQUE (app_name)
);

CREATE TABLE IF NOT EXISTS screen_time_limits (
    id                   BIGSERIAL PRIMARY KEY,
    user_id              BIGINT NOT NULL,
    category_id          BIGINT NOT NULL REFERENCES screen_time_categories (id),
    daily_limit_seconds  BIGINT NOT NULL CHECK (daily_limit_seconds >= 0),
    weekly_limit_seconds BIGINT NOT NULL CHECK (weekly_limit_seconds >= 0),
    is_enabled           BOOLEAN NOT NULL DEFAULT TRUE,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT screen_time_limits_user_category_key UNIQUE (user_id, category_id)
);
`
