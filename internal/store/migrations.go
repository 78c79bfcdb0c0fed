package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS missions (
	id           INTEGER PRIMARY KEY,
	mission_id   INTEGER NOT NULL,
	student_id   INTEGER NOT NULL,
	status       TEXT NOT NULL DEFAULT 'pendente',
	assigned_at  DATETIME NOT NULL,
	responded_at DATETIME,
	title        TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	xp           INTEGER NOT NULL DEFAULT 0,
	coins        INTEGER NOT NULL DEFAULT 0,
	category     TEXT NOT NULL DEFAULT '',
	fetched_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS clan_messages (
	id          INTEGER PRIMARY KEY,
	clan_id     INTEGER NOT NULL,
	user_id     INTEGER NOT NULL,
	user_name   TEXT NOT NULL DEFAULT '',
	user_avatar TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL,
	created_at  DATETIME NOT NULL,
	edited      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ranking (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	level    INTEGER NOT NULL DEFAULT 1,
	xp       INTEGER NOT NULL DEFAULT 0,
	grade    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_missions_status ON missions(status);
CREATE INDEX IF NOT EXISTS idx_clan_messages_clan ON clan_messages(clan_id, created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
