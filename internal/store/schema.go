package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS journal (
    id                   TEXT PRIMARY KEY,
    session_id           TEXT NOT NULL,
    seq                  INTEGER NOT NULL,
    at                   TEXT NOT NULL,
    action               TEXT NOT NULL,
    category             TEXT,
    amount               TEXT,
    accepted             INTEGER NOT NULL DEFAULT 0,
    error                TEXT,
    balance              TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_journal_session ON journal(session_id, seq);
CREATE INDEX IF NOT EXISTS idx_journal_at ON journal(at);
`
