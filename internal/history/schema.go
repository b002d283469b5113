package history

const createTableSQL = `
CREATE TABLE IF NOT EXISTS invocations (
	id TEXT PRIMARY KEY,
	timestamp DATETIME DEFAULT (datetime('now')),
	target TEXT NOT NULL,
	line_range TEXT NOT NULL,
	filetype TEXT NOT NULL,
	instruction TEXT NOT NULL,
	preset TEXT NOT NULL,
	exit_code INTEGER NOT NULL,
	lines_in INTEGER NOT NULL,
	lines_out INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);
`

const cleanupSQL = `DELETE FROM invocations WHERE timestamp < datetime('now', '-90 days');`

const insertSQL = `
INSERT INTO invocations (id, target, line_range, filetype, instruction, preset, exit_code, lines_in, lines_out, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const recentSQL = `
SELECT id, timestamp, target, line_range, filetype, instruction, preset, exit_code, lines_in, lines_out, duration_ms
FROM invocations
ORDER BY timestamp DESC, rowid DESC
LIMIT ?;
`

const summarySQL = `
SELECT
	COUNT(*) as total,
	COALESCE(SUM(CASE WHEN exit_code != 0 THEN 1 ELSE 0 END), 0) as failed,
	COALESCE(SUM(duration_ms), 0) as total_ms
FROM invocations;
`

// Record is one filter invocation.
type Record struct {
	ID          string
	Timestamp   string
	Target      string // file path, or "-" for stdin
	Range       string
	Filetype    string
	Instruction string
	Preset      string
	ExitCode    int
	LinesIn     int
	LinesOut    int
	DurationMs  int64
}

// Summary holds aggregate history stats.
type Summary struct {
	Total   int
	Failed  int
	TotalMs int64
}
