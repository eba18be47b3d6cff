package store

const Schema = `
CREATE TABLE IF NOT EXISTS courses (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	path TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sections (
	id TEXT PRIMARY KEY,
	course_id TEXT NOT NULL,
	title TEXT NOT NULL,
	order_index INTEGER NOT NULL,
	FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sections_course_id ON sections(course_id);

CREATE TABLE IF NOT EXISTS videos (
	id TEXT PRIMARY KEY,
	course_id TEXT NOT NULL,
	section_id TEXT,
	title TEXT NOT NULL,
	path TEXT NOT NULL,
	duration REAL DEFAULT 0,
	order_index INTEGER NOT NULL,
	FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE,
	FOREIGN KEY (section_id) REFERENCES sections(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_videos_course_id ON videos(course_id);
CREATE INDEX IF NOT EXISTS idx_videos_section_id ON videos(section_id);

CREATE TABLE IF NOT EXISTS progress (
	video_id TEXT PRIMARY KEY,
	course_id TEXT NOT NULL,
	current_time REAL DEFAULT 0,
	is_completed BOOLEAN DEFAULT 0,
	last_watched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE,
	FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_progress_course_id ON progress(course_id);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_learning (
	date TEXT PRIMARY KEY,
	duration_seconds INTEGER NOT NULL DEFAULT 0
);
`
