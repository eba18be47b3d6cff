// Package constants contains application-wide constants to avoid magic numbers and strings.
package constants

import "time"

// Application defaults
const (
	DefaultPort      = "8080"
	DefaultDBFile    = "player.db"
	AppDirName       = "coursetrack"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Database
const (
	BusyTimeout     = 30 * time.Second
	ShutdownTimeout = 5 * time.Second
)

// Settings keys
const (
	SettingAutoplay = "autoplay"
)

// File Permissions
const (
	DirPermissions = 0755
)
