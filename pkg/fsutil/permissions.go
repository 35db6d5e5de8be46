package fsutil

// File and directory permission constants.
const (
	// FileModeDefault is used for downloaded granules: -rw-r--r--.
	FileModeDefault = 0o644
	// FileModeSecure is used for files holding credentials or tokens: -rw-------.
	FileModeSecure = 0o600

	// DirModeDefault is used for output directories: drwxr-xr-x.
	DirModeDefault = 0o755
	// DirModePrivate is used for the config directory: drwx------.
	DirModePrivate = 0o700

	// GroupOtherMask selects the permission bits granted to anyone but the owner.
	GroupOtherMask = 0o077
)
