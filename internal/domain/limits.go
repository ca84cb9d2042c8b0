package domain

// Hard caps enforced by the library. They apply to the single active user.
const (
	MaxWordlistsPerUser      = 1000
	MaxFoldersPerUser        = 500
	MaxFlashcardsPerWordlist = 5000
	MaxWordlistsPerFolder    = 500

	// MaxCommentLength is measured in characters (runes), not bytes.
	MaxCommentLength = 500
)
