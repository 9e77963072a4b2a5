package domain

// ValidDocumentID reports whether id is non-empty and only uses [A-Za-z0-9_-],
// so archived document ids can never name a path outside the archive
func ValidDocumentID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
