package core

// StatusBadgeClass returns the style token set for an open/closed badge.
func StatusBadgeClass(isOpen bool) string {
	if isOpen {
		return "badge badge-open"
	}
	return "badge badge-closed"
}

// SortOptionSelected marks the active sort option.
func SortOptionSelected(active, name string) string {
	if active == name {
		return " selected"
	}
	return ""
}
