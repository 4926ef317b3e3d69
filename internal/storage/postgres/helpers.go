package postgres

// derefString safely dereferences a string pointer, returning empty string if nil
func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// textOrNil maps an empty string to NULL for nullable text columns.
func textOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
