package cmr

// Entries returns the objects under feed.entry, skipping anything that is
// not a JSON object. Documents without a feed yield nil.
func Entries(resp Response) []map[string]any {
	feed, ok := resp["feed"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := feed["entry"].([]any)
	if !ok {
		return nil
	}

	entries := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if entry, ok := item.(map[string]any); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
