package bot

import "strings"

// parseKVArgs splits "/addsignal symbol=EUR/USD side=LONG ..." style argument
// text into a key/value map. Tokens without '=' are ignored.
func parseKVArgs(text string) map[string]string {
	kv := make(map[string]string)
	for _, part := range strings.Fields(text) {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		kv[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return kv
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
