package preference

import "sort"

// Ordered returns the keys of values with the default keys first, in seeding
// order, followed by any other keys sorted by name.
func Ordered(values map[string]string) []string {
	out := make([]string, 0, len(values))
	known := make(map[string]struct{}, len(defaults))

	for _, e := range defaults {
		known[string(e.Key)] = struct{}{}
		if _, ok := values[string(e.Key)]; ok {
			out = append(out, string(e.Key))
		}
	}

	extra := make([]string, 0, len(values))
	for k := range values {
		if _, ok := known[k]; !ok {
			extra = append(extra, k)
		}
	}

	sort.Strings(extra)

	return append(out, extra...)
}
