package sanitizer

import (
	"path"
	"strings"
)

func NormalizeStringSlice(items []string, normalizer func(string) string) []string {
	if len(items) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	result := make([]string, 0, len(items))

	for _, item := range items {
		normalized := normalizer(item)

		if normalized == "" {
			continue
		}

		if seen[normalized] {
			continue
		}

		seen[normalized] = true
		result = append(result, normalized)
	}

	return result
}

func NormalizePerks(perks []string) []string {
	return NormalizeStringSlice(perks, NormalizePerk)
}

// NormalizePhotoRefs keeps only the final path segment of every reference,
// whichever separator the client used.
func NormalizePhotoRefs(refs []string) []string {
	return NormalizeStringSlice(refs, MediaRef)
}

func MediaRef(ref string) string {
	ref = strings.TrimSpace(strings.ReplaceAll(ref, "\\", "/"))
	if ref == "" {
		return ""
	}
	base := path.Base(ref)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
