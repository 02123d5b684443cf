package image

// Merge combines configuration layers into a fresh map. Later layers win key
// by key; the inputs are never modified. Merging no layers yields an empty,
// non-nil map.
func Merge(layers ...map[string]string) map[string]string {
	merged := map[string]string{}
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}
