package image

// ExpandVariantTags derives a variant's tags from the image's declared tags.
// Each derived tag appends the variant's suffix to the base tag's name and
// merges variables and versions in the order image, base tag, variant, with
// later layers winning. Rootfs overrides set on the variant take precedence
// over the base tag's.
func ExpandVariantTags(config Config, variant VariantConfig) []Tag {
	tags := make([]Tag, 0, len(config.Tags))
	for _, baseTag := range config.Tags {
		derived := Tag{
			Name:       baseTag.Name + variant.TagSuffix,
			Variables:  Merge(config.Variables, baseTag.Variables, variant.Variables),
			Versions:   Merge(config.Versions, baseTag.Versions, variant.Versions),
			RootfsUser: baseTag.RootfsUser,
			RootfsCopy: baseTag.RootfsCopy,
		}

		if variant.RootfsUser != "" {
			derived.RootfsUser = variant.RootfsUser
		}
		if variant.RootfsCopy != nil {
			derived.RootfsCopy = variant.RootfsCopy
		}

		tags = append(tags, derived)
	}
	return tags
}
