package javadoc

// Merge reconciles an existing comment with a freshly generated one and
// returns a new [Comment]. Neither input is modified.
//
// The description comes from old unless old has none. Structural tags
// ([KindTypeParam], [KindParam], [KindReturn], [KindThrows]) follow the shape
// of generated: a tag present in both keeps old's body (or generated's when
// old's is empty), a tag only in generated is added, and a tag only in old is
// dropped. Exception types match on their simple name, and a matched tag keeps
// old's spelling of the type. [KindAuthor], [KindSince], and [KindVersion] prefer old and fall
// back to generated. Custom tags from old are all kept; generated custom tags
// are added only for names old does not use.
//
// Merging a comment with itself returns an equal comment.
func Merge(old, generated *Comment) *Comment {
	description := old.Description()
	if !old.HasDescription() {
		description = generated.Description()
	}

	var tags []Tag

	for _, t := range old.Tags() {
		switch t.Kind {
		case KindAuthor, KindSince, KindVersion:
			if _, ok := generated.Tag(t.Kind, ""); !ok {
				tags = append(tags, t)
			}

		case KindCustom:
			tags = append(tags, t)
		}
	}

	for _, t := range generated.Tags() {
		switch {
		case t.Kind.Structural():
			if prev, ok := old.Tag(t.Kind, t.Key); ok {
				t.Key = prev.Key

				if prev.Body != "" {
					t.Body = prev.Body
				}
			}

			tags = append(tags, t)

		case t.Kind == KindCustom:
			if _, ok := old.Tag(KindCustom, t.Name); !ok {
				tags = append(tags, t)
			}

		default:
			if prev, ok := old.Tag(t.Kind, ""); ok {
				t = prev
			}

			tags = append(tags, t)
		}
	}

	return New(description, tags...)
}
