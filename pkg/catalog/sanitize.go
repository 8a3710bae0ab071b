package catalog

import "strings"

// stripTags removes anything between angle brackets and trims the result.
// Menu text is rendered as plain text, so markup is dropped rather than
// escaped.
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func (in FoodItemInput) sanitized() FoodItemInput {
	in.Name = stripTags(in.Name)
	in.Description = stripTags(in.Description)
	return in
}

func (in ComboInput) sanitized() ComboInput {
	in.Name = stripTags(in.Name)
	in.Description = stripTags(in.Description)
	return in
}
