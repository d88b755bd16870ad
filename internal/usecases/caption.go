package usecases

import "strings"

// BuildRepostCaption builds the caption attached to a repost.
//
// With a nil template the default "#Repost from @owner" header is used,
// followed by the original caption when present. An empty template means the
// caller wants only the original caption back. Any other template has its
// "@username" marker substituted with the actual owner handle, with the
// original caption appended.
func BuildRepostCaption(owner, originalCaption string, template *string) string {
	if template != nil {
		if strings.TrimSpace(*template) == "" {
			return originalCaption
		}
		caption := strings.ReplaceAll(*template, "@username", "@"+owner)
		if originalCaption != "" {
			caption += originalCaption
		}
		return caption
	}

	repost := "#Repost from @" + owner
	if originalCaption != "" {
		return repost + "\n\n" + originalCaption
	}
	return repost
}
