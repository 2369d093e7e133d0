package docgen

import "strings"

// interpolate substitutes the recognized placeholders in a template.
// Unknown placeholders pass through untouched; absent optional fields
// substitute the empty string.
func interpolate(template string, req *GenerateRequest) string {
	r := strings.NewReplacer(
		"{doc_type}", req.DocType,
		"{title}", req.Title,
		"{content}", req.Content,
		"{context}", req.Context,
	)
	return r.Replace(template)
}
