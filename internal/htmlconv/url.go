package htmlconv

import "net/url"

// ResolveURL resolves a possibly-relative reference against a base address.
// Malformed input is returned unchanged — link emission is best-effort and
// must never abort a conversion.
func ResolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
