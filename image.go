package mdmd

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultReferenceWidth is the pixel width that corresponds to a scale of
// 1.0 when an <img> width is given without a percent sign.
const DefaultReferenceWidth = 600

var (
	imgTagPattern = regexp.MustCompile(`(?i)<img[ \t\n\r\f]+.*?src[ \t\n\r\f]*=.+?>`)
	srcPattern    = attributePattern("src")
	widthPattern  = attributePattern("width")
	numberPattern = regexp.MustCompile(`^[+]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)`)
)

// attributePattern matches name=value where value is double-quoted,
// single-quoted, or bare. The value must be followed by whitespace.
func attributePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + name + `[ \t\n\r\f]*=[ \t\n\r\f]*(?:"(.*?)"|'(.*?)'|(.+?))[ \t\n\r\f]+`)
}

// ImageRewriter converts raw HTML <img> tags embedded in text into image
// directives. The zero value uses DefaultReferenceWidth.
type ImageRewriter struct {
	ReferenceWidth float64
}

// RewriteImages rewrites s with the default ImageRewriter.
func RewriteImages(s string) string {
	return ImageRewriter{}.Rewrite(s)
}

// Rewrite replaces every <img ...> tag in s, left to right, with an image
// directive. A tag carrying a width becomes a scale directive followed by
// the image directive. Text without image tags is returned unchanged.
//
// This is a textual rewrite, not an HTML parser: attributes that cannot be
// extracted degrade to a best-effort directive instead of failing.
func (r ImageRewriter) Rewrite(s string) string {
	loc := imgTagPattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	var b strings.Builder
	for loc != nil {
		b.WriteString(s[:loc[0]])
		b.WriteString(r.directive(s[loc[0]:loc[1]]))
		s = s[loc[1]:]
		loc = imgTagPattern.FindStringIndex(s)
	}
	b.WriteString(s)
	return b.String()
}

// directive builds the replacement for a single matched tag.
func (r ImageRewriter) directive(tag string) string {
	attrs := tag[len("<img") : len(tag)-1]
	attrs = strings.TrimSuffix(attrs, `\`)
	// Guarantees every attribute value is followed by whitespace.
	attrs += " "

	src, ok := attribute(srcPattern, attrs)
	if !ok {
		src = strings.TrimSpace(attrs)
	}
	if width, ok := attribute(widthPattern, attrs); ok {
		if scale, ok := r.scale(width); ok {
			return "[]( scale = " + formatScale(scale) + ")![](" + src + ")"
		}
	}
	return "![](" + src + ")"
}

// scale converts an HTML width to a scale factor. Percentages are relative
// to 100, plain numbers to the reference width.
func (r ImageRewriter) scale(width string) (float64, bool) {
	percent := strings.HasSuffix(width, "%")
	n, err := strconv.ParseFloat(numberPattern.FindString(strings.TrimSuffix(width, "%")), 64)
	if err != nil {
		return 0, false
	}
	if percent {
		return n / 100, true
	}
	ref := r.ReferenceWidth
	if ref <= 0 {
		ref = DefaultReferenceWidth
	}
	return n / ref, true
}

// attribute returns the unquoted value of the first match of p in attrs.
func attribute(p *regexp.Regexp, attrs string) (string, bool) {
	m := p.FindStringSubmatchIndex(attrs)
	if m == nil {
		return "", false
	}
	for g := 1; g <= 3; g++ {
		if start := m[2*g]; start >= 0 {
			return attrs[start:m[2*g+1]], true
		}
	}
	return "", false
}

// formatScale prints the shortest representation of f that round-trips.
// Decimal exponents below -4 or from 16 up use exponent notation;
// otherwise plain decimals keep at least one fractional digit.
func formatScale(f float64) string {
	e := strconv.FormatFloat(f, 'e', -1, 64)
	if exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:]); err == nil && f != 0 && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
