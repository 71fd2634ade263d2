package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// DefaultLanguage is used when no language can be detected at all.
const DefaultLanguage = "en"

// maxAcceptLanguageLength bounds header parsing; RFC 7231 sets no limit but
// 4KB is generous for legitimate headers.
const maxAcceptLanguageLength = 4096

// maxLangCodeLength follows the RFC 5646 recommendation.
const maxLangCodeLength = 35

type langWithQ struct {
	lang string
	q    float64
}

// parseAcceptLanguageHeader parses an Accept-Language header into language
// tags ordered by quality value, tolerating malformed entries.
func parseAcceptLanguageHeader(header string) []langWithQ {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var languages []langWithQ
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		langAndQ := strings.Split(part, ";")
		lang := strings.ToLower(strings.TrimSpace(langAndQ[0]))
		q := 1.0

		if len(langAndQ) > 1 {
			qPart := strings.TrimSpace(langAndQ[1])
			if rest, ok := strings.CutPrefix(qPart, "q="); ok {
				if qVal, err := strconv.ParseFloat(rest, 64); err == nil && qVal >= 0 && qVal <= 1 {
					q = qVal
				}
			}
		}

		if lang != "" {
			languages = append(languages, langWithQ{lang: lang, q: q})
		}
	}

	slices.SortStableFunc(languages, func(a, b langWithQ) int {
		return cmp.Compare(b.q, a.q)
	})
	return languages
}

// ParseAcceptLanguage negotiates a language per RFC 7231. Exact matches are
// preferred over base-language matches (en-US before en), both in quality
// order. Returns defaultLang when nothing matches.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}

	normalized := make([]string, len(supportedLangs))
	for i, lang := range supportedLangs {
		normalized[i] = strings.ToLower(lang)
	}

	languages := parseAcceptLanguageHeader(header)

	for _, lq := range languages {
		if slices.Contains(normalized, lq.lang) {
			return lq.lang
		}
	}

	for _, lq := range languages {
		if idx := strings.Index(lq.lang, "-"); idx > 0 {
			if base := lq.lang[:idx]; slices.Contains(normalized, base) {
				return base
			}
		}
	}

	return defaultLang
}

// validateLang normalizes a candidate language code against the supported
// set, returning "" when the code is unusable. An empty supported set
// accepts any well-formed code.
func validateLang(lang string, supported []string) string {
	if lang == "" || len(lang) > maxLangCodeLength {
		return ""
	}

	normalized := strings.ToLower(lang)
	if len(supported) == 0 {
		return normalized
	}

	for _, s := range supported {
		if strings.ToLower(s) == normalized {
			return normalized
		}
	}
	if idx := strings.Index(normalized, "-"); idx > 0 {
		base := normalized[:idx]
		for _, s := range supported {
			if strings.ToLower(s) == base {
				return base
			}
		}
	}
	return ""
}
