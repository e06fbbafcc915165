package intent

import (
	"net/url"
	"regexp"
	"strings"
)

// Intent classifies the likely goal behind a search keyword.
type Intent string

const (
	Transactional           Intent = "transactional"
	Product                 Intent = "product"
	Educational             Intent = "educational"
	Navigational            Intent = "navigational"
	Local                   Intent = "local"
	Branded                 Intent = "branded"
	CompetitorNavigational  Intent = "competitor-navigational"
	CompetitorTransactional Intent = "competitor-transactional"
)

// Valid reports whether i is one of the known intent values.
func (i Intent) Valid() bool {
	switch i {
	case Transactional, Product, Educational, Navigational, Local, Branded,
		CompetitorNavigational, CompetitorTransactional:
		return true
	}
	return false
}

// ClassifyOptions carries the optional context signals for classification.
// Zero-value fields simply skip the stages that depend on them.
type ClassifyOptions struct {
	RankingURL       string   // top ranking URL for the keyword, full URL or bare path
	SiteURL          string   // the tracked site's own URL, used for brand detection
	CompetitorBrands []string // known competitor brand names
}

var (
	localRe        = regexp.MustCompile(`(?i)\bnear me\b|\bhours\b|\bdirections\b|\bopen now\b|\bnearby\b|\bclosest\b`)
	navigationalRe = regexp.MustCompile(`(?i)\blog ?in\b|\bsign ?in\b|\bdashboard\b|\bofficial site\b|\bhomepage\b|\bportal\b|\bmy account\b|\bdownload app\b`)
	transactionRe  = regexp.MustCompile(`(?i)\bbuy\b|\bprice\b|\bpricing\b|\bcost\b|\bdiscount\b|\bcoupon\b|\bdeal\b|\bcheap\b|\bsubscribe\b|\bsubscription\b|\bpurchase\b|\border\b|\bfree trial\b|\bsign ?up\b|\bquote\b`)
	productRe      = regexp.MustCompile(`(?i)\bbest\b|\btop\b|\breviews?\b|\bvs\b|\bversus\b|\bcompare\b|\bcomparison\b|\balternatives?\b|\bpros and cons\b|\bratings?\b`)
	educationalRe  = regexp.MustCompile(`(?i)\bhow to\b|\bhow do\b|\bwhat is\b|\bwhat are\b|\bwhy\b|\bguide\b|\btutorial\b|\bexamples?\b|\btips\b|\blearn\b|\bcan you\b|\bmeaning\b|\bdefinition\b`)
	toolNounRe     = regexp.MustCompile(`(?i)\bcalculator\b|\btools?\b|\btracker\b|\bgenerator\b|\bchecker\b|\btemplates?\b|\bplanner\b|\bsoftware\b|\bapp\b`)
	eduQualifierRe = regexp.MustCompile(`(?i)\bhow\b|\bwhat\b|\bguide\b|\btips\b`)

	// competitorTxnRe covers the transactional sub-patterns that turn a
	// competitor mention into a switching/purchase query.
	competitorTxnRe = regexp.MustCompile(`(?i)\bbuy\b|\bprice\b|\bpricing\b|\bcost\b|\balternatives?\b|\bvs\b|\bversus\b|\breviews?\b|\bcancel\b|\brefund\b|\bmigrate\b|\bswitch\b`)

	// geoRe matches "in <Capitalized place>" on the raw keyword text.
	geoRe = regexp.MustCompile(`\bin [A-Z][a-z]+`)

	blogPathRe    = regexp.MustCompile(`(?i)/(blog|guides?|faq|how-to|howto|learn|resources?|articles?|news)(/|$)`)
	productPathRe = regexp.MustCompile(`(?i)/(calculator|tools?|pricing|plans|sign-?up|demo|products?|features|solutions|integrations)(/|$)`)
)

// pageKind is the inferred type of a ranking URL's landing page.
type pageKind int

const (
	pageUnknown pageKind = iota
	pageProduct
	pageBlog
)

// Classify maps a keyword to an intent via an ordered heuristic cascade.
// The stage order is part of the contract: later rules are only reachable
// when earlier ones do not match, so reordering changes results on
// ambiguous keywords. It never fails; unclassifiable text defaults to
// Educational.
func Classify(keyword string, opts ClassifyOptions) Intent {
	raw := strings.TrimSpace(keyword)
	kw := strings.ToLower(raw)

	// 1. Local intent phrases beat everything else.
	if localRe.MatchString(kw) {
		return Local
	}

	// 2. The site's own brand in the keyword.
	if brand := brandToken(opts.SiteURL); brand != "" && strings.Contains(kw, brand) {
		return Branded
	}

	// 3. Competitor brand mentions, split by transactional sub-intent.
	for _, b := range opts.CompetitorBrands {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" || !strings.Contains(kw, b) {
			continue
		}
		if competitorTxnRe.MatchString(kw) {
			return CompetitorTransactional
		}
		return CompetitorNavigational
	}

	// 4. Generic navigational phrases.
	if navigationalRe.MatchString(kw) {
		return Navigational
	}

	// 5. Explicit transactional phrases.
	if transactionRe.MatchString(kw) {
		return Transactional
	}

	// 6. Product research / comparison phrases.
	if productRe.MatchString(kw) {
		return Product
	}

	// 7. Infer from the ranking page when we have one. Keyword text
	// still overrides a product-page inference for clearly educational
	// queries.
	kind := classifyPage(opts.RankingURL)
	switch kind {
	case pageProduct:
		if educationalRe.MatchString(kw) {
			return Educational
		}
		return Transactional
	case pageBlog:
		if toolNounRe.MatchString(kw) {
			return Product
		}
		return Educational
	}

	// 8. Tool/product nouns without URL context.
	if toolNounRe.MatchString(kw) {
		if eduQualifierRe.MatchString(kw) {
			return Educational
		}
		return Transactional
	}

	// 9. Weak educational fallback.
	if educationalRe.MatchString(kw) {
		return Educational
	}

	// 10. Geographic pattern ("in Denver").
	if geoRe.MatchString(raw) {
		return Local
	}

	// 11. Default. The page inference was exhaustive above, so anything
	// left is treated as informational.
	return Educational
}

// brandToken extracts the site's brand token from its URL: the hostname
// minus a leading "www." and the TLD, lowercased. Returns "" when the
// URL is absent or unusable.
func brandToken(siteURL string) string {
	if siteURL == "" {
		return ""
	}
	host := siteURL
	if u, err := url.Parse(siteURL); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	if dot := strings.IndexByte(host, '.'); dot > 0 {
		host = host[:dot]
	}
	if len(host) < 3 {
		return ""
	}
	return host
}

// classifyPage infers whether a ranking URL is a product-style or
// blog-style page. Blog patterns are checked first and disqualify a
// product match; the two kinds are mutually exclusive.
func classifyPage(rankingURL string) pageKind {
	if rankingURL == "" {
		return pageUnknown
	}
	path := rankingURL
	if u, err := url.Parse(rankingURL); err == nil && (u.Host != "" || u.Path != "") {
		path = u.Path
	}
	if blogPathRe.MatchString(path) {
		return pageBlog
	}
	if path == "" || path == "/" || productPathRe.MatchString(path) {
		return pageProduct
	}
	return pageUnknown
}
