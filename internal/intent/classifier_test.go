package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		opts    ClassifyOptions
		want    Intent
	}{
		{"local near me", "coffee shops near me", ClassifyOptions{}, Local},
		{"local hours", "acme store hours", ClassifyOptions{}, Local},
		{"local beats brand", "acmetools hours", ClassifyOptions{SiteURL: "https://www.acmetools.com"}, Local},

		{"branded", "acmetools coupon code", ClassifyOptions{SiteURL: "https://www.acmetools.com"}, Branded},
		{"branded bare domain", "is acmetools legit", ClassifyOptions{SiteURL: "acmetools.com"}, Branded},
		{"no site url skips brand stage", "acmetools coupon code", ClassifyOptions{}, Transactional},

		{"competitor navigational", "rivalco dashboard features", ClassifyOptions{CompetitorBrands: []string{"RivalCo"}}, CompetitorNavigational},
		{"competitor transactional", "rivalco pricing", ClassifyOptions{CompetitorBrands: []string{"rivalco"}}, CompetitorTransactional},
		{"competitor alternative", "rivalco alternatives", ClassifyOptions{CompetitorBrands: []string{"rivalco"}}, CompetitorTransactional},
		{"brand beats competitor", "acmetools vs rivalco", ClassifyOptions{SiteURL: "https://acmetools.com", CompetitorBrands: []string{"rivalco"}}, Branded},

		{"navigational login", "project tracker login", ClassifyOptions{}, Navigational},
		{"navigational official site", "acme official site", ClassifyOptions{}, Navigational},

		{"transactional buy", "buy running shoes", ClassifyOptions{}, Transactional},
		{"transactional free trial", "crm free trial", ClassifyOptions{}, Transactional},
		{"transactional sign up", "newsletter sign up", ClassifyOptions{}, Transactional},

		{"product best", "best running shoes", ClassifyOptions{}, Product},
		{"product vs", "standing desk vs sitting desk", ClassifyOptions{}, Product},
		{"product pros and cons", "remote work pros and cons", ClassifyOptions{}, Product},

		{"product page infers transactional", "running shoes", ClassifyOptions{RankingURL: "/pricing"}, Transactional},
		{"root page infers transactional", "running shoes", ClassifyOptions{RankingURL: "https://example.com/"}, Transactional},
		{"educational text overrides product page", "how to choose running shoes", ClassifyOptions{RankingURL: "/products/shoes"}, Educational},
		{"blog page infers educational", "how to tie running shoes", ClassifyOptions{RankingURL: "/blog/how-to-tie-shoes"}, Educational},
		{"blog checked before product", "mortgage rates", ClassifyOptions{RankingURL: "/blog/tools-roundup"}, Educational},
		{"blog page with tool noun", "mortgage calculator", ClassifyOptions{RankingURL: "/blog/mortgage-calculator"}, Product},

		{"tool noun no url", "mortgage calculator", ClassifyOptions{}, Transactional},
		{"tool noun with edu qualifier", "how does a mortgage calculator work", ClassifyOptions{}, Educational},

		{"educational fallback", "can you freeze bread", ClassifyOptions{}, Educational},
		{"geographic", "plumbers in Denver", ClassifyOptions{}, Local},
		{"default educational", "blue widgets", ClassifyOptions{}, Educational},
		{"unmatched path defaults educational", "blue widgets", ClassifyOptions{RankingURL: "/about"}, Educational},
		{"empty keyword", "", ClassifyOptions{}, Educational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.keyword, tt.opts)
			if got != tt.want {
				t.Errorf("Classify(%q, %+v) = %v, want %v", tt.keyword, tt.opts, got, tt.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	opts := ClassifyOptions{
		RankingURL:       "/blog/guide",
		SiteURL:          "https://acmetools.com",
		CompetitorBrands: []string{"rivalco"},
	}
	first := Classify("rivalco vs acme running shoes", opts)
	for i := 0; i < 50; i++ {
		if got := Classify("rivalco vs acme running shoes", opts); got != first {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestBrandToken(t *testing.T) {
	tests := []struct {
		name    string
		siteURL string
		want    string
	}{
		{"full url", "https://www.acmetools.com", "acmetools"},
		{"no scheme", "acmetools.com", "acmetools"},
		{"subdomain kept", "https://app.acmetools.com", "app"},
		{"with port", "https://acmetools.com:8080", "acmetools"},
		{"empty", "", ""},
		{"too short", "ab.io", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := brandToken(tt.siteURL); got != tt.want {
				t.Errorf("brandToken(%q) = %q, want %q", tt.siteURL, got, tt.want)
			}
		})
	}
}
