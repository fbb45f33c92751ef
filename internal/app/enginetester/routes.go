package enginetester

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const routedPathSegment = "/idou/"

type routeRule struct {
	pattern *regexp.Regexp
	suffix  string
}

// Evaluated top to bottom, first match wins. Only plain `_req.json` names
// participate; `_req3.json` requests always go to the base URL.
var routeRules = []routeRule{
	{regexp.MustCompile(`^03.*_req\.json$`), "chkkeiyakuOver"},
	{regexp.MustCompile(`^05.*_req\.json$`), "jissekicalc"},
	{regexp.MustCompile(`^06.*_req\.json$`), "adjustget"},
	{regexp.MustCompile(`^08.*_req\.json$`), "jissekiif"},
	{regexp.MustCompile(`^09.*_req\.json$`), "jissekirep"},
	{regexp.MustCompile(`^11.*_req\.json$`), "kekkarep"},
	{regexp.MustCompile(`^15_1.*_req\.json$`), "meisaiif"},
	{regexp.MustCompile(`^15_2.*_req\.json$`), "meisairep"},
}

// ResolvePostURL computes the POST destination for one request file.
// Rewriting applies only to URLs whose path contains "/idou/"; for those,
// the first matching rule appends its suffix to the path, keeping any query
// and fragment. Everything else passes through unchanged.
func ResolvePostURL(baseURL, fileName string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "parse target url %s", baseURL)
	}

	if !strings.Contains(parsed.Path, routedPathSegment) {
		return baseURL, nil
	}

	for _, rule := range routeRules {
		if rule.pattern.MatchString(fileName) {
			parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/" + rule.suffix
			parsed.RawPath = ""
			return parsed.String(), nil
		}
	}

	return baseURL, nil
}
