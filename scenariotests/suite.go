package scenariotests

import (
	"strings"

	"github.com/cabot-http/conformance-tests/framework"
	"github.com/cabot-http/conformance-tests/runner"
)

// RunSuite runs the wire-level scenario tests against a fixture server at
// baseURL. The client fetcher may be nil, in which case the tests that invoke
// the client under test are skipped and only the fixture's own behavior is
// verified.
func RunSuite(
	baseURL string,
	client runner.Fetcher,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	env := &environment{
		baseURL: baseURL,
		host:    strings.TrimPrefix(baseURL, "http://"),
		client:  client,
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: env}

		t.Run("framing", DoFramingTests)
		t.Run("error statuses", DoErrorStatusTests)
		t.Run("redirects", DoRedirectTests)
		t.Run("unknown routes", DoUnknownRouteTests)
	})
}
