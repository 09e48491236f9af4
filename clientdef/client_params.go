// Package clientdef defines the invocation contract for the client under test
// and the reference client. Both are external binaries; this package only
// knows how to turn a (url, output file) pair into a command line.
package clientdef

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultUserAgent pins the client under test to the reference client's
// identity, so servers that vary responses by user agent give both fetches the
// same bytes.
const DefaultUserAgent = "curl/7.68.0"

// DefaultTimeoutSeconds bounds every fetch; a hung target must not stall the
// whole batch.
const DefaultTimeoutSeconds = 30

// ClientDefinition describes how to invoke the client under test. The client
// accepts a URL positional argument, flags for its request timeout and its
// DNS/read timeout variants, a user-agent string, and an output file path. It
// exits 0 on success and non-zero on failure, writing the complete raw
// response to the output file.
type ClientDefinition struct {
	Command            string              `json:"command"`
	TimeoutSeconds     ldvalue.OptionalInt `json:"timeoutSeconds,omitempty"`
	DNSTimeoutSeconds  ldvalue.OptionalInt `json:"dnsTimeoutSeconds,omitempty"`
	ReadTimeoutSeconds ldvalue.OptionalInt `json:"readTimeoutSeconds,omitempty"`
	UserAgent          string              `json:"userAgent,omitempty"`
}

// Args builds the argument list for one fetch.
func (c ClientDefinition) Args(url, outPath string) []string {
	args := []string{
		url,
		"--timeout", strconv.Itoa(c.TimeoutSeconds.OrElse(DefaultTimeoutSeconds)),
	}
	if c.DNSTimeoutSeconds.IsDefined() {
		args = append(args, "--dns-timeout", strconv.Itoa(c.DNSTimeoutSeconds.IntValue()))
	}
	if c.ReadTimeoutSeconds.IsDefined() {
		args = append(args, "--read-timeout", strconv.Itoa(c.ReadTimeoutSeconds.IntValue()))
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	args = append(args, "--user-agent", ua, "-o", outPath)
	return args
}

// ReferenceDefinition describes how to invoke the trusted reference client.
// Its invocation surface is narrower: a URL and an output file. It is run
// best-effort under an external timeout; failures are tolerated and the
// captured output may be empty.
type ReferenceDefinition struct {
	Command string `json:"command"`
}

func (r ReferenceDefinition) Args(url, outPath string) []string {
	return []string{url, "-o", outPath}
}

// HarnessConfig is the optional JSON configuration file for a harness run.
type HarnessConfig struct {
	Client    ClientDefinition    `json:"client"`
	Reference ReferenceDefinition `json:"reference"`
}

// LoadConfig reads a HarnessConfig from a JSON file.
func LoadConfig(path string) (HarnessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HarnessConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg HarnessConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return HarnessConfig{}, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	return cfg, nil
}
