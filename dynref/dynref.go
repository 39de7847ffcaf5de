// Package dynref parses CloudFormation dynamic references, the
// {{resolve:service:key}} markers resolved at deploy time from an external
// secret or parameter store rather than from another template.
//
// https://docs.aws.amazon.com/AWSCloudFormation/latest/UserGuide/dynamic-references.html
package dynref

import (
	"regexp"
	"strings"
)

// Services with first-class rendering support.
const (
	ServiceSSM            = "ssm"
	ServiceSSMSecure      = "ssm-secure"
	ServiceSecretsManager = "secretsmanager"
)

// Compiled once at package initialization and shared read-only.
var (
	markerRe      = regexp.MustCompile(`\{\{resolve:.*?}}`)
	serviceKeyRe  = regexp.MustCompile(`^\{\{resolve:(ssm|ssm-secure|secretsmanager):(.+?)}}$`)
	placeholderRe = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)}`)
)

// Ref is a dynamic reference split into its service tag and key part.
type Ref struct {
	// Service is one of the Service* constants
	Service string
	// Key is the raw payload, e.g. "MySecret:SecretString:username"
	Key string
}

// FindAll returns every non-overlapping {{resolve:...}} marker in s, braces
// included, in order of appearance. Each marker ends at the first }}; a single
// scalar may contain several.
func FindAll(s string) []string {
	return markerRe.FindAllString(s, -1)
}

// Parse splits a whole marker into service and key. ok is false when the
// service tag is not recognized or the marker is malformed.
func Parse(marker string) (ref Ref, ok bool) {
	m := serviceKeyRe.FindStringSubmatch(marker)
	if m == nil {
		return Ref{}, false
	}

	return Ref{Service: m[1], Key: m[2]}, true
}

// NormalizeKey rewrites ${Var} placeholders to $Var and strips stray braces,
// keeping composite keys like ${MySecret}:SecretString:${username} readable as
// diagram node names.
func NormalizeKey(s string) string {
	normalized := placeholderRe.ReplaceAllString(s, `$$${1}`)
	return strings.NewReplacer("{", "", "}", "").Replace(normalized)
}
