// Package redaction hides credential-bearing environment values from CLI
// output and log records.
package redaction

import (
	"regexp"
	"strings"
)

// SensitivePatterns contains compiled patterns for detecting sensitive information
type SensitivePatterns struct {
	// CredentialPatterns match credentials in log attribute keys
	CredentialPatterns []*regexp.Regexp
	// EnvVarPatterns match sensitive environment variable names
	EnvVarPatterns []*regexp.Regexp
	// AllowedEnvVars contains environment variable names that are safe to print
	AllowedEnvVars map[string]bool

	combinedCredentialPattern *regexp.Regexp
	combinedEnvVarPattern     *regexp.Regexp
}

// DefaultSensitivePatterns returns a default set of sensitive patterns
func DefaultSensitivePatterns() *SensitivePatterns {
	credentialPatterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)(password|passwd|token|secret|api_key|authtok)`),
		regexp.MustCompile(`(?i)authorization`),
		regexp.MustCompile(`(?i)cookie`),
	}

	// PAM modules export Kerberos caches, session cookies and tokens through
	// the environment list.
	envVarPatterns := []*regexp.Regexp{
		regexp.MustCompile(`.*PASS.*`),
		regexp.MustCompile(`.*SECRET.*`),
		regexp.MustCompile(`.*TOKEN.*`),
		regexp.MustCompile(`.*KEY.*`),
		regexp.MustCompile(`.*CREDENTIAL.*`),
		regexp.MustCompile(`.*AUTH.*`),
		regexp.MustCompile(`.*COOKIE.*`),
		regexp.MustCompile(`^KRB5CCNAME$`),
	}

	allowedEnvVars := map[string]bool{
		"PATH":            true,
		"HOME":            true,
		"USER":            true,
		"LOGNAME":         true,
		"LANG":            true,
		"LANGUAGE":        true,
		"SHELL":           true,
		"TERM":            true,
		"TZ":              true,
		"MAIL":            true,
		"XDG_RUNTIME_DIR": true,
		"XDG_SESSION_ID":  true,
		"XDG_SEAT":        true,
		"XDG_VTNR":        true,
	}

	return NewSensitivePatterns(credentialPatterns, envVarPatterns, allowedEnvVars)
}

// NewSensitivePatterns builds a SensitivePatterns and precompiles the
// combined matchers.
func NewSensitivePatterns(credential, envVar []*regexp.Regexp, allowed map[string]bool) *SensitivePatterns {
	sp := &SensitivePatterns{
		CredentialPatterns: credential,
		EnvVarPatterns:     envVar,
		AllowedEnvVars:     allowed,
	}
	sp.combinedCredentialPattern = combinePatterns(credential)
	sp.combinedEnvVarPattern = combinePatterns(envVar)
	return sp
}

// combinePatterns joins patterns into one alternation, or returns nil when
// there is nothing to combine.
func combinePatterns(patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}
	parts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		parts = append(parts, "(?:"+p.String()+")")
	}
	re, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil
	}
	return re
}

// IsSensitiveKey checks if a log attribute key names a credential
func (sp *SensitivePatterns) IsSensitiveKey(key string) bool {
	if sp.combinedCredentialPattern == nil {
		return false
	}
	return sp.combinedCredentialPattern.MatchString(key)
}

// IsSensitiveEnvVar checks if an environment variable name is sensitive.
// Allowed names are never sensitive; other names are matched case-insensitively.
func (sp *SensitivePatterns) IsSensitiveEnvVar(name string) bool {
	upperName := strings.ToUpper(name)
	if sp.AllowedEnvVars[upperName] {
		return false
	}
	if sp.combinedEnvVarPattern == nil {
		return false
	}
	return sp.combinedEnvVarPattern.MatchString(upperName)
}
