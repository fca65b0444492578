// Package pkgjson validates npm package names and patches package.json
// files without disturbing their key order or indentation.
package pkgjson

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const maxNameLength = 214

var (
	// Characters allowed in a package name, or in each half of a scoped one.
	urlSafe    = regexp.MustCompile(`^[a-z0-9._-]+$`)
	scoped     = regexp.MustCompile(`^@([^/]+)/([^/]+)$`)
	sanitizeRe = regexp.MustCompile(`[^a-z0-9_-]`)
	edgeRe     = regexp.MustCompile(`^[._]+|[._]+$`)
)

var blacklist = map[string]bool{
	"node_modules": true,
	"favicon.ico":  true,
}

var coreModules = map[string]bool{}

func init() {
	for _, m := range strings.Fields(`assert async_hooks buffer child_process cluster
		console constants crypto dgram diagnostics_channel dns domain events fs
		http http2 https inspector module net os path perf_hooks process punycode
		querystring readline repl stream string_decoder sys timers tls trace_events
		tty url util v8 vm wasi worker_threads zlib`) {
		coreModules[m] = true
	}
}

// ErrInvalidName is wrapped by every ValidateName failure.
var ErrInvalidName = errors.New("invalid package name")

// ValidateName applies npm's rules for names of new packages.
func ValidateName(name string) error {
	fail := func(reason string) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidName, name, reason)
	}
	switch {
	case name == "":
		return fail("name length must be greater than zero")
	case strings.TrimSpace(name) != name:
		return fail("name cannot contain leading or trailing spaces")
	case strings.HasPrefix(name, "."):
		return fail("name cannot start with a period")
	case strings.HasPrefix(name, "_"):
		return fail("name cannot start with an underscore")
	case blacklist[strings.ToLower(name)]:
		return fail(name + " is a blacklisted name")
	case coreModules[strings.ToLower(name)]:
		return fail(name + " is a core module name")
	case len(name) > maxNameLength:
		return fail(fmt.Sprintf("name can no longer contain more than %d characters", maxNameLength))
	case strings.ToLower(name) != name:
		return fail("name can no longer contain capital letters")
	case strings.ContainsAny(name, "~'!()*"):
		return fail(`name can no longer contain special characters ("~'!()*")`)
	}

	if urlSafe.MatchString(name) {
		return nil
	}
	if m := scoped.FindStringSubmatch(name); m != nil {
		if urlSafe.MatchString(m[1]) && urlSafe.MatchString(m[2]) && !strings.HasPrefix(m[2], ".") && !strings.HasPrefix(m[2], "_") {
			return nil
		}
	}
	return fail("name can only contain URL-friendly characters")
}

// Sanitize drops characters npm would reject and trims leading and
// trailing dots and underscores. The result may be empty.
func Sanitize(name string) string {
	return edgeRe.ReplaceAllString(sanitizeRe.ReplaceAllString(name, ""), "")
}
