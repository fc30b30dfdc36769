// Package cli turns the fetch command line into a request and prints the
// outcome.
package cli

import "strings"

const (
	// DefaultURL is requested when no URL argument is given.
	DefaultURL = "https://hyper.rs"

	// PrintBodyFlag must appear verbatim as the third argument to print the body.
	PrintBodyFlag = "--print-body"
)

type Method int

const (
	MethodGet Method = iota
	MethodPost
)

func (m Method) String() string {
	if m == MethodPost {
		return "POST"
	}
	return "GET"
}

// ParseMethod maps "post" in any letter case to MethodPost. Every other
// token, including the empty one, is MethodGet.
func ParseMethod(token string) Method {
	if strings.EqualFold(token, "post") {
		return MethodPost
	}
	return MethodGet
}

// RequestSpec is everything the command needs to send its one request.
type RequestSpec struct {
	Method    Method
	URL       string
	PrintBody bool

	// URLDefaulted is set when URL was filled in from DefaultURL.
	URLDefaulted bool
}

// ParseArgs reads [method] [url] [--print-body] from args, which must not
// include the program name. It never fails and never reads os.Args.
// Arguments past the third are ignored.
func ParseArgs(args []string) RequestSpec {
	spec := RequestSpec{
		Method:       MethodGet,
		URL:          DefaultURL,
		URLDefaulted: true,
	}

	if len(args) > 0 {
		spec.Method = ParseMethod(args[0])
	}
	if len(args) > 1 {
		spec.URL = args[1]
		spec.URLDefaulted = false
	}
	if len(args) > 2 {
		spec.PrintBody = args[2] == PrintBodyFlag
	}

	return spec
}
