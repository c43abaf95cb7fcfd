package request

import (
	"errors"
	"strings"
)

const (
	AcceptedMethod  = "GET"
	AcceptedVersion = "HTTP/1.1"
)

// ErrorKind says which check rejected a request line.
type ErrorKind int

const (
	MissingMethod ErrorKind = iota
	UnsupportedMethod
	MissingURI
	ResourceNotFound
	MissingVersion
	UnsupportedVersion
)

var (
	ErrMissingMethod      = errors.New("method not specified")
	ErrUnsupportedMethod  = errors.New("unsupported method")
	ErrMissingURI         = errors.New("URI not specified")
	ErrResourceNotFound   = errors.New("requested resource does not exist")
	ErrMissingVersion     = errors.New("HTTP version not specified")
	ErrUnsupportedVersion = errors.New("unsupported version of HTTP, use HTTP/1.1 instead")
)

var kindErrors = map[ErrorKind]error{
	MissingMethod:      ErrMissingMethod,
	UnsupportedMethod:  ErrUnsupportedMethod,
	MissingURI:         ErrMissingURI,
	ResourceNotFound:   ErrResourceNotFound,
	MissingVersion:     ErrMissingVersion,
	UnsupportedVersion: ErrUnsupportedVersion,
}

func (k ErrorKind) String() string {
	switch k {
	case MissingMethod:
		return "missing_method"
	case UnsupportedMethod:
		return "unsupported_method"
	case MissingURI:
		return "missing_uri"
	case ResourceNotFound:
		return "resource_not_found"
	case MissingVersion:
		return "missing_version"
	case UnsupportedVersion:
		return "unsupported_version"
	default:
		return "unknown"
	}
}

// ParseError is returned by ParseRequestLine. It matches the Err* sentinel
// of its kind under errors.Is.
type ParseError struct {
	Kind  ErrorKind
	Token string
}

func (e *ParseError) Error() string {
	msg := kindErrors[e.Kind].Error()
	if e.Token != "" {
		return msg + ": " + e.Token
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return kindErrors[e.Kind]
}

// ParseRequestLine validates METHOD URI VERSION in that order. Tokens past
// the third are ignored. The URI is checked for existence under the
// checker's root but is otherwise kept verbatim.
func ParseRequestLine(line string, checker ResourceChecker) (*Request, error) {
	parts := strings.Fields(line)

	if len(parts) < 1 {
		return nil, &ParseError{Kind: MissingMethod}
	}
	method := parts[0]
	if method != AcceptedMethod {
		return nil, &ParseError{Kind: UnsupportedMethod, Token: method}
	}

	if len(parts) < 2 {
		return nil, &ParseError{Kind: MissingURI}
	}
	uri := parts[1]
	if !checker.Exists(uri) {
		return nil, &ParseError{Kind: ResourceNotFound, Token: uri}
	}

	if len(parts) < 3 {
		return nil, &ParseError{Kind: MissingVersion}
	}
	version := parts[2]
	if version != AcceptedVersion {
		return nil, &ParseError{Kind: UnsupportedVersion, Token: version}
	}

	return &Request{
		Method:      method,
		URI:         uri,
		HTTPVersion: version,
	}, nil
}
