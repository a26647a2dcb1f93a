package shared

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorKind is the stable message prefix that identifies a fatal error
// category across package boundaries.
type ErrorKind string

const (
	KindUnsupportedOperator    ErrorKind = "unsupported version operator"
	KindInvalidSpecFile        ErrorKind = "invalid spec file"
	KindChannelNotAllowed      ErrorKind = "channel not allowed"
	KindChannelFetch           ErrorKind = "channel fetch failed"
	KindResolution             ErrorKind = "resolution failed"
	KindUnknownChannel         ErrorKind = "unknown channel"
	KindInvalidPackageMetadata ErrorKind = "invalid package metadata"
)

func NewUnsupportedOperatorError(spec string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s in %q: only exact matches (=, ==) are supported on the command line", KindUnsupportedOperator, spec))
}

func NewInvalidSpecFileError(path string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s %s: file should be a text file containing package specs", KindInvalidSpecFile, path)).
		WithCause(cause)
}

func NewChannelNotAllowedError(channel string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodePermissionDenied).
		WithMsg(fmt.Sprintf("%s: %s", KindChannelNotAllowed, channel))
}

func NewChannelFetchError(channel string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("%s: %s", KindChannelFetch, channel)).
		WithCause(cause)
}

// NewResolutionError keeps the solver diagnostic in the message verbatim.
func NewResolutionError(cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s", KindResolution, ErrorMessage(cause))).
		WithCause(cause)
}

func NewUnknownChannelError(channel string, filename string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("%s %q referenced by %s", KindUnknownChannel, channel, filename))
}

func NewInvalidPackageMetadataError(filename string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("%s for %s", KindInvalidPackageMetadata, filename)).
		WithCause(cause)
}

// IsKind reports whether err was built for the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var builder *errbuilder.ErrBuilder
	if !errors.As(err, &builder) {
		return false
	}
	return strings.HasPrefix(builder.Msg, string(kind))
}

// ErrorMessage returns the builder message when err carries one and the
// plain error text otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
