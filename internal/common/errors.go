// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Kind tags an Error with the layer that produced it.
type Kind int

// Error kinds.
const (
	KindUnknown Kind = iota
	KindConfig
	KindInput
	KindTransport
	KindValidation
	KindClassification
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration"
	case KindInput:
		return "input"
	case KindTransport:
		return "transport"
	case KindValidation:
		return "validation"
	case KindClassification:
		return "classification"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks against an Error's kind.
var (
	ErrConfig         = errors.New("configuration error")
	ErrInput          = errors.New("input error")
	ErrTransport      = errors.New("transport error")
	ErrValidation     = errors.New("validation error")
	ErrClassification = errors.New("classification failed")
	ErrOutput         = errors.New("output error")
)

var kindSentinels = map[Kind]error{
	KindConfig:         ErrConfig,
	KindInput:          ErrInput,
	KindTransport:      ErrTransport,
	KindValidation:     ErrValidation,
	KindClassification: ErrClassification,
	KindOutput:         ErrOutput,
}

// Error is the tagged error type shared by every layer. Msg is the text this
// layer adds; Err is the cause, whose message is appended.
type Error struct {
	Err     error
	Msg     string
	ClaimID string
	Kind    Kind
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err == nil:
		return e.Msg
	default:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel, so errors.Is(err, ErrTransport) works on any
// chain containing a transport Error.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// NewConfigError reports bad arguments or a missing credential.
func NewConfigError(msg string, err error) error {
	return &Error{Kind: KindConfig, Msg: msg, Err: err}
}

// NewInputError reports an unreadable or malformed claims file.
func NewInputError(msg string, err error) error {
	return &Error{Kind: KindInput, Msg: msg, Err: err}
}

// NewTransportError reports a failed or malformed HTTP exchange.
func NewTransportError(msg string, err error) error {
	return &Error{Kind: KindTransport, Msg: msg, Err: err}
}

// NewValidationError reports a model reply that does not match the schema.
func NewValidationError(msg string, err error) error {
	return &Error{Kind: KindValidation, Msg: msg, Err: err}
}

// NewClassificationError wraps any failure to classify the claim with the given id.
func NewClassificationError(claimID string, err error) error {
	return &Error{
		Kind:    KindClassification,
		ClaimID: claimID,
		Msg:     fmt.Sprintf("failed to classify claim %s", claimID),
		Err:     err,
	}
}

// NewOutputError reports a failure writing results.
func NewOutputError(msg string, err error) error {
	return &Error{Kind: KindOutput, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost Error in err's chain.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindUnknown
}

// HasKind reports whether any Error in err's chain has the given kind.
func HasKind(err error, kind Kind) bool {
	sentinel, ok := kindSentinels[kind]
	return ok && errors.Is(err, sentinel)
}

// ClaimIDOf returns the claim id carried by a classification error, if any.
func ClaimIDOf(err error) (string, bool) {
	var tagged *Error
	for err != nil && errors.As(err, &tagged) {
		if tagged.ClaimID != "" {
			return tagged.ClaimID, true
		}
		err = tagged.Err
	}
	return "", false
}
