package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an entity is absent from every source
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an address is not a 20-byte hex string
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidTokenID is returned when a token id is not a non-negative integer
	ErrInvalidTokenID = errors.New("invalid token id")

	// ErrStaleGeneration is returned when a pipeline result was superseded by a newer request
	ErrStaleGeneration = errors.New("stale generation")

	// ErrViewerRequired is returned when a viewer scoped operation runs without a viewer
	ErrViewerRequired = errors.New("viewer required")

	// ErrUnknownNFTType is returned when the subgraph has no contract record for a collection
	ErrUnknownNFTType = errors.New("unknown nft type")
)

// ErrorKind is the user facing category of an error
type ErrorKind string

const (
	ErrorKindContractCall ErrorKind = "contract_call"
	ErrorKindTransaction  ErrorKind = "transaction"
	ErrorKindNetwork      ErrorKind = "network"
	ErrorKindFavorite     ErrorKind = "favorite"
	ErrorKindUnexpected   ErrorKind = "unexpected"
)

const unexpectedReason = "Unexpected error"

// ContractCallError is returned when a contract read reverts or fails to execute
type ContractCallError struct {
	Address string
	Method  string
	Err     error
}

// NewContractCallError wraps a failed contract call
func NewContractCallError(address, method string, err error) *ContractCallError {
	return &ContractCallError{Address: address, Method: method, Err: err}
}

func (e *ContractCallError) Error() string {
	return fmt.Sprintf("contract call %s on %s failed: %v", e.Method, e.Address, e.Err)
}

func (e *ContractCallError) Unwrap() error {
	return e.Err
}

// Reason returns the revert reason carried by the node error, if any
func (e *ContractCallError) Reason() string {
	if e.Err == nil {
		return unexpectedReason
	}
	return revertReason(e.Err.Error())
}

func revertReason(msg string) string {
	for _, marker := range []string{"reason:", "execution reverted:"} {
		if idx := strings.Index(msg, marker); idx >= 0 {
			reason := strings.TrimSpace(msg[idx+len(marker):])
			if reason != "" {
				return reason
			}
		}
	}
	return unexpectedReason
}

// TransactionError is returned when a broadcast transaction failed on chain
type TransactionError struct {
	TxHash string
	Err    error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.TxHash, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NetworkError is returned when a call to the backend, the subgraph or a metadata
// gateway failed at the transport level or answered with an unusable status
type NetworkError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UnexpectedError wraps anything that does not fit the other categories
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// FavoriteOp is the favorite mutation that was attempted
type FavoriteOp string

const (
	FavoriteOpAdd    FavoriteOp = "add"
	FavoriteOpRemove FavoriteOp = "remove"
)

// FavoriteError is returned when the backend did not confirm a favorite mutation
type FavoriteError struct {
	Op       FavoriteOp
	Identity TokenIdentity
	Status   int
	Err      error
}

func (e *FavoriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("favorite %s failed for %s: %v", e.Op, e.Identity, e.Err)
	}
	return fmt.Sprintf("favorite %s failed for %s: status %d", e.Op, e.Identity, e.Status)
}

func (e *FavoriteError) Unwrap() error {
	return e.Err
}

// Classify maps an error to its user facing category
func Classify(err error) ErrorKind {
	var contractErr *ContractCallError
	var txErr *TransactionError
	var favErr *FavoriteError
	var netErr *NetworkError

	switch {
	case errors.As(err, &favErr):
		return ErrorKindFavorite
	case errors.As(err, &contractErr):
		return ErrorKindContractCall
	case errors.As(err, &txErr):
		return ErrorKindTransaction
	case errors.As(err, &netErr):
		return ErrorKindNetwork
	default:
		return ErrorKindUnexpected
	}
}
