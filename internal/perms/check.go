package perms

import (
	"context"
	"errors"
	"fmt"

	"github.com/infinitybotlist/infernoplex/internal/storage/model"
)

// GuardError is an authorization or precondition failure meant for the user's
// eyes. It ends a workflow normally and must never be logged as a system
// failure.
type GuardError struct {
	Message string
}

func (e *GuardError) Error() string {
	return e.Message
}

func guardf(format string, args ...interface{}) error {
	return &GuardError{Message: fmt.Sprintf(format, args...)}
}

// Check resolves the user's capabilities and fails with a GuardError unless
// want (or a covering wildcard) is present. It runs before any workflow
// mutation; a failure leaves no side effects behind.
func Check(ctx context.Context, q model.Querier, serverID, userID string, want Capability) error {
	caps, err := Resolve(ctx, q, serverID, userID)
	switch {
	case errors.Is(err, ErrServerNotFound):
		return guardf("This server is not on Infinity List! Run `/setup` to enlist it!")
	case errors.Is(err, ErrMemberNotInTeam):
		return guardf("You are not in this server's team!")
	case err != nil:
		return err
	}

	if !HasCapability(caps, want) {
		return guardf("You must have the ``%s`` permission to perform this operation!", want)
	}

	return nil
}
