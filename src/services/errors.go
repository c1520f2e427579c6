package services

import (
	"errors"

	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/utils"
)

// Validation failures are typed so callers can match them with errors.Is and
// render the right status code. Messages follow the user-facing wording of
// the apology pages.
var (
	ErrInvalidSymbol        = utils.BadRequest("input must be a valid stock")
	ErrInvalidShareCount    = utils.BadRequest("shares must be a positive integer")
	ErrInsufficientFunds    = utils.BadRequest("not enough funds")
	ErrInsufficientHoldings = utils.BadRequest("shares sold must be less than or equal to owned shares")
	ErrInvalidAmount        = utils.BadRequest("withdraw/insert must be an integer")
	ErrUnknownOperation     = utils.BadRequest("unknown transaction method")
	ErrMissingUsername      = utils.BadRequest("must provide username")
	ErrInvalidPassword      = utils.BadRequest("must input a valid password")
	ErrMissingConfirmation  = utils.BadRequest("must confirm password")
	ErrPasswordMismatch     = utils.BadRequest("passwords must be equal")
	ErrQuoteUnavailable     = utils.ServiceUnavailable("stock quotes are temporarily unavailable")
	ErrDuplicateUsername    = utils.Conflict("username already present in database")
	ErrInvalidCredentials   = utils.Forbidden("invalid username and/or password")
)

// mapLookupErr converts quote client failures into the service taxonomy,
// keeping "unknown symbol" distinct from "upstream down".
func mapLookupErr(err error) error {
	if errors.Is(err, stockquote.ErrSymbolNotFound) {
		return ErrInvalidSymbol
	}
	if errors.Is(err, stockquote.ErrUnavailable) {
		return ErrQuoteUnavailable
	}
	return err
}
