package services

import (
	"context"
	"strconv"

	"github.com/greatcoltini/finance-CS50/src/models"
	"github.com/greatcoltini/finance-CS50/src/repositories"
	"github.com/greatcoltini/finance-CS50/src/utils"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	OperationInsert   = "insert"
	OperationWithdraw = "withdraw"
)

type AccountServiceI interface {
	GetAccount(ctx context.Context, username string) (*models.User, error)
	TransferFunds(ctx context.Context, username, amount, operation string) (decimal.Decimal, error)
}

// AccountService owns the cash balance: reads and the insert/withdraw
// mutations outside of trade settlement.
type AccountService struct {
	userRepo repositories.UserRepository
	locks    *UserLocker
}

func NewAccountService(userRepo repositories.UserRepository, locks *UserLocker) *AccountService {
	return &AccountService{userRepo: userRepo, locks: locks}
}

func (s *AccountService) GetAccount(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "looking up user")
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}
	return user, nil
}

// TransferFunds applies an insert or withdraw of a whole-dollar amount and
// returns the new balance. The balance is never left negative; a withdraw
// that would overdraw fails without mutating anything.
func (s *AccountService) TransferFunds(ctx context.Context, username, amountInput, operation string) (decimal.Decimal, error) {
	amount, err := strconv.ParseInt(amountInput, 10, 64)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	lock := s.locks.Get(username)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "looking up user")
	}
	if user == nil {
		return decimal.Zero, utils.NotFound("user not found")
	}

	var newCash decimal.Decimal
	switch operation {
	case OperationWithdraw:
		newCash = user.Cash.Sub(decimal.NewFromInt(amount))
	case OperationInsert:
		newCash = user.Cash.Add(decimal.NewFromInt(amount))
	default:
		return decimal.Zero, ErrUnknownOperation
	}

	if newCash.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}

	if err := s.userRepo.UpdateCash(ctx, username, newCash, nil); err != nil {
		return decimal.Zero, errors.Wrap(err, "updating cash")
	}
	return newCash, nil
}
