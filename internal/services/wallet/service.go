package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartwallet/internal/events"
	"smartwallet/internal/models"
	"smartwallet/internal/repositories"
	"smartwallet/internal/services/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type service struct {
	repo      repositories.WalletRepository
	cache     Cache
	publisher EventPublisher
}

// NewService creates the wallet engine. Cache and publisher are optional.
func NewService(repo repositories.WalletRepository, cache Cache, publisher EventPublisher) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	return &service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

// classifyWithdrawal applies the charge policy in order: an inactive wallet
// fails before funds are considered, and the balance must strictly exceed
// the amount (a tie is insufficient).
func classifyWithdrawal(w *models.Wallet, amount decimal.Decimal) outcome {
	if !w.IsActive() {
		return failure(InactiveWalletReason, w.Balance)
	}
	if w.Balance.Cmp(amount) <= 0 {
		return failure(InsufficientFundsReason, w.Balance)
	}
	return success(w.Balance)
}

// chargeInTx performs the withdrawal against a transaction-scoped repository
// pair. The wallet row is locked for the duration of the enclosing database
// transaction, and exactly one transaction record is persisted whatever the
// outcome.
func (s *service) chargeInTx(ctx context.Context, wtx repositories.WalletRepository, ttx repositories.TransactionRepository,
	ownerID uuid.UUID, walletID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error) {

	w, err := wtx.GetByIDForUpdate(walletID)
	if err != nil {
		return nil, err
	}

	out := classifyWithdrawal(w, amount)
	if out.succeeded {
		w.Balance = w.Balance.Sub(amount)
		w.UpdatedAt = time.Now()
		if err := wtx.Update(w); err != nil {
			return nil, err
		}
		out.balanceLeft = w.Balance
	}

	txn := &models.Transaction{
		OwnerID:     ownerID,
		Sender:      walletID.String(),
		Receiver:    PlatformIdentifier,
		Amount:      amount,
		Currency:    w.Currency,
		Type:        models.TransactionTypeWithdrawal,
		Description: description,
		CreatedAt:   time.Now(),
	}
	out.apply(txn)

	return ledger.NewRecorder(ttx).Upsert(ctx, txn)
}

func (s *service) Charge(ctx context.Context, user *models.User, walletID uuid.UUID, amount decimal.Decimal, description string) (*models.Transaction, error) {
	if user == nil {
		return nil, errors.New("acting user is required")
	}
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *models.Transaction
	err := s.repo.ExecuteInTransaction(func(wtx repositories.WalletRepository, ttx repositories.TransactionRepository) error {
		txn, err := s.chargeInTx(ctx, wtx, ttx, user.ID, walletID, amount, description)
		result = txn
		return err
	})
	if err != nil {
		return nil, err
	}

	if !result.Failed() {
		s.invalidateWallet(ctx, walletID)
		if s.publisher != nil {
			s.publisher.Publish(events.SuccessfulCharge{
				UserID:        user.ID,
				Email:         user.Email,
				WalletID:      walletID,
				TransactionID: result.ID,
				Amount:        amount,
				Currency:      result.Currency,
			})
		}
	}
	return result, nil
}

func (s *service) TopUp(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*models.Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	description := fmt.Sprintf(topUpDescriptionFormat, amount.InexactFloat64())

	var result *models.Transaction
	err := s.repo.ExecuteInTransaction(func(wtx repositories.WalletRepository, ttx repositories.TransactionRepository) error {
		w, err := wtx.GetByIDForUpdate(walletID)
		if err != nil {
			return err
		}
		rec := ledger.NewRecorder(ttx)

		if !w.IsActive() {
			reason := InactiveWalletReason
			result, err = rec.CreateNew(ctx, ledger.NewTransaction{
				OwnerID:       w.OwnerID,
				Sender:        PlatformIdentifier,
				Receiver:      w.ID.String(),
				Amount:        amount,
				BalanceLeft:   w.Balance,
				Currency:      w.Currency,
				Type:          models.TransactionTypeDeposit,
				Status:        models.TransactionStatusFailed,
				Description:   description,
				FailureReason: &reason,
			})
			return err
		}

		w.Balance = w.Balance.Add(amount)
		w.UpdatedAt = time.Now()
		if err := wtx.Update(w); err != nil {
			return err
		}

		result, err = rec.CreateNew(ctx, ledger.NewTransaction{
			OwnerID:     w.OwnerID,
			Sender:      PlatformIdentifier,
			Receiver:    w.ID.String(),
			Amount:      amount,
			BalanceLeft: w.Balance,
			Currency:    w.Currency,
			Type:        models.TransactionTypeDeposit,
			Status:      models.TransactionStatusSucceeded,
			Description: description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallet(ctx, walletID)
	return result, nil
}

func (s *service) Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	if req.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var (
		result  *models.Transaction
		charged *events.SuccessfulCharge
		credits uuid.UUID
	)
	err := s.repo.ExecuteInTransaction(func(wtx repositories.WalletRepository, ttx repositories.TransactionRepository) error {
		sender, err := wtx.GetByIDForUpdate(req.FromWalletID)
		if err != nil {
			return err
		}
		senderUsername := ""
		senderEmail := ""
		if sender.Owner != nil {
			senderUsername = sender.Owner.Username
			senderEmail = sender.Owner.Email
		}
		description := fmt.Sprintf(transferDescriptionFormat,
			req.Amount.InexactFloat64(), senderUsername, req.RecipientUsername)

		receiver, err := wtx.GetActiveByOwnerUsername(req.RecipientUsername)
		if err != nil {
			if !errors.Is(err, repositories.ErrWalletNotFound) {
				return err
			}
			// No active receiver wallet: record the failed attempt, debit nothing.
			reason := ReceiverNotFoundReason
			result, err = ledger.NewRecorder(ttx).CreateNew(ctx, ledger.NewTransaction{
				OwnerID:       sender.OwnerID,
				Sender:        sender.ID.String(),
				Receiver:      req.RecipientUsername,
				Amount:        req.Amount,
				BalanceLeft:   sender.Balance,
				Currency:      sender.Currency,
				Type:          models.TransactionTypeWithdrawal,
				Status:        models.TransactionStatusFailed,
				Description:   description,
				FailureReason: &reason,
			})
			return err
		}

		txn, err := s.chargeInTx(ctx, wtx, ttx, sender.OwnerID, sender.ID, req.Amount, description)
		if err != nil {
			return err
		}
		result = txn
		if txn.Failed() {
			return nil
		}

		// Re-read the receiver row under lock: the unlocked username lookup
		// above may be stale, and when the recipient resolves to the sending
		// wallet the debit just committed must not be overwritten.
		receiver, err = wtx.GetByIDForUpdate(receiver.ID)
		if err != nil {
			return err
		}
		receiver.Balance = receiver.Balance.Add(req.Amount)
		receiver.UpdatedAt = time.Now()
		if err := wtx.Update(receiver); err != nil {
			return err
		}
		credits = receiver.ID

		_, err = ledger.NewRecorder(ttx).CreateNew(ctx, ledger.NewTransaction{
			OwnerID:     receiver.OwnerID,
			Sender:      sender.ID.String(),
			Receiver:    receiver.ID.String(),
			Amount:      req.Amount,
			BalanceLeft: receiver.Balance,
			Currency:    sender.Currency,
			Type:        models.TransactionTypeDeposit,
			Status:      models.TransactionStatusSucceeded,
			Description: description,
		})
		if err != nil {
			return err
		}

		charged = &events.SuccessfulCharge{
			UserID:        sender.OwnerID,
			Email:         senderEmail,
			WalletID:      sender.ID,
			TransactionID: txn.ID,
			Amount:        req.Amount,
			Currency:      sender.Currency,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallet(ctx, req.FromWalletID)
	if credits != uuid.Nil {
		s.invalidateWallet(ctx, credits)
	}
	if charged != nil && s.publisher != nil {
		s.publisher.Publish(*charged)
	}
	return result, nil
}

func (s *service) CreateDefaultWallet(ctx context.Context, user *models.User) (*models.Wallet, error) {
	w := &models.Wallet{
		OwnerID:  user.ID,
		Balance:  InitialWalletBalance,
		Currency: DefaultCurrency,
		Status:   models.WalletStatusActive,
		Main:     true,
	}
	if err := s.repo.Create(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) UnlockNewWallet(ctx context.Context, user *models.User) (*models.Wallet, error) {
	count, err := s.repo.CountByOwnerID(user.ID)
	if err != nil {
		return nil, err
	}

	planType := ""
	for _, sub := range user.Subscriptions {
		if sub.Status == models.SubscriptionStatusActive {
			planType = sub.Type
			break
		}
	}

	if !EligibleForNewWallet(planType, int(count)) {
		return nil, ErrNotEligible
	}

	w := &models.Wallet{
		OwnerID:  user.ID,
		Balance:  decimal.Zero,
		Currency: DefaultCurrency,
		Status:   models.WalletStatusActive,
	}
	if err := s.repo.Create(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) SwitchStatus(ctx context.Context, ownerID, walletID uuid.UUID) (*models.Wallet, error) {
	w, err := s.repo.GetByID(walletID)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, ErrNotWalletOwner
	}

	if w.Status == models.WalletStatusActive {
		w.Status = models.WalletStatusInactive
	} else {
		w.Status = models.WalletStatusActive
	}
	w.UpdatedAt = time.Now()

	if err := s.repo.Update(w); err != nil {
		return nil, err
	}
	s.invalidateWallet(ctx, walletID)
	return w, nil
}

func (s *service) SetNickname(ctx context.Context, ownerID, walletID uuid.UUID, nickname string) (*models.Wallet, error) {
	w, err := s.repo.GetByID(walletID)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, ErrNotWalletOwner
	}

	w.Nickname = nickname
	w.UpdatedAt = time.Now()
	if err := s.repo.Update(w); err != nil {
		return nil, err
	}
	s.invalidateWallet(ctx, walletID)
	return w, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Wallet, error) {
	if s.cache != nil {
		if w, err := s.cache.GetWallet(ctx, id); err == nil {
			return w, nil
		}
	}

	w, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheWallet(ctx, w)
	}
	return w, nil
}

func (s *service) GetAllByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]models.Wallet, error) {
	return s.repo.GetAllByOwnerID(ownerID)
}

func (s *service) invalidateWallet(ctx context.Context, id uuid.UUID) {
	if s.cache != nil {
		s.cache.InvalidateWallet(ctx, id)
	}
}
