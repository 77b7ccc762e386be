package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"brokerd/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormStore implements Store on a GORM database (SQLite or Postgres).
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (s *GormStore) UpdateUserBalance(ctx context.Context, id int64, newBalance float64) error {
	if newBalance < 0 {
		return domain.ErrInsufficientBalance
	}
	res := s.DB.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update("cash_balance", domain.RoundCash(newBalance))
	if res.Error != nil {
		return fmt.Errorf("update balance for user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (s *GormStore) GetHolding(ctx context.Context, userID int64, symbol string) (*domain.Holding, error) {
	var holding domain.Holding
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&holding).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get holding %d/%s: %w", userID, symbol, err)
	}
	return &holding, nil
}

func (s *GormStore) UpsertHolding(ctx context.Context, userID int64, symbol string, deltaQuantity float64) (*domain.Holding, error) {
	var out *domain.Holding
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		h, err := upsertHoldingTx(tx, userID, symbol, deltaQuantity)
		if err != nil {
			return err
		}
		out = h
		return nil
	})
	return out, err
}

func (s *GormStore) ListHoldings(ctx context.Context, userID int64) ([]domain.Holding, error) {
	var holdings []domain.Holding
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&holdings).Error; err != nil {
		return nil, fmt.Errorf("list holdings for user %d: %w", userID, err)
	}
	return holdings, nil
}

func (s *GormStore) ExecuteTrade(ctx context.Context, side TradeSide, userID int64, symbol string, amount, price float64) (*TradeResult, error) {
	var result *TradeResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrUserNotFound
			}
			return err
		}

		cost := amount * price
		quantityDelta := amount
		newBalance := user.CashBalance - cost
		if side == SideSell {
			quantityDelta = -amount
			newBalance = user.CashBalance + cost
		}
		if newBalance < -domain.Epsilon {
			return domain.ErrInsufficientBalance
		}
		newBalance = domain.RoundCash(newBalance)
		if newBalance < 0 {
			newBalance = 0
		}

		holding, err := upsertHoldingTx(tx, userID, symbol, quantityDelta)
		if err != nil {
			return err
		}

		if err := tx.Model(&domain.User{}).
			Where("id = ?", userID).
			Update("cash_balance", newBalance).Error; err != nil {
			return err
		}

		eventDataBytes, _ := json.Marshal(map[string]interface{}{
			"symbol":       symbol,
			"amount":       amount,
			"price":        price,
			"new_quantity": holding.Quantity,
			"new_balance":  newBalance,
		})
		if err := tx.Create(&domain.TradeEvent{
			UserID:    userID,
			EventType: string(side),
			EventData: datatypes.JSON(eventDataBytes),
		}).Error; err != nil {
			return err
		}

		result = &TradeResult{
			Symbol:      symbol,
			NewQuantity: holding.Quantity,
			NewBalance:  newBalance,
		}
		return nil
	})

	return result, err
}

// upsertHoldingTx creates the holding on first buy, otherwise applies
// the delta. A delta that would drive the quantity negative fails the
// surrounding transaction.
func upsertHoldingTx(tx *gorm.DB, userID int64, symbol string, delta float64) (*domain.Holding, error) {
	var holding domain.Holding
	err := tx.Where("user_id = ? AND symbol = ?", userID, symbol).First(&holding).Error
	if err == gorm.ErrRecordNotFound {
		if delta < -domain.Epsilon {
			return nil, domain.ErrNegativeQuantity
		}
		holding = domain.Holding{
			UserID:   userID,
			Symbol:   symbol,
			Quantity: delta,
		}
		if err := tx.Create(&holding).Error; err != nil {
			return nil, err
		}
		return &holding, nil
	}
	if err != nil {
		return nil, err
	}

	newQuantity := holding.Quantity + delta
	if newQuantity < -domain.Epsilon {
		return nil, domain.ErrNegativeQuantity
	}
	if newQuantity < 0 {
		newQuantity = 0
	}
	holding.Quantity = newQuantity
	if err := tx.Save(&holding).Error; err != nil {
		return nil, err
	}
	return &holding, nil
}
