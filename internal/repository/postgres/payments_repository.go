package postgres

import (
	"context"

	"shiftHire/domain"

	"gorm.io/gorm"
)

type PaymentsRepository struct {
	DB *gorm.DB
}

func NewPaymentsRepository(db *gorm.DB) *PaymentsRepository {
	return &PaymentsRepository{
		DB: db,
	}
}

func (r *PaymentsRepository) CreateTransaction(ctx context.Context, tx *domain.PaymentTransaction) error {
	if err := r.DB.WithContext(ctx).Create(tx).Error; err != nil {
		return translateError(err, "transaction")
	}

	return nil
}

func (r *PaymentsRepository) FindBySessionID(ctx context.Context, sessionID string) (domain.PaymentTransaction, error) {
	var tx domain.PaymentTransaction

	err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).First(&tx).Error
	if err != nil {
		return domain.PaymentTransaction{}, translateError(err, "transaction")
	}

	return tx, nil
}

// MarkPaid moves a non-paid transaction to paid. It reports false when nothing
// changed, either because the session is unknown or because it was already paid.
func (r *PaymentsRepository) MarkPaid(ctx context.Context, sessionID string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&domain.PaymentTransaction{}).
		Where("session_id = ? AND payment_status <> ?", sessionID, domain.PaymentPaid).
		Update("payment_status", domain.PaymentPaid)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
