package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateWithAccount(ctx context.Context, user domain.User, account domain.Account) (domain.User, error) {
	logger.Info("user repository create with account", logger.Fields{
		"email": user.Email,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("user repository begin tx failed", err, nil)
		return domain.User{}, fmt.Errorf("begin user registration transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertUser = `
INSERT INTO users (full_name, email, phone, password_hash, document_encrypted)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	if err = tx.QueryRowContext(
		ctx,
		insertUser,
		user.FullName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.DocumentEncrypted,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			err = domain.ErrEmailTaken
			return domain.User{}, err
		}
		logger.Error("user repository insert user failed", err, logger.Fields{
			"email": user.Email,
		})
		err = fmt.Errorf("insert user: %w", err)
		return domain.User{}, err
	}

	const insertAccount = `
INSERT INTO accounts (user_id, account_type, balance)
VALUES ($1, $2, $3)`

	if _, err = tx.ExecContext(ctx, insertAccount, user.ID, account.AccountType, account.Balance); err != nil {
		logger.Error("user repository provision account failed", err, logger.Fields{
			"userId": user.ID,
		})
		err = fmt.Errorf("provision default account: %w", err)
		return domain.User{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("user repository commit failed", err, nil)
		return domain.User{}, fmt.Errorf("commit user registration transaction: %w", err)
	}

	logger.Info("user repository create with account success", logger.Fields{
		"userId": user.ID,
	})
	return user, nil
}

const userColumns = `id, full_name, email, phone, password_hash, document_encrypted, created_at`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, fullName *string, phone *string) (domain.User, error) {
	logger.Info("user repository update profile", logger.Fields{
		"userId": id,
	})

	query := fmt.Sprintf(`
UPDATE users
SET full_name = COALESCE($2, full_name),
    phone = COALESCE($3, phone)
WHERE id = $1
RETURNING %s`, userColumns)

	user, err := r.scanOne(r.db.QueryRowContext(ctx, query, id, fullName, phone))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.User{}, err
		}
		logger.Error("user repository update profile failed", err, logger.Fields{
			"userId": id,
		})
		return domain.User{}, fmt.Errorf("update user profile: %w", err)
	}

	return user, nil
}

func (r *UserRepository) scanOne(row *sql.Row) (domain.User, error) {
	var user domain.User
	var phone sql.NullString
	var document sql.NullString
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&phone,
		&user.PasswordHash,
		&document,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrRecordNotFound
		}
		return domain.User{}, fmt.Errorf("scan user row: %w", err)
	}

	if phone.Valid {
		value := phone.String
		user.Phone = &value
	}
	if document.Valid {
		value := document.String
		user.DocumentEncrypted = &value
	}

	return user, nil
}
