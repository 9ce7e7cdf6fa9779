package db

import (
	"context"

	"github.com/shandysiswandi/backlink/internal/account/entity"
)

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `INSERT INTO account_users
	(id, username, email, phone, password_hash, role, phone_verified_at, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID,
		user.Username,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role.String(),
		user.PhoneVerifiedAt,
		user.CreatedAt,
	)

	err = s.mapError(err)
	return err
}
