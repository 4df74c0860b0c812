package adminsvc

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Diba-Dev/leafora-marketplace/model"
	bookrepo "github.com/Diba-Dev/leafora-marketplace/repository/book"
	userrepo "github.com/Diba-Dev/leafora-marketplace/repository/user"
)

type ErrCode string

const (
	ErrForbidden    ErrCode = "FORBIDDEN"
	ErrUserNotFound ErrCode = "USER_NOT_FOUND"
	// ErrImmutable: super-admin accounts cannot be demoted or deleted by
	// anyone, themselves included.
	ErrImmutable ErrCode = "SUPER_ADMIN_IMMUTABLE"
	ErrHasData   ErrCode = "HAS_RELATED_DATA"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Overview is the moderation dashboard payload.
type Overview struct {
	Users []model.User             `json:"users"`
	Books []bookrepo.BookWithOwner `json:"books"`
}

type Service interface {
	Overview(ctx context.Context, actor model.Role) (*Overview, error)
	Promote(ctx context.Context, actor model.Role, targetID int64) error
	Demote(ctx context.Context, actor model.Role, targetID int64) error
	DeleteUser(ctx context.Context, actor model.Role, targetID int64) error
	DeleteBook(ctx context.Context, actor model.Role, bookID int64) error
}

type service struct {
	ur userrepo.Repo
	br bookrepo.Repo
}

func New(ur userrepo.Repo, br bookrepo.Repo) Service { return &service{ur: ur, br: br} }

func (s *service) Overview(ctx context.Context, actor model.Role) (*Overview, error) {
	if !actor.AtLeast(model.RoleAdmin) {
		return nil, makeErr(ErrForbidden)
	}
	users, err := s.ur.List(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.br.ListWithOwner(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{Users: users, Books: books}, nil
}

func (s *service) Promote(ctx context.Context, actor model.Role, targetID int64) error {
	return s.setRole(ctx, actor, targetID, model.RoleAdmin)
}

func (s *service) Demote(ctx context.Context, actor model.Role, targetID int64) error {
	return s.setRole(ctx, actor, targetID, model.RoleUser)
}

func (s *service) setRole(ctx context.Context, actor model.Role, targetID int64, to model.Role) error {
	if !actor.AtLeast(model.RoleSuperAdmin) {
		return makeErr(ErrForbidden)
	}
	target, err := s.ur.RoleByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == "" {
		return makeErr(ErrUserNotFound)
	}
	if target == model.RoleSuperAdmin {
		return makeErr(ErrImmutable)
	}
	return s.ur.UpdateRole(ctx, targetID, to)
}

func (s *service) DeleteUser(ctx context.Context, actor model.Role, targetID int64) error {
	if !actor.AtLeast(model.RoleSuperAdmin) {
		return makeErr(ErrForbidden)
	}
	target, err := s.ur.RoleByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == "" {
		return makeErr(ErrUserNotFound)
	}
	if target == model.RoleSuperAdmin {
		return makeErr(ErrImmutable)
	}
	if err := s.ur.Delete(ctx, targetID); err != nil {
		if isFKViolation(err) {
			return makeErr(ErrHasData)
		}
		return err
	}
	return nil
}

func (s *service) DeleteBook(ctx context.Context, actor model.Role, bookID int64) error {
	if !actor.AtLeast(model.RoleAdmin) {
		return makeErr(ErrForbidden)
	}
	if err := s.br.AdminDelete(ctx, bookID); err != nil {
		if isFKViolation(err) {
			return makeErr(ErrHasData)
		}
		return err
	}
	return nil
}

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
