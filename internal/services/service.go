package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/platewise-backend/internal/pkg/ctxutil"
	apperr "github.com/platewise/platewise-backend/internal/pkg/errors"
)

// runInTx runs fn inside a database transaction. With no database configured
// fn runs once with a nil handle and repos use their own defaults.
func runInTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// requestIdentity extracts the authenticated identity set by the auth
// middleware. Services never accept a tenant id from request payloads.
func requestIdentity(ctx context.Context) (*ctxutil.RequestData, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TenantID == uuid.Nil {
		return nil, fmt.Errorf("no request identity in context: %w", apperr.ErrUnauthorized)
	}
	return rd, nil
}
