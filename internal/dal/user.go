package dal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"

	"stealthcompany.com/notesync/internal/metrics"
)

// UserModel handles company user lookups and creation.
type UserModel struct {
	conn *Connection
}

// NewUserModel creates a new user model
func NewUserModel(conn *Connection) *UserModel {
	return &UserModel{conn: conn}
}

// FindByLogin retrieves a user by login. Returns (nil, nil) when no user
// with that login exists.
func (um *UserModel) FindByLogin(ctx context.Context, login string) (*CompanyUser, error) {
	docID := CompanyUserKey(login)

	start := time.Now()
	result, err := um.conn.Collection().Get(docID, &gocb.GetOptions{Context: ctx})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gocb.ErrDocumentNotFound) {
			metrics.RecordCouchbaseOperation("get", "miss")
			metrics.RecordCouchbaseOperationDuration("get", duration)
			return nil, nil
		}
		metrics.RecordCouchbaseOperation("get", "error")
		metrics.RecordCouchbaseOperationDuration("get", duration)
		return nil, fmt.Errorf("failed to get user %s: %w", docID, err)
	}

	var user CompanyUser
	if err := result.Content(&user); err != nil {
		metrics.RecordCouchbaseOperation("get", "error")
		metrics.RecordCouchbaseOperationDuration("get", duration)
		return nil, fmt.Errorf("failed to decode user %s: %w", docID, err)
	}

	metrics.RecordCouchbaseOperation("get", "success")
	metrics.RecordCouchbaseOperationDuration("get", duration)
	return &user, nil
}

// Insert persists a new user. The login-derived document key makes this fail
// if a user with the same login already exists, which protects overlapping
// runs from creating duplicates.
func (um *UserModel) Insert(ctx context.Context, user *CompanyUser) error {
	user.Type = TypeCompanyUser
	docID := CompanyUserKey(user.Login)

	start := time.Now()
	_, err := um.conn.Collection().Insert(docID, user, &gocb.InsertOptions{Context: ctx})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordCouchbaseOperation("insert", "error")
		metrics.RecordCouchbaseOperationDuration("insert", duration)
		return fmt.Errorf("failed to insert user %s: %w", docID, err)
	}

	metrics.RecordCouchbaseOperation("insert", "success")
	metrics.RecordCouchbaseOperationDuration("insert", duration)
	return nil
}
