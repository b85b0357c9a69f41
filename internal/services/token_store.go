package services

import (
	"context"
	"database/sql"

	"github.com/oakhavenpractice/intake-backend/internal/models"
)

// TokenConn is a single pooled connection running one token batch. Begin
// opens the transaction; Release returns the connection to the pool and must
// be called exactly once, in every path.
type TokenConn interface {
	Begin(ctx context.Context) error
	InsertAccessToken(ctx context.Context, t *models.AccessToken) error
	Commit() error
	Rollback() error
	Release() error
}

// TokenConnPool hands out connections for token batches.
type TokenConnPool interface {
	Acquire(ctx context.Context) (TokenConn, error)
}

// SQLTokenPool backs TokenConnPool with the database/sql pool underneath GORM.
type SQLTokenPool struct {
	db *sql.DB
}

func NewSQLTokenPool(db *sql.DB) *SQLTokenPool {
	return &SQLTokenPool{db: db}
}

func (p *SQLTokenPool) Acquire(ctx context.Context) (TokenConn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &sqlTokenConn{conn: conn}, nil
}

type sqlTokenConn struct {
	conn *sql.Conn
	tx   *sql.Tx
}

func (c *sqlTokenConn) Begin(ctx context.Context) error {
	tx, err := c.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	c.tx = tx
	return nil
}

func (c *sqlTokenConn) InsertAccessToken(ctx context.Context, t *models.AccessToken) error {
	_, err := c.tx.ExecContext(ctx,
		`INSERT INTO access_tokens (id, email, questionnaire, token, expires_at, used, revoked, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Email, t.Questionnaire, t.Token, t.ExpiresAt, t.Used, t.Revoked, t.CreatedAt)
	return err
}

func (c *sqlTokenConn) Commit() error {
	return c.tx.Commit()
}

func (c *sqlTokenConn) Rollback() error {
	return c.tx.Rollback()
}

func (c *sqlTokenConn) Release() error {
	return c.conn.Close()
}
