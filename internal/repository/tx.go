package repository

import (
    "context"
    "database/sql"
)

// TxManager implements booking.TxRunner on top of *sql.DB.  The
// transaction is rolled back unless fn returns nil and the commit
// succeeds.
type TxManager struct {
    db *sql.DB
}

// NewTxManager returns a TxManager bound to the given database.
func NewTxManager(db *sql.DB) *TxManager { return &TxManager{db: db} }

// RunInTx begins a transaction, runs fn and commits.  Any error from
// fn or the commit leaves the transaction rolled back and is returned
// unchanged so sentinel comparisons keep working.
func (m *TxManager) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
    tx, err := m.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := fn(tx); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
