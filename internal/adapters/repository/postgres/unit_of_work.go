package postgres

import (
	"context"
	"database/sql"

	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) TaskRepo() port.UploadTaskRepository {
	if u.tx != nil {
		return NewSQLUploadTaskRepository(u.tx)
	}
	return NewSQLUploadTaskRepository(u.db)
}

func (u *sqlUnitOfWork) ChunkRepo() port.ChunkRepository {
	if u.tx != nil {
		return NewSQLChunkRepository(u.tx)
	}
	return NewSQLChunkRepository(u.db)
}

func (u *sqlUnitOfWork) FileRepo() port.FileRecordRepository {
	if u.tx != nil {
		return NewSQLFileRecordRepository(u.tx)
	}
	return NewSQLFileRecordRepository(u.db)
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
