package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// errCommitRefused stands in for a server-side failure surfacing at COMMIT,
// such as a lock wait timeout.
var errCommitRefused = errors.New("commit refused")

// commitFailDriver answers the hotel delete queries normally but refuses the
// final COMMIT.
type commitFailDriver struct{}

func (commitFailDriver) Open(string) (driver.Conn, error) { return &commitFailConn{}, nil }

type commitFailConn struct{}

func (*commitFailConn) Prepare(q string) (driver.Stmt, error) {
	return nil, fmt.Errorf("unexpected prepare: %q", q)
}
func (*commitFailConn) Close() error              { return nil }
func (*commitFailConn) Begin() (driver.Tx, error) { return commitFailTx{}, nil }

func (*commitFailConn) QueryContext(_ context.Context, q string, _ []driver.NamedValue) (driver.Rows, error) {
	switch {
	case strings.Contains(q, "SELECT operator_id"):
		return &fixedRows{cols: []string{"operator_id"}, rows: [][]driver.Value{{int64(9)}}}, nil
	case strings.Contains(q, "COUNT(*)"):
		return &fixedRows{cols: []string{"count"}, rows: [][]driver.Value{{int64(0)}}}, nil
	}
	return nil, fmt.Errorf("unexpected query: %q", q)
}

func (*commitFailConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return driver.RowsAffected(1), nil
}

type commitFailTx struct{}

func (commitFailTx) Commit() error   { return errCommitRefused }
func (commitFailTx) Rollback() error { return nil }

type fixedRows struct {
	cols []string
	rows [][]driver.Value
	next int
}

func (r *fixedRows) Columns() []string { return r.cols }
func (r *fixedRows) Close() error      { return nil }
func (r *fixedRows) Next(dest []driver.Value) error {
	if r.next >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.next])
	r.next++
	return nil
}

func init() { sql.Register("hotelrepo-commitfail", commitFailDriver{}) }

func TestHotelRepo_DeleteSurfacesCommitFailure(t *testing.T) {
	db, err := sql.Open("hotelrepo-commitfail", "")
	require.NoError(t, err)
	defer db.Close()

	repo := NewHotelRepo(db)
	err = repo.DeleteByIDAndOperator(context.Background(), 1, 9)
	require.ErrorIs(t, err, errCommitRefused, "a failed COMMIT must not report success")
}
