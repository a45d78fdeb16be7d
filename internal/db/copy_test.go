package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.Background(), nil, "financial_facts", []string{"accession"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := []string{"accession", "metric", "value"}
	mock.ExpectCopyFrom(pgx.Identifier{"financial_facts"}, cols).WillReturnResult(2)

	n, err := CopyFrom(context.Background(), mock, "financial_facts", cols, [][]any{
		{"0000320193-17-000070", "Revenues", 229234000000.0},
		{"0000320193-17-000070", "NetIncomeLoss", 48351000000.0},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cols := []string{"accession"}
	mock.ExpectCopyFrom(pgx.Identifier{"financial_facts"}, cols).
		WillReturnError(assert.AnError)

	_, err = CopyFrom(context.Background(), mock, "financial_facts", cols, [][]any{{"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO financial_facts")
}
