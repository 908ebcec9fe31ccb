package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockScoreReader(t *testing.T) (ScoreReader, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewScoreReader(sqlx.NewDb(db, "sqlmock")), mock
}

func TestScoreReader_Scores(t *testing.T) {
	reader, mock := newMockScoreReader(t)

	mock.ExpectQuery(`SELECT comment_id, .* FROM comment_votes WHERE comment_id IN \(\?, \?, \?\) GROUP BY comment_id`).
		WithArgs(1, 2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "score"}).
			AddRow(1, 2).
			AddRow(3, -1))

	scores, err := reader.Scores(context.Background(), []uint{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, int64(2), scores[1])
	assert.Equal(t, int64(0), scores[2])
	assert.Equal(t, int64(-1), scores[3])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreReader_EmptyIDsSkipsQuery(t *testing.T) {
	reader, mock := newMockScoreReader(t)

	scores, err := reader.Scores(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreReader_Score(t *testing.T) {
	reader, mock := newMockScoreReader(t)

	mock.ExpectQuery(`FROM comment_votes`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "score"}).AddRow(7, 1))

	score, err := reader.Score(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), score)
}

func TestScoreReader_QueryError(t *testing.T) {
	reader, mock := newMockScoreReader(t)

	mock.ExpectQuery(`FROM comment_votes`).WillReturnError(errors.New("db down"))

	_, err := reader.Score(context.Background(), 7)
	assert.Error(t, err)
}
