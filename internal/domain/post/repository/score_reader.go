package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const scoresQuery = `SELECT comment_id, COALESCE(SUM(CASE WHEN is_upvote THEN 1 ELSE -1 END), 0) AS score
FROM comment_votes
WHERE comment_id IN (?)
GROUP BY comment_id`

// ScoreReader 评论得分读模型（赞成票减反对票）
type ScoreReader interface {
	Scores(ctx context.Context, commentIDs []uint) (map[uint]int64, error)
	Score(ctx context.Context, commentID uint) (int64, error)
}

type commentScore struct {
	CommentID uint  `db:"comment_id"`
	Score     int64 `db:"score"`
}

type sqlxScoreReader struct {
	db *sqlx.DB
}

func NewScoreReader(db *sqlx.DB) ScoreReader {
	return &sqlxScoreReader{db: db}
}

// Scores 批量计算得分，没有投票的评论不出现在结果中（得分为 0）
func (r *sqlxScoreReader) Scores(ctx context.Context, commentIDs []uint) (map[uint]int64, error) {
	scores := make(map[uint]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return scores, nil
	}

	query, args, err := sqlx.In(scoresQuery, commentIDs)
	if err != nil {
		return nil, err
	}

	var rows []commentScore
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		scores[row.CommentID] = row.Score
	}
	return scores, nil
}

func (r *sqlxScoreReader) Score(ctx context.Context, commentID uint) (int64, error) {
	scores, err := r.Scores(ctx, []uint{commentID})
	if err != nil {
		return 0, err
	}
	return scores[commentID], nil
}
