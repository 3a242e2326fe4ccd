package post

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/affiliate-post-bot/internal/domain"
	"github.com/orgball2608/affiliate-post-bot/internal/repositories"
	"github.com/orgball2608/affiliate-post-bot/pkg/config"
	"github.com/orgball2608/affiliate-post-bot/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const table = "posts"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewPgx(pg *pgxpool.Pool, cfg *config.Config, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRepo"),
		loc:    cfg.Location(),
		now:    time.Now,
	}
}

var _ Repository = (*Pgx)(nil)

// Create adds a new post record
func (p *Pgx) Create(ctx context.Context, record domain.PostRecord) error {
	query, args, err := insertQuery(record, p.now())
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	return err
}

// CountByUser counts posts whose publish time falls in the period containing now
func (p *Pgx) CountByUser(ctx context.Context, userID int64, period domain.StatsPeriod) (int, error) {
	start, end := period.Bounds(p.now().In(p.loc))

	query, args, err := countQuery(userID, start, end)
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var count int
	if err := p.pg.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	p.logger.Debug("Counted posts", "userID", userID, "period", period, "count", count)
	return count, nil
}

func insertQuery(record domain.PostRecord, now time.Time) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Insert(table).
		Columns("user_id", "link", "publish_at", "created_at").
		Values(record.UserID, record.Link, record.PublishAt, now).
		ToSql()
}

func countQuery(userID int64, start, end time.Time) (string, []interface{}, error) {
	return repositories.SqBuilder.
		Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"publish_at": start}).
		Where(sq.Lt{"publish_at": end}).
		ToSql()
}
