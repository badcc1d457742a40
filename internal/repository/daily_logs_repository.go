package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/limbo/exectrack/pkg/entity"
)

type DailyLogsRepository struct {
	conn PgConnection
}

func NewDailyLogsRepo(conn PgConnection) *DailyLogsRepository {
	return &DailyLogsRepository{
		conn: conn,
	}
}

const dailyLogColumns = `user_id, date, tle_minutes, note, tomorrow_intent, dsa_done, dev_done, gym_done,
		dsa_minutes, dev_minutes, gym_minutes, dsa_note, dev_note, gym_note`

// Get returns nil without error when no row exists for the date; callers
// substitute a zero-value summary.
func (dr *DailyLogsRepository) Get(ctx context.Context, uid uuid.UUID, date string) (*entity.DailyLog, error) {
	var l entity.DailyLog
	row := dr.conn.QueryRow(ctx, `SELECT `+dailyLogColumns+` FROM daily_logs WHERE user_id = $1 AND date = $2;`, uid, date)
	err := scanDailyLog(row, &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.New("getting daily log error: " + err.Error())
	}
	return &l, nil
}

// Upsert inserts or updates the (user, date) summary. Every nil field
// resolves to the stored value on conflict so a partial request body never
// nulls out earlier data.
func (dr *DailyLogsRepository) Upsert(ctx context.Context, uid uuid.UUID, upd *DailyLogUpsert) error {
	_, err := dr.conn.Exec(ctx, `INSERT INTO daily_logs (user_id, date, tle_minutes, note, tomorrow_intent, dsa_done, dev_done, gym_done,
		dsa_minutes, dev_minutes, gym_minutes, dsa_note, dev_note, gym_note)
		VALUES ($1, $2, COALESCE($3, 0), COALESCE($4, ''), COALESCE($5, ''), COALESCE($6, FALSE), COALESCE($7, FALSE), COALESCE($8, FALSE),
			COALESCE($9, 0), COALESCE($10, 0), COALESCE($11, 0), COALESCE($12, ''), COALESCE($13, ''), COALESCE($14, ''))
		ON CONFLICT (user_id, date) DO UPDATE SET
			tle_minutes = COALESCE($3, daily_logs.tle_minutes),
			note = COALESCE($4, daily_logs.note),
			tomorrow_intent = COALESCE($5, daily_logs.tomorrow_intent),
			dsa_done = COALESCE($6, daily_logs.dsa_done),
			dev_done = COALESCE($7, daily_logs.dev_done),
			gym_done = COALESCE($8, daily_logs.gym_done),
			dsa_minutes = COALESCE($9, daily_logs.dsa_minutes),
			dev_minutes = COALESCE($10, daily_logs.dev_minutes),
			gym_minutes = COALESCE($11, daily_logs.gym_minutes),
			dsa_note = COALESCE($12, daily_logs.dsa_note),
			dev_note = COALESCE($13, daily_logs.dev_note),
			gym_note = COALESCE($14, daily_logs.gym_note);`,
		uid, upd.Date, upd.TLEMinutes, upd.Note, upd.TomorrowIntent, upd.DsaDone, upd.DevDone, upd.GymDone,
		upd.DsaMinutes, upd.DevMinutes, upd.GymMinutes, upd.DsaNote, upd.DevNote, upd.GymNote,
	)
	if err != nil {
		return errors.New("upserting daily log error: " + err.Error())
	}
	return nil
}

func (dr *DailyLogsRepository) History(ctx context.Context, uid uuid.UUID, limit int) ([]*entity.DailyLog, error) {
	return dr.list(ctx, `SELECT `+dailyLogColumns+` FROM daily_logs WHERE user_id = $1 ORDER BY date DESC LIMIT $2;`, uid, limit)
}

func (dr *DailyLogsRepository) Range(ctx context.Context, uid uuid.UUID, from, to string) ([]*entity.DailyLog, error) {
	return dr.list(ctx, `SELECT `+dailyLogColumns+` FROM daily_logs WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date DESC;`, uid, from, to)
}

func (dr *DailyLogsRepository) list(ctx context.Context, query string, args ...any) ([]*entity.DailyLog, error) {
	rows, err := dr.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.New("getting daily logs error: " + err.Error())
	}
	defer rows.Close()
	logs := make([]*entity.DailyLog, 0)
	for rows.Next() {
		l := entity.DailyLog{}
		if err = scanDailyLog(rows, &l); err != nil {
			return nil, errors.New("daily log row parsing error: " + err.Error())
		}
		logs = append(logs, &l)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected daily log rows error: " + rows.Err().Error())
	}
	return logs, nil
}

func scanDailyLog(row pgx.Row, l *entity.DailyLog) error {
	return row.Scan(&l.UserID, &l.Date, &l.TLEMinutes, &l.Note, &l.TomorrowIntent,
		&l.DsaDone, &l.DevDone, &l.GymDone,
		&l.DsaMinutes, &l.DevMinutes, &l.GymMinutes,
		&l.DsaNote, &l.DevNote, &l.GymNote)
}
