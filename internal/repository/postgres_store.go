package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"journal-backend/internal/domain"
)

// PostgresStore persists the journal in Postgres. Tables are created by
// db.Migrate. Ordering and uniqueness match InMemoryStore; uniqueness is
// backed by indexes rather than scans.
type PostgresStore struct {
	pool  *pgxpool.Pool
	clock Clock
}

var _ domain.Store = (*PostgresStore)(nil)

func NewPostgresStore(pool *pgxpool.Pool, opts ...Option) *PostgresStore {
	o := buildOptions(opts)
	return &PostgresStore{pool: pool, clock: o.clock}
}

// Postgres keeps microseconds; stamps are truncated so that a record read
// back compares equal to the one returned on write.
func (s *PostgresStore) now() time.Time {
	return s.clock().Truncate(time.Microsecond)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// uniqueViolation maps unique-index violations onto domain errors.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return domain.ErrDuplicateUsername
	case "users_firebase_id_key":
		return domain.ErrDuplicateFirebaseID
	case "trader_profiles_user_id_key":
		return domain.ErrProfileExists
	}
	return err
}

/* ---- users ---- */

const userColumns = `id, username, password, email, firebase_id, display_name, photo_url, is_firebase_user`

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Email,
		&u.FirebaseID,
		&u.DisplayName,
		&u.PhotoURL,
		&u.IsFirebaseUser,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) queryUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx,
		`select `+userColumns+` from users where `+where+` order by id limit 1`, arg))
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.queryUser(ctx, "id = $1", id)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.queryUser(ctx, "username = $1", username)
}

func (s *PostgresStore) GetUserByFirebaseID(ctx context.Context, firebaseID string) (*domain.User, error) {
	return s.queryUser(ctx, "firebase_id = $1", firebaseID)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.queryUser(ctx, "email = $1", email)
}

func (s *PostgresStore) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	if in.Password == "" {
		in.Password = domain.PasswordExternalAuth
	}
	u, err := scanUser(s.pool.QueryRow(ctx, `
		insert into users(username, password, email, firebase_id, display_name, photo_url, is_firebase_user)
		values ($1,$2,$3,$4,$5,$6,$7)
		returning `+userColumns,
		in.Username,
		in.Password,
		in.Email,
		in.FirebaseID,
		in.DisplayName,
		in.PhotoURL,
		in.IsFirebaseUser,
	))
	if err != nil {
		return nil, uniqueViolation(err)
	}
	return u, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	var out *domain.User
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx,
			`select `+userColumns+` from users where id = $1 for update`, id))
		if err != nil || u == nil {
			return err
		}
		patch.Apply(u)

		out, err = scanUser(tx.QueryRow(ctx, `
			update users set
				username = $2, password = $3, email = $4, firebase_id = $5,
				display_name = $6, photo_url = $7, is_firebase_user = $8
			where id = $1
			returning `+userColumns,
			u.ID,
			u.Username,
			u.Password,
			u.Email,
			u.FirebaseID,
			u.DisplayName,
			u.PhotoURL,
			u.IsFirebaseUser,
		))
		return err
	})
	if err != nil {
		return nil, uniqueViolation(err)
	}
	return out, nil
}

/* ---- trader profiles ---- */

const profileColumns = `id, user_id, journal_name, initial_capital::text, strategy1, strategy2, strategy3,
	is_pro, pro_since, created_at, updated_at`

func scanProfile(row rowScanner) (*domain.TraderProfile, error) {
	var p domain.TraderProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.JournalName,
		&p.InitialCapital,
		&p.Strategy1,
		&p.Strategy2,
		&p.Strategy3,
		&p.IsPro,
		&p.ProSince,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	if p.ProSince != nil {
		t := p.ProSince.UTC()
		p.ProSince = &t
	}
	return &p, nil
}

func (s *PostgresStore) GetTraderProfile(ctx context.Context, id int64) (*domain.TraderProfile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx,
		`select `+profileColumns+` from trader_profiles where id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("query trader profile: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) GetTraderProfileByUserID(ctx context.Context, userID int64) (*domain.TraderProfile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx,
		`select `+profileColumns+` from trader_profiles where user_id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("query trader profile: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) CreateTraderProfile(ctx context.Context, in domain.NewTraderProfile) (*domain.TraderProfile, error) {
	if in.JournalName == "" {
		in.JournalName = domain.DefaultJournalName
	}
	now := s.now()
	p, err := scanProfile(s.pool.QueryRow(ctx, `
		insert into trader_profiles(
			user_id, journal_name, initial_capital, strategy1, strategy2, strategy3,
			is_pro, pro_since, created_at, updated_at
		) values ($1,$2,$3,$4,$5,$6,false,null,$7,$7)
		returning `+profileColumns,
		in.UserID,
		in.JournalName,
		in.InitialCapital,
		in.Strategy1,
		in.Strategy2,
		in.Strategy3,
		now,
	))
	if err != nil {
		return nil, uniqueViolation(err)
	}
	return p, nil
}

func (s *PostgresStore) UpdateTraderProfile(ctx context.Context, id int64, patch domain.TraderProfilePatch) (*domain.TraderProfile, error) {
	var out *domain.TraderProfile
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		p, err := scanProfile(tx.QueryRow(ctx,
			`select `+profileColumns+` from trader_profiles where id = $1 for update`, id))
		if err != nil || p == nil {
			return err
		}
		prev := p.UpdatedAt
		patch.Apply(p)
		p.UpdatedAt = touch(s.now, prev)

		out, err = scanProfile(tx.QueryRow(ctx, `
			update trader_profiles set
				user_id = $2, journal_name = $3, initial_capital = $4,
				strategy1 = $5, strategy2 = $6, strategy3 = $7,
				is_pro = $8, pro_since = $9, updated_at = $10
			where id = $1
			returning `+profileColumns,
			p.ID,
			p.UserID,
			p.JournalName,
			p.InitialCapital,
			p.Strategy1,
			p.Strategy2,
			p.Strategy3,
			p.IsPro,
			p.ProSince,
			p.UpdatedAt,
		))
		return err
	})
	if err != nil {
		return nil, uniqueViolation(err)
	}
	return out, nil
}

/* ---- trade entries ---- */

const tradeColumns = `id, trader_profile_id, date, trading_day, trading_session, asset_traded,
	setup_quality, risk_percentage, risk_reward_ratio, pnl_amount::text, trade_status,
	strategy_used, trading_emotion, chart_image, comments, created_at, updated_at`

func scanTrade(row rowScanner) (*domain.TradeEntry, error) {
	var e domain.TradeEntry
	err := row.Scan(
		&e.ID,
		&e.TraderProfileID,
		&e.Date,
		&e.TradingDay,
		&e.TradingSession,
		&e.AssetTraded,
		&e.SetupQuality,
		&e.RiskPercentage,
		&e.RiskRewardRatio,
		&e.PnlAmount,
		&e.TradeStatus,
		&e.StrategyUsed,
		&e.TradingEmotion,
		&e.ChartImage,
		&e.Comments,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Date = e.Date.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

func (s *PostgresStore) GetTradeEntry(ctx context.Context, id int64) (*domain.TradeEntry, error) {
	e, err := scanTrade(s.pool.QueryRow(ctx,
		`select `+tradeColumns+` from trade_entries where id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("query trade entry: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) GetTradeEntriesByProfileID(ctx context.Context, profileID int64) ([]domain.TradeEntry, error) {
	rows, err := s.pool.Query(ctx,
		`select `+tradeColumns+` from trade_entries where trader_profile_id = $1 order by date desc, id asc`,
		profileID)
	if err != nil {
		return nil, fmt.Errorf("list trade entries: %w", err)
	}
	defer rows.Close()

	result := make([]domain.TradeEntry, 0)
	for rows.Next() {
		e, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade entry: %w", err)
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trade entries: %w", err)
	}
	return result, nil
}

func (s *PostgresStore) CreateTradeEntry(ctx context.Context, in domain.NewTradeEntry) (*domain.TradeEntry, error) {
	now := s.now()
	e, err := scanTrade(s.pool.QueryRow(ctx, `
		insert into trade_entries(
			trader_profile_id, date, trading_day, trading_session, asset_traded,
			setup_quality, risk_percentage, risk_reward_ratio, pnl_amount, trade_status,
			strategy_used, trading_emotion, chart_image, comments, created_at, updated_at
		) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$15)
		returning `+tradeColumns,
		in.TraderProfileID,
		in.Date,
		in.TradingDay,
		string(in.TradingSession),
		in.AssetTraded,
		string(in.SetupQuality),
		in.RiskPercentage,
		in.RiskRewardRatio,
		in.PnlAmount,
		string(in.TradeStatus),
		in.StrategyUsed,
		string(in.TradingEmotion),
		in.ChartImage,
		in.Comments,
		now,
	))
	if err != nil {
		return nil, fmt.Errorf("insert trade entry: %w", err)
	}
	return e, nil
}

func (s *PostgresStore) UpdateTradeEntry(ctx context.Context, id int64, patch domain.TradeEntryPatch) (*domain.TradeEntry, error) {
	var out *domain.TradeEntry
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		e, err := scanTrade(tx.QueryRow(ctx,
			`select `+tradeColumns+` from trade_entries where id = $1 for update`, id))
		if err != nil || e == nil {
			return err
		}
		prev := e.UpdatedAt
		patch.Apply(e)
		e.UpdatedAt = touch(s.now, prev)

		out, err = scanTrade(tx.QueryRow(ctx, `
			update trade_entries set
				trader_profile_id = $2, date = $3, trading_day = $4, trading_session = $5,
				asset_traded = $6, setup_quality = $7, risk_percentage = $8,
				risk_reward_ratio = $9, pnl_amount = $10, trade_status = $11,
				strategy_used = $12, trading_emotion = $13, chart_image = $14,
				comments = $15, updated_at = $16
			where id = $1
			returning `+tradeColumns,
			e.ID,
			e.TraderProfileID,
			e.Date,
			e.TradingDay,
			string(e.TradingSession),
			e.AssetTraded,
			string(e.SetupQuality),
			e.RiskPercentage,
			e.RiskRewardRatio,
			e.PnlAmount,
			string(e.TradeStatus),
			e.StrategyUsed,
			string(e.TradingEmotion),
			e.ChartImage,
			e.Comments,
			e.UpdatedAt,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update trade entry: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteTradeEntry(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `delete from trade_entries where id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete trade entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
