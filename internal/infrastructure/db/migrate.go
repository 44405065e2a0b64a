package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the journal tables and their lookup indexes.
// Statements are idempotent, so it runs on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists users (
			id bigserial primary key,
			username text not null unique,
			password text not null,
			email text null,
			firebase_id text null,
			display_name text null,
			photo_url text null,
			is_firebase_user boolean not null default false
		);`,
		`create unique index if not exists users_firebase_id_key on users(firebase_id) where firebase_id is not null;`,
		`create index if not exists users_email_idx on users(email);`,
		`create table if not exists trader_profiles (
			id bigserial primary key,
			user_id bigint not null unique,
			journal_name text not null default 'My Trading Journal',
			initial_capital numeric not null,
			strategy1 text not null default '',
			strategy2 text not null default '',
			strategy3 text not null default '',
			is_pro boolean not null default false,
			pro_since timestamptz null,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
		`create table if not exists trade_entries (
			id bigserial primary key,
			trader_profile_id bigint not null,
			date timestamptz not null,
			trading_day text not null default '',
			trading_session text not null default '',
			asset_traded text not null,
			setup_quality text not null,
			risk_percentage double precision not null,
			risk_reward_ratio double precision not null default 0,
			pnl_amount numeric not null,
			trade_status text not null default '',
			strategy_used text not null,
			trading_emotion text not null default '',
			chart_image text not null default '',
			comments text not null default '',
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		);`,
		`create index if not exists trade_entries_profile_date_idx on trade_entries(trader_profile_id, date desc, id);`,
	}

	for i, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
