package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/clubsphere/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	Transactor    Transactor
	AuthUsers     IAuthUserRepository
	Sessions      ISessionRepository
	Profiles      IProfileRepository
	Clubs         IClubRepository
	Members       IClubMemberRepository
	Events        IEventRepository
	Notifications INotificationRepository
}

// NewRepositories initializes the Postgres-backed repositories
func NewRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{
		Transactor:    NewPgTransactor(pg),
		AuthUsers:     NewAuthUserRepository(pg.Pool),
		Sessions:      NewSessionRepository(pg.Pool),
		Profiles:      NewProfileRepository(pg.Pool),
		Clubs:         NewClubRepository(pg.Pool),
		Members:       NewClubMemberRepository(pg.Pool),
		Events:        NewEventRepository(pg.Pool),
		Notifications: NewNotificationRepository(pg.Pool),
	}
}

// pgRepo carries the pool and a statement builder using $n placeholders
type pgRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func newPgRepo(pool *pgxpool.Pool) pgRepo {
	return pgRepo{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}
