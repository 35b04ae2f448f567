package router

import (
	"context"

	"github.com/keeper31337/homepage-api/internal/application"
	"github.com/keeper31337/homepage-api/internal/container"
	"github.com/keeper31337/homepage-api/internal/domain/repository"
	pginfra "github.com/keeper31337/homepage-api/internal/infrastructure/postgres"
	"github.com/keeper31337/homepage-api/internal/infrastructure/redisstore"
	"github.com/keeper31337/homepage-api/internal/infrastructure/search"
	handlers "github.com/keeper31337/homepage-api/internal/interface/http"
	"github.com/keeper31337/homepage-api/internal/interface/middleware"
	"github.com/keeper31337/homepage-api/internal/router/modules"
	"github.com/keeper31337/homepage-api/pkg/helpers"
)

// Services holds the application services built from the container.
type Services struct {
	Auth     *application.AuthService
	Members  *application.MemberService
	Posts    *application.PostService
	Comments *application.CommentService
	Points   *application.PointService
	Merits   *application.MeritService
	Election *application.ElectionService
	Studies  *application.StudyService
	Seminars *application.SeminarService
	Library  *application.LibraryService
	Ctf      *application.CtfService
	Games    *application.GameService
}

// BuildServices wires repositories and services from the container singletons.
func BuildServices() *Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	tx := pginfra.NewTxManager(pool)

	// a nil publisher must stay a nil interface
	var queue application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil {
		queue = pub
	}
	var index repository.PostIndex
	if es := container.GetES(); es != nil {
		index = search.NewPostIndex(es, cfg.ESPostsIndex, logger)
	}

	members := pginfra.NewMemberRepository(pool)
	files := application.NewFileService(pginfra.NewFileRepository(pool), container.GetBlobStorage(), cfg.DefaultThumbnailPath, logger)
	codes := application.NewAuthCodeSender(redisstore.NewAuthCodeStore(rdb), queue, cfg, logger)
	posts := pginfra.NewPostRepository(pool)
	pointLogs := pginfra.NewPointLogRepository(pool)

	return &Services{
		Auth:     application.NewAuthService(members, tx, redisstore.NewRefreshTokenStore(rdb), codes, container.GetJWT(), logger),
		Members:  application.NewMemberService(members, tx, files, codes, logger),
		Posts:    application.NewPostService(pginfra.NewCategoryRepository(pool), posts, index, files, tx, logger),
		Comments: application.NewCommentService(pginfra.NewCommentRepository(pool), posts, files, tx, cfg.VirtualMemberID, logger),
		Points:   application.NewPointService(members, pointLogs, tx, logger),
		Merits:   application.NewMeritService(pginfra.NewMeritRepository(pool), members, tx, logger),
		Election: application.NewElectionService(pginfra.NewElectionRepository(pool), members, tx, logger),
		Studies:  application.NewStudyService(pginfra.NewStudyRepository(pool), members, files, tx, logger),
		Seminars: application.NewSeminarService(pginfra.NewSeminarRepository(pool), members, tx, cfg.ClubName, logger),
		Library:  application.NewLibraryService(pginfra.NewBookRepository(pool), pginfra.NewBorrowRepository(pool), files, tx, queue, cfg, logger),
		Ctf:      application.NewCtfService(pginfra.NewCtfContestRepository(pool)),
		Games:    application.NewGameService(redisstore.NewGameStore(rdb), members, pointLogs, files, tx, logger),
	}
}

func healthChecks() map[string]handlers.Check {
	checks := map[string]handlers.Check{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = func(ctx context.Context) error { return pginfra.Ping(ctx, pool) }
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, es) }
	}
	if pub := container.GetRabbitPub(); pub != nil {
		checks["rabbitmq"] = pub.Ping
	}
	return checks
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, svc *Services) {
	logger := container.GetLogger()
	cookies := container.GetCookies()

	// renewal runs first so an expired access token is replaced before authentication
	r.Use(
		middleware.TokenRenewal(svc.Auth, cookies, logger),
		middleware.Authenticate(svc.Auth, cookies),
	)

	r.Add(modules.NewOpsModule(handlers.NewHealthHandler(healthChecks()), container.GetMetrics()))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, cookies, logger)))
	r.Add(modules.NewMemberModule(handlers.NewMemberHandler(svc.Members, logger)))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(svc.Posts, logger), handlers.NewCommentHandler(svc.Comments, logger)))
	r.Add(modules.NewPointModule(handlers.NewPointHandler(svc.Points, logger), handlers.NewMeritHandler(svc.Merits, logger)))
	r.Add(modules.NewElectionModule(handlers.NewElectionHandler(svc.Election, logger)))
	r.Add(modules.NewStudyModule(handlers.NewStudyHandler(svc.Studies, logger)))
	r.Add(modules.NewSeminarModule(handlers.NewSeminarHandler(svc.Seminars, logger)))
	r.Add(modules.NewLibraryModule(handlers.NewLibraryHandler(svc.Library, logger)))
	r.Add(modules.NewCtfModule(handlers.NewCtfHandler(svc.Ctf, logger)))
	r.Add(modules.NewGameModule(handlers.NewGameHandler(svc.Games, logger)))
}
