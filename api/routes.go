package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-server/internal/handlers/v1/auth"
	"github.com/carson-networks/wallet-server/internal/handlers/v1/category"
	"github.com/carson-networks/wallet-server/internal/handlers/v1/status"
	"github.com/carson-networks/wallet-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/wallet-server/internal/handlers/v1/user"
	"github.com/carson-networks/wallet-server/internal/logging"
	"github.com/carson-networks/wallet-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()
	humaAPI := humago.New(mux, huma.DefaultConfig("wallet-server", "1.0.0"))
	humaAPI.UseMiddleware(logging.Middleware(r.Logger))

	r.registerRoutes(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

func (r *Rest) registerRoutes(humaAPI huma.API) {
	status.NewHandler().Register(humaAPI)

	auth.NewRegisterHandler(r.Service.Auth).Register(humaAPI)
	auth.NewLoginHandler(r.Service.Auth).Register(humaAPI)
	auth.NewRefreshHandler(r.Service.Auth).Register(humaAPI)
	auth.NewLogoutHandler(r.Service.Auth).Register(humaAPI)

	user.NewCurrentUserHandler(r.Service.Auth, r.Service.User).Register(humaAPI)
	category.NewListCategoriesHandler(r.Service.Auth, r.Service.Category).Register(humaAPI)

	transaction.NewCreateTransactionHandler(r.Service.Auth, r.Service.Transaction).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Auth, r.Service.Transaction).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Service.Auth, r.Service.Transaction).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Service.Auth, r.Service.Transaction).Register(humaAPI)
}
